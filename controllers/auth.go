package controllers

import (
	"net/http"
	"time"

	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if user.Password != EncodeUserPassword(user.Email, req.Password) {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if user.Status == models.USER_STATUS_BLOCKED {
		RespondError(c, "user is blocked", http.StatusForbidden)
		return
	}

	maxValidHrs := tokenMaxValidHours()
	now := time.Now()
	claims := map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(maxValidHrs) * time.Hour).Unix(),
	}

	token, err := signHS256JWT(getJWTSecret(), claims)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, LoginResponse{Token: token, User: user})
}
