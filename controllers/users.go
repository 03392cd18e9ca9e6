package controllers

import (
	"net/http"
	"os"
	"strings"

	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"
	"github.com/Brighttier/Chatbot-Peptides-sub001/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

// EncodeUserPassword derives the stored password hash. The same derivation
// runs at login; changing it invalidates every stored credential.
func EncodeUserPassword(email, password string) string {
	encoded := tools.EncryptTextSHA512(password)
	encoded = email + ":" + encoded
	return tools.EncryptTextSHA512(encoded)
}

// EnsureBootstrapAdmin seeds the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty. Without it a fresh install
// has no way to log in.
func EnsureBootstrapAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		// table may not exist yet when AUTOMIGRATE is off
		log.Warn().Err(err).Msg("bootstrap admin check skipped")
		return nil
	}
	if count > 0 {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn().Msg("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD not set; login is unusable")
		return nil
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: EncodeUserPassword(email, password),
		Role:     models.USER_ROLE_ADMIN,
		Admin:    true,
		Status:   models.USER_STATUS_AVAILABLE,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var users []models.User
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"users": users})
}

// POST /api/users (admin)
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "missing or invalid field: "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "email is invalid", http.StatusBadRequest)
		return
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "email already registered", http.StatusConflict)
		return
	}

	user.ID = 0
	user.Password = EncodeUserPassword(user.Email, user.Password)
	user.Status = models.USER_STATUS_AVAILABLE
	if user.Role == "" {
		user.Role = models.USER_ROLE_VIEWER
	}

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"user": user})
}
