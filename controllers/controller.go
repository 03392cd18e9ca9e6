package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the uniform {"error": msg} body every handler uses.
func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
