package controllers

import (
	"net/http"

	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/gin-gonic/gin"
)

// GET /api/conversations (admin)
func GetConversations(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var conversations []models.Conversation
	if err := db.Order("id desc").Limit(200).Find(&conversations).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"conversations": conversations})
}

// GET /api/conversations/:id (admin)
func GetConversationByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var conversation models.Conversation
	if err := db.First(&conversation, id).Error; err != nil {
		RespondError(c, "conversation not found", http.StatusNotFound)
		return
	}

	var messages []models.Message
	if err := db.Where("conversation_id = ?", conversation.ID).
		Order("id asc").Find(&messages).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"conversation": conversation,
		"messages":     messages,
	})
}
