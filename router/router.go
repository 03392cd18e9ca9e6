package router

import (
	"github.com/Brighttier/Chatbot-Peptides-sub001/controllers"
	"github.com/Brighttier/Chatbot-Peptides-sub001/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Initialize wires all routes and middlewares: public webhook surfaces,
// authenticated routes, and the admin dashboard API.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Messaging provider webhooks (no auth; signature/token checked inside)
	api.GET("/webhook", controllers.WebhookVerify)
	api.POST("/webhook", controllers.WebhookUpdate)
	api.POST("/webhook/sms", controllers.RepSMSInbound)

	// Website chat widget (public)
	api.POST("/widget/messages", Logger(), controllers.WidgetMessage)

	// Public (no auth)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	// Admin routes
	admin := validated.Group("")
	admin.Use(Adminizer())

	// Users (admin)
	admin.GET("/users", Logger(), controllers.GetUsers)
	admin.POST("/users", Logger(), controllers.CreateUser)

	// Conversations (admin)
	admin.GET("/conversations", Logger(), controllers.GetConversations)
	admin.GET("/conversations/:id", Logger(), controllers.GetConversationByID)

	// Sales (admin)
	admin.GET("/sales", Logger(), controllers.GetSales)
	admin.POST("/sales", Logger(), controllers.CreateSale)
	admin.GET("/sales/summary", Logger(), controllers.GetSalesSummary)
	admin.GET("/sales/export", Logger(), controllers.ExportSales)
	admin.GET("/sales/:id", Logger(), controllers.GetSaleByID)
	admin.PUT("/sales/:id", Logger(), controllers.UpdateSale)

	log.Info().Msg("routes initialized")
}
