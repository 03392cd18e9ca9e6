package main

import (
	"log"
	"os"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	"github.com/Brighttier/Chatbot-Peptides-sub001/controllers"
	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/router"
	"github.com/Brighttier/Chatbot-Peptides-sub001/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set env directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	controllers.SetSalesConfiguration(cfg.Sales)
	controllers.SetSecurityConfiguration(cfg.Security)

	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := controllers.EnsureBootstrapAdmin(database); err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r)

	workers.StartMessagesProcessor(database, cfg.Sales)

	log.Printf("Listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}
