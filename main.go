package main

import (
	"log"
	"os"

	"avalia/config"
	"avalia/controllers"
	dbpkg "avalia/db"
	"avalia/router"
	"avalia/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.json"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	controllers.SetConfigurations(cfg)

	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	workers.StartAttachmentsCleaner(database, cfg.StorageDir)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	log.Printf("Avalia listening on :%s", cfg.ApiPort)
	log.Fatal(r.Run(":" + cfg.ApiPort))
}
