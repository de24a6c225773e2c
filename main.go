package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"vocalnotes/config"
	"vocalnotes/config/database"
	"vocalnotes/internal/events"
	"vocalnotes/internal/note/repository"
	"vocalnotes/pkg/logger"
	"vocalnotes/router"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}
	cfg := config.Load()

	db := database.Connect(cfg.DatabaseURL)
	defer db.Close()

	if err := repository.NewNoteRepository(db).EnsureSchema(); err != nil {
		logger.Sugar.Fatalf("Failed to prepare schema: %v", err)
	}

	hub := events.NewHub()
	go hub.Run()

	handler := router.Setup(db, hub, cfg)

	logger.Sugar.Infof("Vocal notes backend listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
