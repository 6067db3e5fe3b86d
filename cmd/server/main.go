package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/api"
	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/blob"
	"github.com/dreamguard-id/DreamGuard/internal/config"
	"github.com/dreamguard-id/DreamGuard/internal/prediction"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	objects, err := blob.NewObjectStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init object store: %v", err)
	}

	var provider auth.Provider
	if cfg.AuthMode == "remote" {
		provider = auth.NewRemoteProvider(cfg.AuthServiceURL, logger)
	} else {
		provider = auth.NewLocalProvider(cfg.LocalAuthToken, logger)
	}

	classifier := prediction.NewAdapter(prediction.NewHTTPInvoker(cfg.ModelServiceURL, logger))

	app := api.NewApp(logger, provider, store, objects, classifier, nil)
	router := api.NewRouter(app)

	logger.Infof("DreamGuard server running on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
