package main

import (
	"net/http"

	"evcms/internal/app"
	"evcms/internal/config"
	"evcms/internal/db"
	"evcms/internal/logger"

	_ "evcms/docs"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// @title        EV CMS API
// @version      1.0
// @description  Content and lead-capture backend: blog posts with structured content, lead forms and an SEO tag registry.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger.Init(cfg.Log, cfg.LogLevel)
	defer func() { _ = logger.Log.Sync() }()

	warnings, err := cfg.Validate()
	for _, warning := range warnings {
		logger.Log.Warn(warning)
	}
	if err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}

	pool, err := db.NewPostgresConnection(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	router := app.InitApp(cfg, pool)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
	})

	addr := ":" + cfg.Port
	logger.Log.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := http.ListenAndServe(addr, c.Handler(router)); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
