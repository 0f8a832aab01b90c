package main

import (
	"log"

	_ "cotizador_seguros/docs"
	"cotizador_seguros/internal/adapter/http/routes"
	"cotizador_seguros/internal/infrastructure/config"
	"cotizador_seguros/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Cotizador Seguros API
// @version         1.0
// @description     Backend of the insurance quoting agent: agent tools, quotes and live conversation events.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = l.Sync() }()

	l.Info("starting application",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("notification", cfg.Notification.Driver),
	)

	if err := routes.Run(cfg, l); err != nil {
		l.Fatal("Failed to startup the application", zap.Error(err))
	}
}
