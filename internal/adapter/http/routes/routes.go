package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "cotizador_seguros/docs"
	request "cotizador_seguros/internal/adapter/http/dto/request"
	"cotizador_seguros/internal/infrastructure/config"
	"cotizador_seguros/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Run wires the application and serves HTTP until SIGINT or SIGTERM.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := request.RegisterValidators(); err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	app.start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           newRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-serveErr:
		log.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Warn("http server shutdown", zap.Error(serr))
	}
	app.close(shutdownCtx)
	return err
}

func newRouter(app *application) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, app.logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(app.metrics.Handler()))

	getRoutes(router, app)
	return router
}

func getRoutes(router *gin.Engine, app *application) {
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addToolRoutes(v1, app.toolsHandler)
	addQuoteRoutes(v1, app.quoteHandler)
	addCustomerRoutes(v1, app.customerHandler)
	addConversationRoutes(v1, app.quoteHandler, app.eventsHandler)
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(logger.RequestID())
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
}
