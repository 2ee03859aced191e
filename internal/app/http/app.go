package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/14kear/online_polls/internal/config"
	"github.com/14kear/online_polls/internal/handlers"
	"github.com/14kear/online_polls/internal/middleware"
	"github.com/14kear/online_polls/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine and mounts the public and private routes.
func NewApp(
	log *slog.Logger,
	cfg config.HTTPConfig,
	accounts *handlers.AccountsHandler,
	polls *handlers.PollsHandler,
	auth *middleware.AuthMiddleware,
) *App {
	handlers.RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.Logging(log))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	public := r.Group("/", auth.Optional())
	routes.RegisterPublicRoutes(public, accounts, polls)

	private := r.Group("/", auth.Middleware())
	routes.RegisterPrivateRoutes(private, accounts, polls)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		log:    log,
		engine: r,
		server: httpServer,
		port:   cfg.Port,
	}
}

func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping", slog.Int("port", a.port))
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
