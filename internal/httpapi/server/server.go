package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pricecart/pricecart/internal/httpapi/handlers"
	"github.com/pricecart/pricecart/internal/httpapi/middleware"
	"github.com/pricecart/pricecart/pkg/config"
)

type APIServer struct {
	config   *config.AppConfig
	handlers *handlers.Handlers
	router   *gin.Engine
	server   *http.Server
}

func NewAPIServer(cfg *config.AppConfig, h *handlers.Handlers) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(&cfg.APIServer))

	s := &APIServer{
		config:   cfg,
		handlers: h,
		router:   router,
	}

	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(s.config))

	v1.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "pricecart-api",
			"status":  "running",
		})
	})

	v1.GET("/search", s.handlers.Search)
	v1.GET("/search/last", s.handlers.LastSearch)

	v1.GET("/basket", s.handlers.GetBasket)
	v1.GET("/basket/stream", s.handlers.BasketStream)
	v1.POST("/basket/items", s.handlers.AddBasketItem)
	v1.PATCH("/basket/items/:id", s.handlers.UpdateBasketItem)
	v1.DELETE("/basket/items/:id", s.handlers.RemoveBasketItem)
	v1.DELETE("/basket", s.handlers.ClearBasket)

	v1.GET("/session", s.handlers.SessionStatus)
	v1.POST("/logout", s.handlers.Logout)
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.APIServer.Host, s.config.APIServer.Port),
		Handler: s.router,
	}

	go s.StopServer()
	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server : %w", err)
	}
	return nil
}

func (s *APIServer) StopServer() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("turning down http API server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("Error during HTTP API server shutdown")
	}
}
