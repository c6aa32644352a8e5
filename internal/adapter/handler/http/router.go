package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/vperfumes/ordertrack/internal/adapter/config"
	"github.com/vperfumes/ordertrack/internal/core/port"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	userHandler *UserHandler,
	statsHandler *StatsHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", userHandler.LoginUser)
			auth.POST("/register", authCheck(tokenService), userHandler.RegisterCompany)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.GET("/:id/history", orderHandler.OrderHistory)
		}

		api.GET("/stats", authCheck(tokenService), statsHandler.Stats)
		api.GET("/companies", authCheck(tokenService), userHandler.ListCompanies)
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server and shuts it down when ctx is cancelled.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:    listenAddr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
