package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"qahwaan-system/internal/database"
	"qahwaan-system/internal/menu"
	"qahwaan-system/internal/pos"
	"qahwaan-system/internal/server/handlers"
	"qahwaan-system/internal/server/middleware"
)

type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	TokenTTL time.Duration
}

// New assembles the gin engine: middleware stack, the POS capture surface,
// the menu/admin surface, and health.
func New(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit("120-M"))

	gateway := database.NewGateway(deps.DB)
	events := pos.NewRedisPublisher(deps.Redis)
	tabs := pos.NewTabService(gateway)
	finalizer := pos.NewFinalizer(gateway, events)
	menuService := menu.NewService(deps.DB, deps.Redis)

	tabHandler := handlers.NewTabHTTPHandler(tabs, finalizer)
	saleHandler := handlers.NewSaleHTTPHandler(finalizer)
	menuHandler := handlers.NewMenuHTTPHandler(menuService)
	authHandler := handlers.NewAuthHTTPHandler(deps.DB, deps.TokenTTL)

	api := r.Group("/api")
	{
		tab := api.Group("/tab")
		{
			tab.POST("/open", tabHandler.OpenTab)
			tab.POST("/save", tabHandler.SaveCart)
			tab.POST("/finalize", tabHandler.FinalizeTab)
		}
		api.GET("/tabs", tabHandler.ListOpenTabs)

		api.POST("/sale", saleHandler.DirectSale)
		api.GET("/menu", menuHandler.ListMenu)

		api.POST("/auth/login", authHandler.Login)

		admin := api.Group("")
		admin.Use(middleware.JWTAuth())
		{
			admin.POST("/update_price", menuHandler.UpdatePrice)
		}
	}

	r.GET("/health", healthCheckHandler(deps))

	return r
}

func healthCheckHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK
		unavailable := []string{}

		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			unavailable = append(unavailable, "database")
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				unavailable = append(unavailable, "redis")
			}
		}

		if len(unavailable) > 0 {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":               status,
			"unavailable_services": unavailable,
			"timestamp":            time.Now(),
		})
	}
}
