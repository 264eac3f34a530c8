package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-recommender/internal/api/handlers/health"
	recipeHandler "dinner-recommender/internal/api/handlers/recipe"
	"dinner-recommender/internal/api/middleware"
	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/infrastructure/config"
	"dinner-recommender/internal/infrastructure/metrics"
	"dinner-recommender/internal/pkg/common"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, data *dataset.Dataset) (*gin.Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 注入設定與資料，供健康檢查使用
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Set("dataset", data)
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	})

	handler := recipeHandler.NewHandler(data)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		api.POST("/recommendations/dinner", handler.HandleDinnerRecommendation)
		api.GET("/recipes/:id", handler.HandleRecipeDetail)
		api.POST("/shopping-list/from-recipes", handler.HandleShoppingList)
		api.POST("/alerts/expiry", handler.HandleExpiryAlerts)

		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/ingredients", handler.HandleIngredientCatalog)
			catalogGroup.GET("/build-report", handler.HandleBuildReport)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Int("ingredients", len(data.Catalog)),
		zap.Int("recipes", len(data.Recipes)),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
