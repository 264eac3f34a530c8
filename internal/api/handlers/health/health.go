package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dinner-recommender/internal/core/dataset"
	"dinner-recommender/internal/infrastructure/config"
	"dinner-recommender/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Data      *DataStatus            `json:"data,omitempty"`
}

// DataStatus 已載入的資料量
type DataStatus struct {
	Ingredients int    `json:"ingredients"`
	Recipes     int    `json:"recipes"`
	GeneratedAt string `json:"generated_at,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if ds, ok := loadedDataset(c); ok {
		response.Data = &DataStatus{
			Ingredients: len(ds.Catalog),
			Recipes:     len(ds.Recipes),
		}
		if ds.Report != nil {
			response.Data.GeneratedAt = ds.Report.GeneratedAt
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 食譜資料載入後才算就緒
func ReadinessCheck(c *gin.Context) {
	ds, ok := loadedDataset(c)
	if !ok || len(ds.Recipes) == 0 {
		common.WriteError(c, common.ErrServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func loadedDataset(c *gin.Context) (*dataset.Dataset, bool) {
	v, exists := c.Get("dataset")
	if !exists {
		return nil, false
	}
	ds, ok := v.(*dataset.Dataset)
	return ds, ok && ds != nil
}
