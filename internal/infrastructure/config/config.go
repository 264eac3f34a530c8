package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Signals   SignalsConfig   `mapstructure:"signals"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Data      DataConfig      `mapstructure:"data"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
	LogDir  string `mapstructure:"log_dir"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// CacheConfig 緩存配置；RedisAddr 有值時改用 Redis
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisDB         int           `mapstructure:"redis_db"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SignalsConfig 市場訊號來源
type SignalsConfig struct {
	MainstreamURLs []string      `mapstructure:"mainstream_urls"`
	AsianURLs      []string      `mapstructure:"asian_urls"`
	EvidenceFile   string        `mapstructure:"evidence_file"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Concurrency    int           `mapstructure:"concurrency"`
}

// PipelineConfig 離線建置設定
type PipelineConfig struct {
	TargetCount    int    `mapstructure:"target_count"`
	MaxCookMinutes int    `mapstructure:"max_cook_minutes"`
	OutputDir      string `mapstructure:"output_dir"`
}

// DataConfig 服務讀取的資料位置
type DataConfig struct {
	GeneratedDir string `mapstructure:"generated_dir"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定，.env 不存在時只使用環境變數與預設值
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println("Skipping .env:", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	v.BindEnv("signals.mainstream_urls", "SIGNALS_MAINSTREAM_URLS")
	v.BindEnv("signals.asian_urls", "SIGNALS_ASIAN_URLS")
	v.BindEnv("signals.evidence_file", "SIGNALS_EVIDENCE_FILE")
	v.BindEnv("data.generated_dir", "GENERATED_DIR")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Signals.MainstreamURLs = splitList(config.Signals.MainstreamURLs)
	config.Signals.AsianURLs = splitList(config.Signals.AsianURLs)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// splitList 環境變數中的清單以逗號分隔
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "dinner-recommender")
	v.SetDefault("app.log_dir", "logs")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 訊號來源
	v.SetDefault("signals.mainstream_urls", []string{})
	v.SetDefault("signals.asian_urls", []string{})
	v.SetDefault("signals.evidence_file", "")
	v.SetDefault("signals.timeout", "15s")
	v.SetDefault("signals.concurrency", 4)

	// 建置設定
	v.SetDefault("pipeline.target_count", 120)
	v.SetDefault("pipeline.max_cook_minutes", 35)
	v.SetDefault("pipeline.output_dir", "data/generated")

	v.SetDefault("data.generated_dir", "data/generated")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Signals.Timeout <= 0 {
		return fmt.Errorf("invalid signals timeout")
	}
	if config.Signals.Concurrency <= 0 {
		return fmt.Errorf("invalid signals concurrency")
	}

	// 驗證建置設定
	if config.Pipeline.TargetCount <= 0 {
		return fmt.Errorf("invalid pipeline target count")
	}
	if config.Pipeline.MaxCookMinutes <= 0 {
		return fmt.Errorf("invalid pipeline max cook minutes")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
