package main

import (
	"os"
	"time"

	"github.com/Zombiepro89/socialmedia/api-gateway/internal/proxy"
	"github.com/Zombiepro89/socialmedia/shared/config"
	"github.com/Zombiepro89/socialmedia/shared/logger"
	"github.com/Zombiepro89/socialmedia/shared/middleware"
	"github.com/Zombiepro89/socialmedia/shared/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	LogFormat         string        `env:"LOG_FORMAT,default=json"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	Port              string        `env:"PORT,default=8080"`
	AccountServiceURL string        `env:"ACCOUNT_SERVICE_URL,default=http://localhost:8081"`
	MessageServiceURL string        `env:"MESSAGE_SERVICE_URL,default=http://localhost:8082"`
	UpstreamTimeout   time.Duration `env:"UPSTREAM_TIMEOUT,default=30s"`
	RateLimitRPS      float64       `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST,default=20"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		logger.Log.Fatal("config_load_failed", zap.Error(err))
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Log.Fatal("logger_init_failed", zap.Error(err))
	}
	defer logger.Sync()

	var extra []gin.HandlerFunc
	if cfg.RateLimitRPS > 0 {
		extra = append(extra, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(extra...)
	proxy.New(cfg.UpstreamTimeout).RegisterRoutes(router, proxy.Upstreams{
		AccountServiceURL: cfg.AccountServiceURL,
		MessageServiceURL: cfg.MessageServiceURL,
	})

	if err := server.Run("api-gateway", cfg.Port, router, cfg.ShutdownTimeout); err != nil {
		logger.Log.Error("api_gateway_failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
