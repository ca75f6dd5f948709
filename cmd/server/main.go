package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	"mentorship-system/internal/router"
	dbPkg "mentorship-system/pkg/db"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/metrics"
	"mentorship-system/pkg/ratelimit"
	"mentorship-system/pkg/redis"
	"mentorship-system/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultJWTSecret = "your-secret-key-for-development"

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log, err := logger.InitLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "初始化日志失败:", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("=== 导师申请系统启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("database_host", cfg.Database.Host),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins),
		zap.String("log_level", cfg.Log.Level),
	)
	if cfg.JWT.Secret == defaultJWTSecret {
		log.Warn("正在使用默认JWT密钥，生产环境请设置 JWT_SECRET")
	}

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	if err := dbPkg.AutoMigrate(db, model.Models()...); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 4. Redis可选，连接失败时不使用缓存
	if cfg.Redis.Host != "" {
		if err := redis.InitRedis(cfg.Redis); err != nil {
			log.Warn("Redis连接失败，推荐流缓存已关闭", zap.Error(err))
		} else {
			defer redis.Close()
			log.Info("Redis连接成功")
		}
	}

	// 5. 后台任务：清理限流器中的过期客户端
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	limiter := ratelimit.New(cfg.RateLimit)
	if limiter.Enabled() {
		go limiter.Cleanup(ctx, time.Minute, 10*time.Minute)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 6. 创建路由
	engine := router.New(router.Deps{
		Config:  cfg,
		DB:      db,
		JWT:     jwt.NewJWTService(cfg.JWT),
		Hub:     websocket.GetManager(),
		Metrics: metrics.New(),
		Limiter: limiter,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}
