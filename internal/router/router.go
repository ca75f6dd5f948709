package router

import (
	"context"
	"net/http"
	"time"

	"mentorship-system/config"
	"mentorship-system/internal/handler"
	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/internal/service"
	dbPkg "mentorship-system/pkg/db"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/metrics"
	"mentorship-system/pkg/ratelimit"
	"mentorship-system/pkg/redis"
	"mentorship-system/pkg/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps 构建路由所需的依赖
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	JWT     *jwt.JWTService
	Hub     *websocket.Manager // 为空时不推送
	Metrics *metrics.Metrics   // 为空时不暴露 /metrics
	Limiter *ratelimit.Limiter // 为空时按配置新建
}

// New 组装全部路由
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	users := repository.NewUserRepository(deps.DB)
	mentors := repository.NewMentorRepository(deps.DB)
	requests := repository.NewRequestRepository(deps.DB)
	resumes := repository.NewResumeRepository(deps.DB)

	var notifier service.Notifier
	var presence *websocket.Presence
	feedService := service.NewFeedService(users, mentors, cfg.Feed)
	if deps.Hub != nil {
		notifier = deps.Hub
		presence = websocket.NewPresence(deps.Hub)
		feedService.WithPresence(presence)
	}
	authHandler := handler.NewAuthHandler(service.NewAuthService(users, mentors, deps.JWT))
	requestHandler := handler.NewRequestHandler(service.NewRequestService(requests, users, mentors, notifier))
	feedHandler := handler.NewFeedHandler(feedService)
	resumeHandler := handler.NewResumeHandler(service.NewResumeService(resumes))

	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.New(cfg.RateLimit)
	}

	r := gin.New()
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggerMiddleware())
	r.Use(logger.ErrorLoggerMiddleware())
	r.Use(corsMiddleware(cfg.CORS))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		collector := metrics.NewBusinessCollector(&statsSource{users, mentors, requests})
		if presence != nil {
			collector.WithOnline(presence)
		}
		if err := deps.Metrics.Register(collector); err != nil {
			logger.Warn("注册业务指标失败", zap.Error(err))
		}
		r.GET("/metrics", deps.Metrics.Handler())
	}

	r.GET("/health", healthHandler(deps.DB))

	auth := r.Group("/auth")
	{
		for _, role := range []model.Role{model.RoleUser, model.RoleMentor} {
			g := auth.Group("/" + string(role) + "s")
			g.POST("/signup", limiter.Middleware(), authHandler.SignUp(role))
			g.POST("/signin", limiter.Middleware(), authHandler.SignIn(role))
			g.GET("/me", deps.JWT.AuthMiddleware(), jwt.RequireRole(role), authHandler.Me)
			g.PATCH("/me", deps.JWT.AuthMiddleware(), jwt.RequireRole(role), authHandler.UpdateMe)
		}
	}

	mentorsGroup := r.Group("/mentors")
	{
		onlyMentor := []gin.HandlerFunc{deps.JWT.AuthMiddleware(), jwt.RequireRole(model.RoleMentor)}
		mentorsGroup.GET("/me", append(onlyMentor, authHandler.Me)...)
		mentorsGroup.PUT("/me", append(onlyMentor, authHandler.UpdateMe)...)
		mentorsGroup.GET("/:id", authHandler.Mentor)

		resumeGroup := mentorsGroup.Group("/resumes", onlyMentor...)
		resumeGroup.POST("", resumeHandler.Create)
		resumeGroup.GET("", resumeHandler.List)
		resumeGroup.GET("/:id", resumeHandler.Get)
		resumeGroup.PUT("/:id", resumeHandler.Update)
	}

	reqs := r.Group("/requests")
	reqs.Use(deps.JWT.AuthMiddleware())
	{
		reqs.POST("/send", limiter.Middleware(), requestHandler.Send)
		reqs.GET("/sent", requestHandler.Sent)
		reqs.GET("/got", requestHandler.Got)
		reqs.POST("/approve/:id", requestHandler.Approve)
		reqs.POST("/reject/:id", requestHandler.Reject)
	}

	feed := r.Group("/feed")
	{
		feed.GET("/mentors", feedHandler.List(service.FeedMentors))
		feed.GET("/users", feedHandler.List(service.FeedUsers))
	}

	if deps.Hub != nil {
		r.GET("/ws", websocket.NewHandler(deps.Hub, deps.JWT, cfg.WebSocket))
	}

	return r
}

// corsMiddleware 未配置来源时允许任意来源（此时不允许携带凭证）
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: len(cfg.AllowedOrigins) == 0,
		AllowOrigins:    cfg.AllowedOrigins,
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			logger.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			logger.RequestIDHeader,
		},
		AllowCredentials: len(cfg.AllowedOrigins) > 0,
		MaxAge:           12 * time.Hour,
	})
}

// healthHandler 数据库与Redis状态
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}

		if err := dbPkg.HealthCheck(c.Request.Context(), db); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "down"
		}
		if redis.Enabled() {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := redis.HealthCheck(ctx); err != nil {
				// 缓存不可用不影响主流程
				body["redis"] = "down"
			} else {
				body["redis"] = "ok"
			}
		}
		body["time"] = time.Now().Format(time.RFC3339)
		c.JSON(status, body)
	}
}

// statsSource 业务指标数据来源
type statsSource struct {
	users    *repository.UserRepository
	mentors  *repository.MentorRepository
	requests *repository.RequestRepository
}

func (s *statsSource) CountUsers() (int64, error)   { return s.users.Count() }
func (s *statsSource) CountMentors() (int64, error) { return s.mentors.Count() }
func (s *statsSource) CountRequestsByStatus() (map[model.RequestStatus]int64, error) {
	return s.requests.CountByStatus()
}
