package router

import (
	"fmt"
	"strings"

	"github.com/pifa-next/internal/cache"
	"github.com/pifa-next/internal/config"
	adminhandlers "github.com/pifa-next/internal/http/handlers/admin"
	publichandlers "github.com/pifa-next/internal/http/handlers/public"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pf"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		pub := apiV1.Group("/public")
		{
			pub.GET("/deals", publicHandler.ListDeals)
			pub.GET("/deals/:id", publicHandler.GetDeal)
			pub.POST("/deals/:id/preview", publicHandler.PreviewCommitment)
			pub.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 会员接口（需鉴权）
		member := apiV1.Group("")
		member.Use(MemberJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			member.GET("/me", publicHandler.Profile)
			member.POST("/commitments", publicHandler.CreateCommitment)
			member.GET("/commitments", publicHandler.ListMyCommitments)
			member.GET("/commitments/:id", publicHandler.GetMyCommitment)
			member.PUT("/commitments/:id/sizes", publicHandler.ReviseCommitment)
			member.POST("/commitments/:id/cancel", publicHandler.CancelCommitment)
			member.GET("/notifications", publicHandler.ListNotifications)
			member.GET("/notifications/unread-count", publicHandler.UnreadNotificationCount)
			member.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)
			member.POST("/notifications/read-all", publicHandler.MarkAllNotificationsRead)
		}

		// 管理端接口（管理员/分销商）
		admin := apiV1.Group("/admin")
		{
			authorized := admin.Use(
				StaffJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
				StaffRBACMiddleware(c.AuthzService),
			)
			{
				// 活动管理
				authorized.GET("/deals", adminHandler.AdminListDeals)
				authorized.GET("/deals/:id", adminHandler.AdminGetDeal)
				authorized.POST("/deals", adminHandler.AdminCreateDeal)
				authorized.PUT("/deals/:id", adminHandler.AdminUpdateDeal)
				authorized.PUT("/deals/:id/status", adminHandler.AdminUpdateDealStatus)
				authorized.GET("/deals/:id/notifications", adminHandler.AdminDealNotificationHistory)

				// 认购单审批
				authorized.GET("/commitments", adminHandler.AdminListCommitments)
				authorized.GET("/commitments/:id", adminHandler.AdminGetCommitment)
				authorized.PUT("/commitments/:id/status", adminHandler.AdminUpdateCommitmentStatus)
				authorized.PUT("/commitments/:id/payment-status", adminHandler.AdminUpdateCommitmentPaymentStatus)

				// 消息发送记录
				authorized.GET("/message-logs", adminHandler.AdminListMessageLogs)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
