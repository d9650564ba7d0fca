package provider

import (
	"github.com/pifa-next/internal/authz"
	"github.com/pifa-next/internal/cache"
	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/queue"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	DealRepo         repository.DealRepository
	CommitmentRepo   repository.CommitmentRepository
	NotificationRepo repository.NotificationRepository
	MessageLogRepo   repository.MessageLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	DealService         *service.DealService
	CommitmentService   *service.CommitmentService
	NotificationService *service.NotificationService
	SMSService          *service.SMSService
	EmailService        *service.EmailService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.DealRepo = repository.NewDealRepository(db)
	c.CommitmentRepo = repository.NewCommitmentRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.MessageLogRepo = repository.NewMessageLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapPolicies(); err != nil {
		logger.Errorw("provider_bootstrap_policies_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CaptchaService)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.SMSService = service.NewSMSService(c.Config.SMS, c.MessageLogRepo)
	c.EmailService = service.NewEmailService(c.Config.Email, c.MessageLogRepo)
	c.DealService = service.NewDealService(c.DealRepo)
	c.CommitmentService = service.NewCommitmentService(
		c.CommitmentRepo,
		c.DealRepo,
		c.UserRepo,
		c.QueueClient,
		c.NotificationService,
		c.SMSService,
		c.EmailService,
	)
}
