package worker

import (
	"context"
	"errors"
	"time"

	"github.com/pifa-next/internal/config"
	"github.com/pifa-next/internal/logger"
	"github.com/pifa-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultDealExpireSweepInterval = time.Minute

// Service 异步队列服务
type Service struct {
	name                string
	server              *asynq.Server
	mux                 *asynq.ServeMux
	consumer            *Consumer
	expireSweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepInterval := defaultDealExpireSweepInterval
	if cfg.Deal.ExpireSweepIntervalSeconds > 0 {
		sweepInterval = time.Duration(cfg.Deal.ExpireSweepIntervalSeconds) * time.Second
	}

	return &Service{
		name:                "worker",
		server:              server,
		mux:                 mux,
		consumer:            consumer,
		expireSweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.DealService != nil {
		go s.runDealExpireSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runDealExpireSweepLoop 周期巡检并下架已过结束时间的活动
func (s *Service) runDealExpireSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.DealService == nil {
		return
	}
	runOnce := func() {
		if _, err := s.consumer.DealService.ExpireDueDeals(time.Now()); err != nil {
			logger.Warnw("worker_deal_expire_sweep_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.expireSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
