package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pifa-next/internal/cache"
	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/queue"
	"github.com/pifa-next/internal/repository"
)

// NotificationService 站内通知服务
//
// 负责把通知载荷落为站内通知行，并提供会员端的查询与已读操作。
// 分发入口既被 worker 消费队列任务时调用，也作为队列关闭时的本地直发路径。
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	dedupeTTL        time.Duration
}

// NewNotificationService 创建站内通知服务
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		dedupeTTL:        5 * time.Minute,
	}
}

// Dispatch 分发一条通知（幂等：短窗口内相同载荷只落一条）
func (s *NotificationService) Dispatch(payload queue.NotificationDispatchPayload) error {
	if s == nil || payload.RecipientID == 0 {
		return nil
	}
	priority := strings.TrimSpace(payload.Priority)
	if priority == "" {
		priority = constants.NotificationPriorityNormal
	}

	ok, err := s.acquireDedupe(context.Background(), payload)
	if err == nil && !ok {
		return nil
	}

	return s.notificationRepo.Create(&models.Notification{
		RecipientID: payload.RecipientID,
		SenderID:    payload.SenderID,
		Type:        payload.Type,
		SubType:     payload.SubType,
		Title:       payload.Title,
		Message:     payload.Message,
		RelatedID:   payload.RelatedID,
		Priority:    priority,
	})
}

// ListForRecipient 接收者通知列表
func (s *NotificationService) ListForRecipient(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByRecipient(filter)
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(recipientID)
}

// MarkRead 标记单条已读
func (s *NotificationService) MarkRead(id, recipientID uint) error {
	notification, err := s.notificationRepo.GetByIDAndRecipient(id, recipientID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	return s.notificationRepo.MarkRead(id, recipientID, time.Now())
}

// MarkAllRead 标记全部已读
func (s *NotificationService) MarkAllRead(recipientID uint) error {
	return s.notificationRepo.MarkAllRead(recipientID, time.Now())
}

func (s *NotificationService) acquireDedupe(ctx context.Context, payload queue.NotificationDispatchPayload) (bool, error) {
	signature := strings.Builder{}
	signature.WriteString(fmt.Sprintf("%d|%s|%s|", payload.RecipientID, payload.Type, payload.SubType))
	if payload.RelatedID != nil {
		signature.WriteString(fmt.Sprintf("%d", *payload.RelatedID))
	}
	signature.WriteString("|")
	signature.WriteString(payload.Message)
	hash := sha1.Sum([]byte(signature.String()))
	key := "notification:dedupe:" + hex.EncodeToString(hash[:])
	return cache.SetNX(ctx, key, "1", s.dedupeTTL)
}
