package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pifa-next/internal/constants"
	"github.com/pifa-next/internal/models"
	"github.com/pifa-next/internal/queue"
	"github.com/pifa-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNotificationTest(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return NewNotificationService(repository.NewNotificationRepository(db)), db
}

func TestNotificationDispatchAndRead(t *testing.T) {
	svc, db := setupNotificationTest(t)

	relatedID := uint(42)
	err := svc.Dispatch(queue.NotificationDispatchPayload{
		RecipientID: 1,
		Type:        constants.NotificationTypeCommitment,
		SubType:     constants.NotificationSubTypeApproved,
		Title:       "认购单状态更新",
		Message:     "认购单已通过",
		RelatedID:   &relatedID,
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("加载通知失败: %v", err)
	}
	if stored.RecipientID != 1 || stored.SubType != constants.NotificationSubTypeApproved {
		t.Fatalf("unexpected notification: %+v", stored)
	}
	// 未指定优先级时落默认值
	if stored.Priority != constants.NotificationPriorityNormal {
		t.Fatalf("expected normal priority, got %s", stored.Priority)
	}

	unread, err := svc.UnreadCount(1)
	if err != nil {
		t.Fatalf("UnreadCount error: %v", err)
	}
	if unread != 1 {
		t.Fatalf("expected 1 unread, got %d", unread)
	}

	if err := svc.MarkRead(stored.ID, 1); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	unread, err = svc.UnreadCount(1)
	if err != nil {
		t.Fatalf("UnreadCount error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread after read, got %d", unread)
	}
}

func TestNotificationDispatchSkipsEmptyRecipient(t *testing.T) {
	svc, db := setupNotificationTest(t)

	if err := svc.Dispatch(queue.NotificationDispatchPayload{RecipientID: 0, Message: "无人接收"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("统计通知失败: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no notification rows, got %d", count)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	svc, db := setupNotificationTest(t)

	notification := &models.Notification{
		RecipientID: 1,
		Type:        constants.NotificationTypeCommitment,
		SubType:     constants.NotificationSubTypeCreated,
		Title:       "新认购单",
		Message:     "x",
		Priority:    constants.NotificationPriorityNormal,
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("创建通知失败: %v", err)
	}

	// 非接收者不可见
	if err := svc.MarkRead(notification.ID, 2); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.MarkRead(notification.ID, 1); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, db := setupNotificationTest(t)

	for i := 0; i < 3; i++ {
		if err := db.Create(&models.Notification{
			RecipientID: 1,
			Type:        constants.NotificationTypeCommitment,
			SubType:     constants.NotificationSubTypeCreated,
			Title:       fmt.Sprintf("通知 %d", i),
			Message:     "x",
			Priority:    constants.NotificationPriorityNormal,
		}).Error; err != nil {
			t.Fatalf("创建通知失败: %v", err)
		}
	}

	if err := svc.MarkAllRead(1); err != nil {
		t.Fatalf("MarkAllRead error: %v", err)
	}
	unread, err := svc.UnreadCount(1)
	if err != nil {
		t.Fatalf("UnreadCount error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}

	rows, total, err := svc.ListForRecipient(repository.NotificationListFilter{RecipientID: 1})
	if err != nil {
		t.Fatalf("ListForRecipient error: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("expected 3 notifications, got total=%d", total)
	}
}
