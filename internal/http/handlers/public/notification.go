package public

import (
	"errors"
	"strconv"

	handlershared "github.com/pifa-next/internal/http/handlers/shared"
	"github.com/pifa-next/internal/http/response"
	"github.com/pifa-next/internal/repository"
	"github.com/pifa-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListNotifications 当前用户站内通知列表
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	notifications, total, err := h.NotificationService.ListForRecipient(repository.NotificationListFilter{
		Page:        page,
		PageSize:    pageSize,
		RecipientID: userID,
		Type:        c.Query("type"),
		OnlyUnread:  c.Query("only_unread") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.NewPagination(page, pageSize, total))
}

// UnreadNotificationCount 未读通知数量
func (h *Handler) UnreadNotificationCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.UnreadCount(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// MarkNotificationRead 标记单条通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	notificationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.NotificationService.MarkRead(notificationID, userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			respondError(c, response.CodeNotFound, "error.notification_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.Success(c, gin.H{"read": true})
}

// MarkAllNotificationsRead 标记全部通知已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.NotificationService.MarkAllRead(userID); err != nil {
		respondError(c, response.CodeInternal, "error.server_error", err)
		return
	}

	response.Success(c, gin.H{"read": true})
}
