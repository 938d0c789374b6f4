package handler

import (
	"strconv"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification inbox endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's newest notifications.
// GET /api/v1/notifications?limit=<n>
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	notifications, err := h.notificationService.List(jwt.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	infos := make([]*response.NotificationInfo, 0, len(notifications))
	for _, n := range notifications {
		infos = append(infos, response.FilterNotificationInfo(n))
	}
	response.Success(c, infos)
}

// UnreadCount returns the caller's unread badge.
// GET /api/v1/notifications/unread_count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// MarkRead flips one notification to read.
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(jwt.GetUserID(c), notificationID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "marked read", nil)
}

// MarkAllRead flips every unread notification of the caller.
// POST /api/v1/notifications/read_all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(jwt.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "all marked read", nil)
}

// Delete removes one notification.
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(jwt.GetUserID(c), notificationID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "notification deleted", nil)
}
