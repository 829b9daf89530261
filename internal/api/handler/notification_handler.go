package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type NotificationHandler struct {
	service    ports.NotificationService
	dispatcher ports.NotificationDispatcher
}

func NewNotificationHandler(service ports.NotificationService, dispatcher ports.NotificationDispatcher) *NotificationHandler {
	return &NotificationHandler{service: service, dispatcher: dispatcher}
}

type createNotificationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Type        string `json:"type"         validate:"omitempty,oneof=general leave_status new_leave_request task_update"`
	Message     string `json:"message"      validate:"required"`
}

// ListFor handles GET /api/notification/:userId.
func (h *NotificationHandler) ListFor(c echo.Context) error {
	userID := c.Param("userId")
	if err := requireSelfOrAdmin(c, userID); err != nil {
		return err
	}

	notifications, err := h.service.ListFor(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, notifications)
}

// UnreadCount handles GET /api/notification/unread/:userId.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := c.Param("userId")
	if err := requireSelfOrAdmin(c, userID); err != nil {
		return err
	}

	count, err := h.service.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]int64{"unread": count})
}

// Create handles POST /api/notification. The notification is enqueued for
// asynchronous persistence and relay delivery, so the response is 202.
func (h *NotificationHandler) Create(c echo.Context) error {
	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	senderID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notifType := domain.NotificationType(req.Type)
	if notifType == "" {
		notifType = domain.NotifyGeneral
	}

	h.dispatcher.Enqueue(ports.NotificationInput{
		RecipientID: req.RecipientID,
		SenderID:    senderID,
		Type:        notifType,
		Message:     req.Message,
	})

	metrics.NotificationsDispatchedTotal.WithLabelValues(string(notifType)).Inc()
	return c.JSON(http.StatusAccepted, successResponse{Success: true, Data: map[string]string{"message": "notification queued"}})
}

// MarkRead handles PUT /api/notification/:notificationId/read. The service
// rejects callers who are neither the recipient nor an admin.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actorID, actorRole, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notification, err := h.service.MarkRead(c.Request().Context(), c.Param("notificationId"), actorID, actorRole)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, notification)
}

// MarkAllRead handles PUT /api/notification/mark-all-read/:userId.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID := c.Param("userId")
	if err := requireSelfOrAdmin(c, userID); err != nil {
		return err
	}

	updated, err := h.service.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]int64{"updated": updated})
}

// Delete handles DELETE /api/notification/:notificationId. Same ownership
// rule as MarkRead.
func (h *NotificationHandler) Delete(c echo.Context) error {
	actorID, actorRole, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("notificationId"), actorID, actorRole); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"message": "notification deleted"})
}
