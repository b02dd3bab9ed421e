package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:id/read", h.markRead)
		notifications.POST("/read-all", h.markAllRead)
	}

	rg.POST("/realtime/auth", h.authorizeChannel)
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Description Newest first, token-paginated
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Opaque pagination token"
// @Param   unread_only query bool false "Only unread notifications"
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	resp, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param   id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Notification not found for this user"
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce  json
// @Success 200 {object} dto.MarkAllReadResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *notificationHandler) markAllRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// authorizeChannel godoc
// @Summary Authorize a private realtime channel subscription
// @Description Signs the subscription request after verifying the channel belongs to the caller
// @Tags notifications
// @Accept  x-www-form-urlencoded
// @Produce  json
// @Param   socket_id formData string true "Realtime socket ID"
// @Param   channel_name formData string true "Channel being subscribed"
// @Success 200 {object} map[string]string "Signed auth payload"
// @Failure 403 {object} map[string]string "Channel does not belong to the caller"
// @Security BearerAuth
// @Router /realtime/auth [post]
func (h *notificationHandler) authorizeChannel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChannelAuthRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind channel auth request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	authBytes, err := h.notificationService.AuthorizeChannel(c.Request.Context(), userID, req.SocketID, req.ChannelName)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to authorize channel")
		return
	}

	// The signed payload is already JSON produced by the realtime provider.
	c.Data(http.StatusOK, "application/json", authBytes)
}
