package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

// notificationService persists notifications and delivers them over the
// realtime transport.
type notificationService struct {
	notifRepo portsrepo.NotificationRepositoryFacade
	publisher portssvc.RealtimePublisher
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifRepo portsrepo.NotificationRepositoryFacade, publisher portssvc.RealtimePublisher) portssvc.NotificationSvcFacade {
	return &notificationService{notifRepo: notifRepo, publisher: publisher}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Notify persists a notification and then publishes it on the recipient's
// private channel. Publish failure is logged and swallowed; the notification
// stays persisted either way.
func (s *notificationService) Notify(ctx context.Context, n domain.Notification) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if n.NotificationID == "" {
		n.NotificationID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = nowUTC()
	}
	if n.EventType == "" {
		n.EventType = domain.EventGeneric
	}

	if err := s.notifRepo.SaveNotification(ctx, n); err != nil {
		logger.Error("Failed to save notification", slog.String("error", err.Error()), slog.String("recipient_id", n.UserID))
		return fmt.Errorf("failed to save notification: %w", err)
	}

	channel := portssvc.UserChannel(n.UserID)
	if err := s.publisher.Trigger(channel, string(n.EventType), dto.ToNotificationResponse(&n)); err != nil {
		// Persisted already; realtime delivery is best-effort.
		logger.Warn("Failed to publish notification", slog.String("error", err.Error()), slog.String("channel", channel))
	}

	return nil
}

// ListNotifications retrieves the user's notifications newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	notifications, newToken, err := s.notifRepo.ListForUser(ctx, userID, params.UnreadOnly, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}

	resp := &dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationResponses(notifications),
	}
	if newToken != nil {
		resp.NextToken = *newToken
	}
	return resp, nil
}

// MarkRead marks one notification read; scoped to the owning user.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every unread notification of the user read.
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// AuthorizeChannel countersigns a private-channel subscription. Users may
// only subscribe to their own channel.
func (s *notificationService) AuthorizeChannel(ctx context.Context, userID string, socketID string, channelName string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if channelName != portssvc.UserChannel(userID) {
		logger.Warn("Channel auth rejected", slog.String("channel", channelName), slog.String("user_id", userID))
		return nil, apperrors.ErrForbidden
	}

	body := []byte(fmt.Sprintf("socket_id=%s&channel_name=%s", socketID, channelName))
	auth, err := s.publisher.AuthorizePrivateChannel(body)
	if err != nil {
		logger.Error("Failed to sign channel subscription", slog.String("error", err.Error()), slog.String("channel", channelName))
		return nil, fmt.Errorf("failed to sign channel subscription: %w", err)
	}
	return auth, nil
}
