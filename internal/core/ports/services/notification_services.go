package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// NotificationSvcFacade covers persisted notifications and their realtime
// delivery.
type NotificationSvcFacade interface {
	// Notify persists a notification and then publishes it on the recipient's
	// private channel. Publish failure is logged and swallowed; the
	// notification stays persisted either way.
	Notify(ctx context.Context, n domain.Notification) error

	ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error)

	MarkRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllRead returns the number of notifications flipped to read.
	MarkAllRead(ctx context.Context, userID string) (int, error)

	// AuthorizeChannel countersigns a private-channel subscription. Users may
	// only subscribe to their own channel.
	AuthorizeChannel(ctx context.Context, userID string, socketID string, channelName string) ([]byte, error)
}
