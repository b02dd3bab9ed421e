package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// NotificationRepositoryFacade covers persisted notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, n domain.Notification) error

	// ListForUser retrieves the user's notifications newest first using
	// token-based pagination. With unreadOnly the read rows are filtered
	// out before pagination so pages stay full.
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int, nextToken *string) ([]domain.Notification, *string, error)

	// MarkRead marks one notification read; scoped to the owning user.
	MarkRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllRead marks every unread notification of the user read and returns
	// the number of rows updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
