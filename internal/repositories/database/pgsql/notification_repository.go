package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/faroukh/office_mgmt_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	db *pgxpool.Pool
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{db: db}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	var relatedKind, relatedID *string
	if n.Related != nil {
		kind := string(n.Related.Kind)
		relatedKind = &kind
		relatedID = &n.Related.ID
	}
	query := `
		INSERT INTO notifications (notification_id, user_id, message, event_type, link, related_kind, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.Message,
		n.EventType,
		n.Link,
		relatedKind,
		relatedID,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var n domain.Notification
	var relatedKind, relatedID *string
	err := row.Scan(
		&n.NotificationID,
		&n.UserID,
		&n.Message,
		&n.EventType,
		&n.Link,
		&relatedKind,
		&relatedID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err == nil && relatedKind != nil && relatedID != nil {
		n.Related = &domain.RelatedRef{Kind: domain.RelatedKind(*relatedKind), ID: *relatedID}
	}
	return n, err
}

// ListForUser pages through the user's notifications newest first. The
// cursor is the (created_at, notification_id) pair of the last item on the
// previous page.
func (r *PgxNotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT notification_id, user_id, message, event_type, link, related_kind, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if unreadOnly {
		query += ` AND NOT is_read`
	}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastCreatedAt, fields[1])
		query += ` AND (created_at, notification_id) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, notification_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	var nextTokenVal *string
	if len(notifications) > limit {
		notifications = notifications[:limit]
		last := notifications[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.NotificationID)
		nextTokenVal = &token
	}
	return notifications, nextTokenVal, nil
}

func (r *PgxNotificationRepository) MarkRead(ctx context.Context, notificationID string, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2;`
	tag, err := r.db.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read;`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read for user %s: %w", userID, err)
	}
	return int(tag.RowsAffected()), nil
}
