package pgsql

import (
	"context"
	"errors"
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

type PgxChatRepository struct {
	BaseRepository
}

func newPgxChatRepository(db *pgxpool.Pool) portsrepo.ChatRepositoryFacade {
	return &PgxChatRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ChatRepositoryFacade = (*PgxChatRepository)(nil)

const roomColumns = `room_id, name, room_type, created_by_id, department_id, is_active, created_at`

func scanRoom(row pgx.Row) (domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := row.Scan(
		&room.RoomID,
		&room.Name,
		&room.RoomType,
		&room.CreatedByID,
		&room.DepartmentID,
		&room.IsActive,
		&room.CreatedAt,
	)
	return room, err
}

// SaveRoom inserts the room and its initial participant set in one database
// transaction.
func (r *PgxChatRepository) SaveRoom(ctx context.Context, room domain.ChatRoom, participantIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	roomQuery := `
		INSERT INTO chat_rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, roomQuery,
		room.RoomID,
		room.Name,
		room.RoomType,
		room.CreatedByID,
		room.DepartmentID,
		room.IsActive,
		room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save chat room: %w", err)
	}

	batch := &pgx.Batch{}
	for _, userID := range participantIDs {
		batch.Queue(`INSERT INTO chat_room_participants (room_id, user_id) VALUES ($1, $2);`, room.RoomID, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert participants for room %s: %w", room.RoomID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxChatRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	query := `SELECT ` + roomColumns + ` FROM chat_rooms WHERE room_id = $1;`
	room, err := scanRoom(r.Pool.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chat room %s: %w", roomID, err)
	}

	partQuery := `SELECT user_id FROM chat_room_participants WHERE room_id = $1 ORDER BY user_id;`
	rows, err := r.Pool.Query(ctx, partQuery, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants of room %s: %w", roomID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		room.Participants = append(room.Participants, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return &room, nil
}

func (r *PgxChatRepository) ListRoomsForUser(ctx context.Context, userID string, roomType *domain.RoomType) ([]domain.ChatRoom, error) {
	query := `
		SELECT r.room_id, r.name, r.room_type, r.created_by_id, r.department_id, r.is_active, r.created_at
		FROM chat_rooms r
		JOIN chat_room_participants p ON p.room_id = r.room_id
		WHERE p.user_id = $1 AND r.is_active
	`
	args := []interface{}{userID}
	if roomType != nil {
		args = append(args, *roomType)
		query += ` AND r.room_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY r.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms for user %s: %w", userID, err)
	}
	defer rows.Close()

	rooms := []domain.ChatRoom{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat room rows: %w", err)
	}
	return rooms, nil
}

func (r *PgxChatRepository) IsParticipant(ctx context.Context, roomID string, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM chat_room_participants WHERE room_id = $1 AND user_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, roomID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check participation in room %s: %w", roomID, err)
	}
	return exists, nil
}

func (r *PgxChatRepository) CountParticipants(ctx context.Context, roomID string) (int, error) {
	query := `SELECT COUNT(*) FROM chat_room_participants WHERE room_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participants of room %s: %w", roomID, err)
	}
	return count, nil
}

func (r *PgxChatRepository) AddParticipants(ctx context.Context, roomID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, userID := range userIDs {
		batch.Queue(`
			INSERT INTO chat_room_participants (room_id, user_id) VALUES ($1, $2)
			ON CONFLICT (room_id, user_id) DO NOTHING;
		`, roomID, userID)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to add participants to room %s: %w", roomID, err)
	}
	return nil
}

func (r *PgxChatRepository) RemoveParticipant(ctx context.Context, roomID string, userID string) error {
	query := `DELETE FROM chat_room_participants WHERE room_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, roomID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant from room %s: %w", roomID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxChatRepository) DeactivateRoom(ctx context.Context, roomID string) error {
	query := `UPDATE chat_rooms SET is_active = FALSE WHERE room_id = $1 AND is_active;`
	tag, err := r.Pool.Exec(ctx, query, roomID)
	if err != nil {
		return fmt.Errorf("failed to deactivate room %s: %w", roomID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Messages ---

const messageColumns = `message_id, room_id, sender_id, content, message_type, file_path, parent_message_id, created_at`

func scanMessage(row pgx.Row) (domain.ChatMessage, error) {
	var m domain.ChatMessage
	err := row.Scan(
		&m.MessageID,
		&m.RoomID,
		&m.SenderID,
		&m.Content,
		&m.MessageType,
		&m.FilePath,
		&m.ParentMessageID,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxChatRepository) SaveMessage(ctx context.Context, msg domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (` + messageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		msg.MessageID,
		msg.RoomID,
		msg.SenderID,
		msg.Content,
		msg.MessageType,
		msg.FilePath,
		msg.ParentMessageID,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

func (r *PgxChatRepository) FindMessageByID(ctx context.Context, messageID string) (*domain.ChatMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM chat_messages WHERE message_id = $1;`
	msg, err := scanMessage(r.Pool.QueryRow(ctx, query, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chat message %s: %w", messageID, err)
	}
	return &msg, nil
}

// ListMessages pages through a room in send order. The cursor is the
// (created_at, message_id) pair of the last item on the previous page.
func (r *PgxChatRepository) ListMessages(ctx context.Context, roomID string, limit int, nextToken *string) ([]domain.ChatMessage, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + messageColumns + ` FROM chat_messages WHERE room_id = $1`
	args := []interface{}{roomID}

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
		query += ` AND (created_at, message_id) > ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at, message_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query messages for room %s: %w", roomID, err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	var nextTokenVal *string
	if len(messages) > limit {
		messages = messages[:limit]
		last := messages[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.MessageID)
		nextTokenVal = &token
	}
	return messages, nextTokenVal, nil
}

func (r *PgxChatRepository) SaveUnreadStatuses(ctx context.Context, messageID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, userID := range userIDs {
		batch.Queue(`
			INSERT INTO message_read_statuses (message_id, user_id, is_read) VALUES ($1, $2, FALSE)
			ON CONFLICT (message_id, user_id) DO NOTHING;
		`, messageID, userID)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to save unread statuses for message %s: %w", messageID, err)
	}
	return nil
}

func (r *PgxChatRepository) UpsertReadStatus(ctx context.Context, messageID string, userID string, isRead bool, readAt *time.Time) error {
	query := `
		INSERT INTO message_read_statuses (message_id, user_id, is_read, read_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id, user_id) DO UPDATE SET
			is_read = EXCLUDED.is_read,
			read_at = EXCLUDED.read_at;
	`
	_, err := r.Pool.Exec(ctx, query, messageID, userID, isRead, readAt)
	if err != nil {
		return fmt.Errorf("failed to upsert read status for message %s: %w", messageID, err)
	}
	return nil
}

func (r *PgxChatRepository) ListMessageIDsExcludingSender(ctx context.Context, roomID string, senderID string) ([]string, error) {
	query := `SELECT message_id FROM chat_messages WHERE room_id = $1 AND sender_id != $2 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, roomID, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query message IDs for room %s: %w", roomID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan message ID row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message ID rows: %w", err)
	}
	return ids, nil
}

func (r *PgxChatRepository) CountUnreadForUser(ctx context.Context, roomID string, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM message_read_statuses s
		JOIN chat_messages m ON m.message_id = s.message_id
		WHERE m.room_id = $1 AND s.user_id = $2 AND NOT s.is_read;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, roomID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages in room %s: %w", roomID, err)
	}
	return count, nil
}

// --- Presence ---

func (r *PgxChatRepository) UpsertPresence(ctx context.Context, presence domain.UserPresence) error {
	query := `
		INSERT INTO user_presence (user_id, is_online, last_seen, device_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			is_online = EXCLUDED.is_online,
			last_seen = EXCLUDED.last_seen,
			device_token = COALESCE(EXCLUDED.device_token, user_presence.device_token);
	`
	_, err := r.Pool.Exec(ctx, query, presence.UserID, presence.IsOnline, presence.LastSeen, presence.DeviceToken)
	if err != nil {
		return fmt.Errorf("failed to upsert presence for user %s: %w", presence.UserID, err)
	}
	return nil
}

func (r *PgxChatRepository) FindPresence(ctx context.Context, userID string) (*domain.UserPresence, error) {
	query := `SELECT user_id, is_online, last_seen, device_token FROM user_presence WHERE user_id = $1;`
	var p domain.UserPresence
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.IsOnline, &p.LastSeen, &p.DeviceToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find presence for user %s: %w", userID, err)
	}
	return &p, nil
}
