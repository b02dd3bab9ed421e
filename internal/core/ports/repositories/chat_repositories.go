package repositories

import (
	"context"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// RoomReader defines read operations for chat rooms.
type RoomReader interface {
	// FindRoomByID retrieves a room with its participant IDs populated.
	FindRoomByID(ctx context.Context, roomID string) (*domain.ChatRoom, error)

	// ListRoomsForUser retrieves the active rooms the user participates in,
	// newest first, optionally filtered by room type.
	ListRoomsForUser(ctx context.Context, userID string, roomType *domain.RoomType) ([]domain.ChatRoom, error)

	IsParticipant(ctx context.Context, roomID string, userID string) (bool, error)
	CountParticipants(ctx context.Context, roomID string) (int, error)
}

// RoomWriter defines write operations for chat rooms.
type RoomWriter interface {
	// SaveRoom persists the room and its initial participant set atomically.
	SaveRoom(ctx context.Context, room domain.ChatRoom, participantIDs []string) error

	AddParticipants(ctx context.Context, roomID string, userIDs []string) error
	RemoveParticipant(ctx context.Context, roomID string, userID string) error

	// DeactivateRoom soft-closes a room; rooms are never deleted.
	DeactivateRoom(ctx context.Context, roomID string) error
}

// MessageRepository covers messages and per-user read tracking.
type MessageRepository interface {
	SaveMessage(ctx context.Context, msg domain.ChatMessage) error
	FindMessageByID(ctx context.Context, messageID string) (*domain.ChatMessage, error)

	// ListMessages retrieves a page of room messages in send order using
	// token-based pagination.
	ListMessages(ctx context.Context, roomID string, limit int, nextToken *string) ([]domain.ChatMessage, *string, error)

	// SaveUnreadStatuses inserts an unread read-status row per user for the
	// message, skipping pairs that already exist.
	SaveUnreadStatuses(ctx context.Context, messageID string, userIDs []string) error

	// UpsertReadStatus marks the message read (or unread) for the user.
	UpsertReadStatus(ctx context.Context, messageID string, userID string, isRead bool, readAt *time.Time) error

	// ListMessageIDsExcludingSender returns the IDs of all room messages not
	// authored by the given user.
	ListMessageIDsExcludingSender(ctx context.Context, roomID string, senderID string) ([]string, error)

	// CountUnreadForUser counts unread read-status rows for the user in a room.
	CountUnreadForUser(ctx context.Context, roomID string, userID string) (int, error)
}

// PresenceRepository tracks user connection state.
type PresenceRepository interface {
	// UpsertPresence inserts or refreshes the presence row keyed by user.
	UpsertPresence(ctx context.Context, presence domain.UserPresence) error

	// FindPresence returns apperrors.ErrNotFound when the user was never seen.
	FindPresence(ctx context.Context, userID string) (*domain.UserPresence, error)
}

// ChatRepositoryFacade combines all chat-related repository interfaces.
type ChatRepositoryFacade interface {
	RoomReader
	RoomWriter
	MessageRepository
	PresenceRepository
}
