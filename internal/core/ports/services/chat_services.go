package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// RoomSvc defines operations on chat rooms.
type RoomSvc interface {
	// CreateRoom opens a room with the creator and the given participants.
	// Private rooms must end up with exactly two participants.
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest, creatorUserID string) (*domain.ChatRoom, error)

	// GetRoomByID retrieves a room; participants only.
	GetRoomByID(ctx context.Context, roomID string, requestingUserID string) (*domain.ChatRoom, error)

	ListRooms(ctx context.Context, requestingUserID string, roomType *domain.RoomType) ([]domain.ChatRoom, error)

	AddParticipants(ctx context.Context, roomID string, userIDs []string, requestingUserID string) error

	// LeaveRoom removes the caller from the room. A private room dropping
	// below two participants is deactivated.
	LeaveRoom(ctx context.Context, roomID string, requestingUserID string) error
}

// MessageSvc defines operations on chat messages and read tracking.
type MessageSvc interface {
	// SendMessage posts a message into a room the sender participates in,
	// seeds unread rows for the other participants and publishes the message
	// on their private channels best-effort.
	SendMessage(ctx context.Context, roomID string, req dto.SendMessageRequest, senderUserID string) (*domain.ChatMessage, error)

	// ListMessages retrieves a page of room messages; participants only.
	ListMessages(ctx context.Context, roomID string, params dto.ListMessagesParams, requestingUserID string) (*dto.ListMessagesResponse, error)

	// MarkMessagesRead marks the given messages read for the caller; the
	// caller's own messages are skipped.
	MarkMessagesRead(ctx context.Context, roomID string, messageIDs []string, requestingUserID string) error

	// MarkAllMessagesRead marks every message in the room read for the
	// caller.
	MarkAllMessagesRead(ctx context.Context, roomID string, requestingUserID string) error

	CountUnread(ctx context.Context, roomID string, requestingUserID string) (int, error)
}

// PresenceSvc tracks user connection state.
type PresenceSvc interface {
	// UpdatePresence upserts the caller's presence row.
	UpdatePresence(ctx context.Context, req dto.UpdatePresenceRequest, userID string) error

	// GetPresence returns apperrors.ErrNotFound for a never-seen user.
	GetPresence(ctx context.Context, userID string) (*domain.UserPresence, error)
}

// ChatSvcFacade combines all chat-related service interfaces.
type ChatSvcFacade interface {
	RoomSvc
	MessageSvc
	PresenceSvc
}
