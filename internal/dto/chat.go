package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// CreateRoomRequest defines the payload for opening a chat room. Private
// rooms hold exactly two participants; the creator is always included.
type CreateRoomRequest struct {
	Name           string   `json:"name"`
	RoomType       string   `json:"roomType" binding:"required,oneof=private group department general"`
	DepartmentID   *string  `json:"departmentID"`
	ParticipantIDs []string `json:"participantIDs" binding:"required,min=1"`
}

// RoomResponse defines the data returned for a chat room.
type RoomResponse struct {
	RoomID       string    `json:"roomID"`
	Name         string    `json:"name"`
	RoomType     string    `json:"roomType"`
	CreatedByID  string    `json:"createdByID"`
	DepartmentID *string   `json:"departmentID"`
	IsActive     bool      `json:"isActive"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToRoomResponse converts a domain.ChatRoom.
func ToRoomResponse(r *domain.ChatRoom) RoomResponse {
	return RoomResponse{
		RoomID:       r.RoomID,
		Name:         r.Name,
		RoomType:     string(r.RoomType),
		CreatedByID:  r.CreatedByID,
		DepartmentID: r.DepartmentID,
		IsActive:     r.IsActive,
		Participants: r.Participants,
		CreatedAt:    r.CreatedAt,
	}
}

// ToRoomResponses converts a slice of domain.ChatRoom.
func ToRoomResponses(rooms []domain.ChatRoom) []RoomResponse {
	responses := make([]RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = ToRoomResponse(&rooms[i])
	}
	return responses
}

// SendMessageRequest defines the payload for posting a message into a room.
type SendMessageRequest struct {
	Content         string  `json:"content" binding:"required"`
	MessageType     string  `json:"messageType" binding:"omitempty,oneof=text file image system"`
	FilePath        *string `json:"filePath"`
	ParentMessageID *string `json:"parentMessageID"`
}

// MessageResponse defines the data returned for a chat message.
type MessageResponse struct {
	MessageID       string    `json:"messageID"`
	RoomID          string    `json:"roomID"`
	SenderID        string    `json:"senderID"`
	Content         string    `json:"content"`
	MessageType     string    `json:"messageType"`
	FilePath        *string   `json:"filePath"`
	ParentMessageID *string   `json:"parentMessageID"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToMessageResponse converts a domain.ChatMessage.
func ToMessageResponse(m *domain.ChatMessage) MessageResponse {
	return MessageResponse{
		MessageID:       m.MessageID,
		RoomID:          m.RoomID,
		SenderID:        m.SenderID,
		Content:         m.Content,
		MessageType:     string(m.MessageType),
		FilePath:        m.FilePath,
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt,
	}
}

// ListMessagesParams drives token-based pagination over a room's messages.
type ListMessagesParams struct {
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

// ListMessagesResponse is a page of messages plus the continuation token.
type ListMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	NextToken string            `json:"nextToken,omitempty"`
}

// MarkReadRequest marks the given messages as read by the caller. Message IDs
// of the caller's own messages are ignored.
type MarkReadRequest struct {
	MessageIDs []string `json:"messageIDs" binding:"required,min=1"`
}

// UpdatePresenceRequest defines the payload reported by a connecting or
// disconnecting client.
type UpdatePresenceRequest struct {
	IsOnline    bool    `json:"isOnline"`
	DeviceToken *string `json:"deviceToken"`
}

// PresenceResponse defines the data returned for a user's presence.
type PresenceResponse struct {
	UserID   string    `json:"userID"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// ToPresenceResponse converts a domain.UserPresence.
func ToPresenceResponse(p *domain.UserPresence) PresenceResponse {
	return PresenceResponse{
		UserID:   p.UserID,
		IsOnline: p.IsOnline,
		LastSeen: p.LastSeen,
	}
}

// ChannelAuthRequest carries the realtime client's channel authorization
// form fields.
type ChannelAuthRequest struct {
	SocketID    string `form:"socket_id" binding:"required"`
	ChannelName string `form:"channel_name" binding:"required"`
}
