package domain

import "time"

// RoomType classifies a chat room. Private rooms are capped at two
// participants.
type RoomType string

const (
	RoomPrivate    RoomType = "private"
	RoomGroup      RoomType = "group"
	RoomDepartment RoomType = "department"
	RoomGeneral    RoomType = "general"
)

// PrivateRoomCapacity is the maximum participant count of a private room.
const PrivateRoomCapacity = 2

// ChatRoom is a conversation with a participant set. Rooms are never deleted;
// a private room that drops below two participants is deactivated.
type ChatRoom struct {
	RoomID       string   `json:"roomID"`
	Name         string   `json:"name"`
	RoomType     RoomType `json:"roomType"`
	CreatedByID  string   `json:"createdByID"`
	DepartmentID *string  `json:"departmentID"`
	IsActive     bool     `json:"isActive"`
	Participants []string `json:"participants,omitempty"` // UserIDs
	CreatedAt    time.Time `json:"createdAt"`
}

// MessageType classifies the payload of a chat message.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageFile   MessageType = "file"
	MessageImage  MessageType = "image"
	MessageSystem MessageType = "system"
)

// ChatMessage is one message in a room.
type ChatMessage struct {
	MessageID       string      `json:"messageID"`
	RoomID          string      `json:"roomID"`
	SenderID        string      `json:"senderID"`
	Content         string      `json:"content"`
	MessageType     MessageType `json:"messageType"`
	FilePath        *string     `json:"filePath"`
	ParentMessageID *string     `json:"parentMessageID"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// MessageReadStatus tracks per-user read state of a message. A
// (message, user) pair is unique; the sender never gets a row for their own
// messages.
type MessageReadStatus struct {
	MessageID string     `json:"messageID"`
	UserID    string     `json:"userID"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt"`
}

// UserPresence is the latest known connection state of a user, upserted on
// every presence change. Absence of a row means never seen.
type UserPresence struct {
	UserID      string    `json:"userID"`
	IsOnline    bool      `json:"isOnline"`
	LastSeen    time.Time `json:"lastSeen"`
	DeviceToken *string   `json:"deviceToken"`
}
