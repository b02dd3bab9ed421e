package domain

import "time"

// EventType classifies what a notification is about.
type EventType string

const (
	EventNewTask             EventType = "NEW_TASK"
	EventStatusChange        EventType = "STATUS_CHANGE"
	EventNewMessage          EventType = "NEW_MESSAGE"
	EventPermissionRequest   EventType = "PERMISSION_REQUEST"
	EventPermissionResponse  EventType = "PERMISSION_RESPONSE"
	EventTransactionAssigned EventType = "TRANSACTION_ASSIGNED"
	EventLeaveResponse       EventType = "LEAVE_RESPONSE"
	EventGeneric             EventType = "GENERIC_NOTIFICATION"
)

// RelatedKind names the closed set of entity kinds a notification may point
// at.
type RelatedKind string

const (
	RelatedTransaction       RelatedKind = "transaction"
	RelatedTask              RelatedKind = "task"
	RelatedInvoice           RelatedKind = "invoice"
	RelatedChatMessage       RelatedKind = "chat_message"
	RelatedLeaveRequest      RelatedKind = "leave_request"
	RelatedPermissionRequest RelatedKind = "permission_request"
)

// RelatedRef is a tagged reference to the entity a notification concerns.
type RelatedRef struct {
	Kind RelatedKind `json:"kind"`
	ID   string      `json:"id"`
}

// Notification is a persisted message for a single user, delivered
// best-effort over the realtime channel after being stored.
type Notification struct {
	NotificationID string      `json:"notificationID"`
	UserID         string      `json:"userID"`
	Message        string      `json:"message"`
	EventType      EventType   `json:"eventType"`
	Link           *string     `json:"link"`
	Related        *RelatedRef `json:"related"`
	IsRead         bool        `json:"isRead"`
	CreatedAt      time.Time   `json:"createdAt"`
}
