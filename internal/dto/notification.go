package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Message        string    `json:"message"`
	EventType      string    `json:"eventType"`
	Link           *string   `json:"link"`
	RelatedKind    *string   `json:"relatedKind"`
	RelatedID      *string   `json:"relatedID"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	resp := NotificationResponse{
		NotificationID: n.NotificationID,
		Message:        n.Message,
		EventType:      string(n.EventType),
		Link:           n.Link,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
	if n.Related != nil {
		kind := string(n.Related.Kind)
		id := n.Related.ID
		resp.RelatedKind = &kind
		resp.RelatedID = &id
	}
	return resp
}

// ToNotificationResponses converts a slice of domain.Notification.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(ns))
	for i := range ns {
		responses[i] = ToNotificationResponse(&ns[i])
	}
	return responses
}

// ListNotificationsParams drives token-based pagination over a user's
// notifications.
type ListNotificationsParams struct {
	Limit      int    `form:"limit"`
	NextToken  string `form:"nextToken"`
	UnreadOnly bool   `form:"unread_only"`
}

// ListNotificationsResponse is a page of notifications plus the continuation
// token.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
