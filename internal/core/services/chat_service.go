package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

var (
	ErrNotParticipant      = errors.New("user is not a participant of this room")
	ErrPrivateRoomCapacity = errors.New("private rooms hold exactly two participants")
)

// chatService manages rooms, messages, read tracking and presence.
type chatService struct {
	chatRepo  portsrepo.ChatRepositoryFacade
	notifier  portssvc.NotificationSvcFacade
	publisher portssvc.RealtimePublisher
}

// NewChatService creates a new chat service.
func NewChatService(chatRepo portsrepo.ChatRepositoryFacade, notifier portssvc.NotificationSvcFacade, publisher portssvc.RealtimePublisher) portssvc.ChatSvcFacade {
	return &chatService{chatRepo: chatRepo, notifier: notifier, publisher: publisher}
}

var _ portssvc.ChatSvcFacade = (*chatService)(nil)

// CreateRoom opens a room with the creator and the given participants.
func (s *chatService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest, creatorUserID string) (*domain.ChatRoom, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	participants := uniqueStrings(append([]string{creatorUserID}, req.ParticipantIDs...))

	roomType := domain.RoomType(req.RoomType)
	if roomType == domain.RoomPrivate && len(participants) != domain.PrivateRoomCapacity {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPrivateRoomCapacity.Error())
	}

	room := domain.ChatRoom{
		RoomID:       uuid.NewString(),
		Name:         req.Name,
		RoomType:     roomType,
		CreatedByID:  creatorUserID,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		Participants: participants,
		CreatedAt:    nowUTC(),
	}

	if err := s.chatRepo.SaveRoom(ctx, room, participants); err != nil {
		logger.Error("Failed to save room", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	logger.Info("Chat room created", slog.String("room_id", room.RoomID), slog.String("room_type", string(roomType)))
	return &room, nil
}

// requireParticipant returns ErrForbidden when the user is not in the room.
// SendMessage does its own check: a non-participant sender is a validation
// failure, not a permission one.
func (s *chatService) requireParticipant(ctx context.Context, roomID string, userID string) error {
	ok, err := s.chatRepo.IsParticipant(ctx, roomID, userID)
	if err != nil {
		return fmt.Errorf("failed to check room participancy: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotParticipant.Error())
	}
	return nil
}

// GetRoomByID retrieves a room; participants only.
func (s *chatService) GetRoomByID(ctx context.Context, roomID string, requestingUserID string) (*domain.ChatRoom, error) {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return nil, err
	}
	return s.chatRepo.FindRoomByID(ctx, roomID)
}

// ListRooms retrieves the active rooms the caller participates in.
func (s *chatService) ListRooms(ctx context.Context, requestingUserID string, roomType *domain.RoomType) ([]domain.ChatRoom, error) {
	return s.chatRepo.ListRoomsForUser(ctx, requestingUserID, roomType)
}

// AddParticipants adds users to a non-private room.
func (s *chatService) AddParticipants(ctx context.Context, roomID string, userIDs []string, requestingUserID string) error {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return err
	}

	room, err := s.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room.RoomType == domain.RoomPrivate {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPrivateRoomCapacity.Error())
	}

	added := uniqueStrings(userIDs)
	if err := s.chatRepo.AddParticipants(ctx, roomID, added); err != nil {
		return err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	for _, addedID := range added {
		if err := s.notifier.Notify(ctx, domain.Notification{
			UserID:    addedID,
			Message:   fmt.Sprintf("تمت إضافتك إلى غرفة المحادثة %s", room.Name),
			EventType: domain.EventGeneric,
		}); err != nil {
			logger.Warn("Failed to notify added participant", slog.String("error", err.Error()), slog.String("user_id", addedID))
		}
	}
	return nil
}

// LeaveRoom removes the caller from the room. A private room dropping below
// two participants is deactivated; rooms are never deleted.
func (s *chatService) LeaveRoom(ctx context.Context, roomID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return err
	}

	room, err := s.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return err
	}

	if err := s.chatRepo.RemoveParticipant(ctx, roomID, requestingUserID); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	if room.RoomType == domain.RoomPrivate {
		count, err := s.chatRepo.CountParticipants(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if count < domain.PrivateRoomCapacity {
			if err := s.chatRepo.DeactivateRoom(ctx, roomID); err != nil {
				return fmt.Errorf("failed to deactivate room: %w", err)
			}
			logger.Info("Private room deactivated", slog.String("room_id", roomID))
		}
	}

	return nil
}

// SendMessage posts a message into a room the sender participates in, seeds
// unread rows for the other participants, stores a notification for each and
// publishes the message on their private channels best-effort.
func (s *chatService) SendMessage(ctx context.Context, roomID string, req dto.SendMessageRequest, senderUserID string) (*domain.ChatMessage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	isParticipant, err := s.chatRepo.IsParticipant(ctx, roomID, senderUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check room participancy: %w", err)
	}
	if !isParticipant {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotParticipant.Error())
	}

	room, err := s.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, fmt.Errorf("%w: room is closed", apperrors.ErrValidation)
	}

	messageType := domain.MessageType(req.MessageType)
	if messageType == "" {
		messageType = domain.MessageText
	}

	msg := domain.ChatMessage{
		MessageID:       uuid.NewString(),
		RoomID:          roomID,
		SenderID:        senderUserID,
		Content:         req.Content,
		MessageType:     messageType,
		FilePath:        req.FilePath,
		ParentMessageID: req.ParentMessageID,
		CreatedAt:       nowUTC(),
	}

	if err := s.chatRepo.SaveMessage(ctx, msg); err != nil {
		logger.Error("Failed to save message", slog.String("error", err.Error()), slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	recipients := make([]string, 0, len(room.Participants))
	for _, participantID := range room.Participants {
		if participantID != senderUserID {
			recipients = append(recipients, participantID)
		}
	}

	if len(recipients) > 0 {
		if err := s.chatRepo.SaveUnreadStatuses(ctx, msg.MessageID, recipients); err != nil {
			logger.Error("Failed to seed unread statuses", slog.String("error", err.Error()), slog.String("message_id", msg.MessageID))
			return nil, fmt.Errorf("failed to seed unread statuses: %w", err)
		}

		notifText := "رسالة جديدة"
		if room.Name != "" {
			notifText = fmt.Sprintf("رسالة جديدة في %s", room.Name)
		}

		payload := dto.ToMessageResponse(&msg)
		for _, recipientID := range recipients {
			channel := portssvc.UserChannel(recipientID)
			if err := s.publisher.Trigger(channel, string(domain.EventNewMessage), payload); err != nil {
				logger.Warn("Failed to publish message", slog.String("error", err.Error()), slog.String("channel", channel))
			}
			if err := s.notifier.Notify(ctx, domain.Notification{
				UserID:    recipientID,
				Message:   notifText,
				EventType: domain.EventNewMessage,
				Related:   &domain.RelatedRef{Kind: domain.RelatedChatMessage, ID: msg.MessageID},
			}); err != nil {
				logger.Warn("Failed to notify message recipient", slog.String("error", err.Error()), slog.String("user_id", recipientID))
			}
		}
	}

	return &msg, nil
}

// ListMessages retrieves a page of room messages; participants only.
func (s *chatService) ListMessages(ctx context.Context, roomID string, params dto.ListMessagesParams, requestingUserID string) (*dto.ListMessagesResponse, error) {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	messages, newToken, err := s.chatRepo.ListMessages(ctx, roomID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages: %w", err)
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = dto.ToMessageResponse(&messages[i])
	}

	resp := &dto.ListMessagesResponse{Messages: responses}
	if newToken != nil {
		resp.NextToken = *newToken
	}
	return resp, nil
}

// MarkMessagesRead marks the given messages read for the caller. The
// caller's own messages are skipped.
func (s *chatService) MarkMessagesRead(ctx context.Context, roomID string, messageIDs []string, requestingUserID string) error {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return err
	}

	now := nowUTC()
	for _, messageID := range uniqueStrings(messageIDs) {
		msg, err := s.chatRepo.FindMessageByID(ctx, messageID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
		if msg.RoomID != roomID || msg.SenderID == requestingUserID {
			continue
		}
		if err := s.chatRepo.UpsertReadStatus(ctx, messageID, requestingUserID, true, &now); err != nil {
			return fmt.Errorf("failed to mark message read: %w", err)
		}
	}
	return nil
}

// MarkAllMessagesRead marks every message in the room read for the caller.
func (s *chatService) MarkAllMessagesRead(ctx context.Context, roomID string, requestingUserID string) error {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return err
	}

	messageIDs, err := s.chatRepo.ListMessageIDsExcludingSender(ctx, roomID, requestingUserID)
	if err != nil {
		return fmt.Errorf("failed to list room messages: %w", err)
	}

	now := nowUTC()
	for _, messageID := range messageIDs {
		if err := s.chatRepo.UpsertReadStatus(ctx, messageID, requestingUserID, true, &now); err != nil {
			return fmt.Errorf("failed to mark message read: %w", err)
		}
	}
	return nil
}

// CountUnread counts unread messages for the caller in a room.
func (s *chatService) CountUnread(ctx context.Context, roomID string, requestingUserID string) (int, error) {
	if err := s.requireParticipant(ctx, roomID, requestingUserID); err != nil {
		return 0, err
	}
	return s.chatRepo.CountUnreadForUser(ctx, roomID, requestingUserID)
}

// UpdatePresence upserts the caller's presence row.
func (s *chatService) UpdatePresence(ctx context.Context, req dto.UpdatePresenceRequest, userID string) error {
	presence := domain.UserPresence{
		UserID:      userID,
		IsOnline:    req.IsOnline,
		LastSeen:    nowUTC(),
		DeviceToken: req.DeviceToken,
	}
	if err := s.chatRepo.UpsertPresence(ctx, presence); err != nil {
		return fmt.Errorf("failed to upsert presence: %w", err)
	}
	return nil
}

// GetPresence retrieves a user's presence. A user who never reported
// presence is simply offline.
func (s *chatService) GetPresence(ctx context.Context, userID string) (*domain.UserPresence, error) {
	presence, err := s.chatRepo.FindPresence(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.UserPresence{UserID: userID, IsOnline: false}, nil
		}
		return nil, err
	}
	return presence, nil
}
