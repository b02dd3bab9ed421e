package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/core/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

type ChatServiceTestSuite struct {
	suite.Suite
	mockChatRepo  *MockChatRepository
	mockNotifier  *MockNotificationService
	mockPublisher *MockRealtimePublisher
	service       portssvc.ChatSvcFacade
	userID        string
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockChatRepo = new(MockChatRepository)
	suite.mockNotifier = new(MockNotificationService)
	suite.mockPublisher = new(MockRealtimePublisher)
	suite.service = services.NewChatService(suite.mockChatRepo, suite.mockNotifier, suite.mockPublisher)
	suite.userID = uuid.NewString()
}

func (suite *ChatServiceTestSuite) TestCreateRoom_PrivatePair() {
	ctx := context.Background()
	otherID := uuid.NewString()

	var savedParticipants []string
	suite.mockChatRepo.On("SaveRoom", ctx, mock.AnythingOfType("domain.ChatRoom"), mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			savedParticipants = args.Get(2).([]string)
		}).Return(nil).Once()

	room, err := suite.service.CreateRoom(ctx, dto.CreateRoomRequest{
		RoomType:       "private",
		ParticipantIDs: []string{otherID},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(room.IsActive)
	suite.Len(savedParticipants, 2)
	suite.Contains(savedParticipants, suite.userID)
	suite.Contains(savedParticipants, otherID)
}

func (suite *ChatServiceTestSuite) TestCreateRoom_PrivateCapacityEnforced() {
	ctx := context.Background()

	_, err := suite.service.CreateRoom(ctx, dto.CreateRoomRequest{
		RoomType:       "private",
		ParticipantIDs: []string{uuid.NewString(), uuid.NewString()},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "SaveRoom", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestCreateRoom_DuplicateParticipantsCollapsed() {
	ctx := context.Background()
	otherID := uuid.NewString()

	var savedParticipants []string
	suite.mockChatRepo.On("SaveRoom", ctx, mock.AnythingOfType("domain.ChatRoom"), mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			savedParticipants = args.Get(2).([]string)
		}).Return(nil).Once()

	_, err := suite.service.CreateRoom(ctx, dto.CreateRoomRequest{
		RoomType:       "private",
		ParticipantIDs: []string{otherID, otherID, suite.userID},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(savedParticipants, 2)
}

func (suite *ChatServiceTestSuite) TestSendMessage_NonParticipantRejected() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(false, nil).Once()

	_, err := suite.service.SendMessage(ctx, roomID, dto.SendMessageRequest{Content: "hi"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestSendMessage_ClosedRoomRejected() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{RoomID: roomID, IsActive: false}, nil).Once()

	_, err := suite.service.SendMessage(ctx, roomID, dto.SendMessageRequest{Content: "hi"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ChatServiceTestSuite) TestSendMessage_FansOutToOtherParticipants() {
	ctx := context.Background()
	roomID := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{
			RoomID:       roomID,
			RoomType:     domain.RoomGroup,
			IsActive:     true,
			Participants: []string{suite.userID, alice, bob},
		}, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()

	var unreadFor []string
	suite.mockChatRepo.On("SaveUnreadStatuses", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]string")).
		Run(func(args mock.Arguments) {
			unreadFor = args.Get(2).([]string)
		}).Return(nil).Once()

	suite.mockPublisher.On("Trigger", "private-user-"+alice, string(domain.EventNewMessage), mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Trigger", "private-user-"+bob, string(domain.EventNewMessage), mock.Anything).Return(nil).Once()

	var notified []string
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			notified = append(notified, args.Get(1).(domain.Notification).UserID)
		}).Return(nil).Twice()

	msg, err := suite.service.SendMessage(ctx, roomID, dto.SendMessageRequest{Content: "morning"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.MessageText, msg.MessageType)
	suite.ElementsMatch([]string{alice, bob}, unreadFor)
	suite.ElementsMatch([]string{alice, bob}, notified)
	suite.mockPublisher.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestSendMessage_PublishFailureSwallowed() {
	ctx := context.Background()
	roomID := uuid.NewString()
	alice := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{
			RoomID:       roomID,
			RoomType:     domain.RoomPrivate,
			IsActive:     true,
			Participants: []string{suite.userID, alice},
		}, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()
	suite.mockChatRepo.On("SaveUnreadStatuses", ctx, mock.AnythingOfType("string"), []string{alice}).Return(nil).Once()
	suite.mockPublisher.On("Trigger", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("pusher unreachable")).Once()
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Return(errors.New("db down")).Once()

	msg, err := suite.service.SendMessage(ctx, roomID, dto.SendMessageRequest{Content: "hi"}, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(msg)
}

func (suite *ChatServiceTestSuite) TestAddParticipants_PrivateRoomRejected() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{RoomID: roomID, RoomType: domain.RoomPrivate, IsActive: true}, nil).Once()

	err := suite.service.AddParticipants(ctx, roomID, []string{uuid.NewString()}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "AddParticipants", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestAddParticipants_NotifiesAddedUsers() {
	ctx := context.Background()
	roomID := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{RoomID: roomID, Name: "قسم العمارة", RoomType: domain.RoomGroup, IsActive: true}, nil).Once()
	suite.mockChatRepo.On("AddParticipants", ctx, roomID, mock.AnythingOfType("[]string")).Return(nil).Once()

	var notified []string
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			notified = append(notified, args.Get(1).(domain.Notification).UserID)
		}).Return(nil).Twice()

	err := suite.service.AddParticipants(ctx, roomID, []string{alice, bob}, suite.userID)

	suite.Require().NoError(err)
	suite.ElementsMatch([]string{alice, bob}, notified)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestLeaveRoom_PrivateRoomDeactivated() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{RoomID: roomID, RoomType: domain.RoomPrivate, IsActive: true}, nil).Once()
	suite.mockChatRepo.On("RemoveParticipant", ctx, roomID, suite.userID).Return(nil).Once()
	suite.mockChatRepo.On("CountParticipants", ctx, roomID).Return(1, nil).Once()
	suite.mockChatRepo.On("DeactivateRoom", ctx, roomID).Return(nil).Once()

	err := suite.service.LeaveRoom(ctx, roomID, suite.userID)

	suite.Require().NoError(err)
	suite.mockChatRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestLeaveRoom_GroupRoomStaysActive() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindRoomByID", ctx, roomID).
		Return(&domain.ChatRoom{RoomID: roomID, RoomType: domain.RoomGroup, IsActive: true}, nil).Once()
	suite.mockChatRepo.On("RemoveParticipant", ctx, roomID, suite.userID).Return(nil).Once()

	err := suite.service.LeaveRoom(ctx, roomID, suite.userID)

	suite.Require().NoError(err)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "DeactivateRoom", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestMarkMessagesRead_SkipsOwnAndForeign() {
	ctx := context.Background()
	roomID := uuid.NewString()
	ownMsgID := uuid.NewString()
	foreignMsgID := uuid.NewString()
	otherMsgID := uuid.NewString()
	missingMsgID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(true, nil).Once()
	suite.mockChatRepo.On("FindMessageByID", ctx, ownMsgID).
		Return(&domain.ChatMessage{MessageID: ownMsgID, RoomID: roomID, SenderID: suite.userID}, nil).Once()
	suite.mockChatRepo.On("FindMessageByID", ctx, foreignMsgID).
		Return(&domain.ChatMessage{MessageID: foreignMsgID, RoomID: uuid.NewString(), SenderID: uuid.NewString()}, nil).Once()
	suite.mockChatRepo.On("FindMessageByID", ctx, otherMsgID).
		Return(&domain.ChatMessage{MessageID: otherMsgID, RoomID: roomID, SenderID: uuid.NewString()}, nil).Once()
	suite.mockChatRepo.On("FindMessageByID", ctx, missingMsgID).
		Return(nil, apperrors.ErrNotFound).Once()

	suite.mockChatRepo.On("UpsertReadStatus", ctx, otherMsgID, suite.userID, true, mock.AnythingOfType("*time.Time")).
		Return(nil).Once()

	err := suite.service.MarkMessagesRead(ctx, roomID, []string{ownMsgID, foreignMsgID, otherMsgID, missingMsgID}, suite.userID)

	suite.Require().NoError(err)
	suite.mockChatRepo.AssertExpectations(suite.T())
	suite.mockChatRepo.AssertNumberOfCalls(suite.T(), "UpsertReadStatus", 1)
}

func (suite *ChatServiceTestSuite) TestCountUnread_ParticipantsOnly() {
	ctx := context.Background()
	roomID := uuid.NewString()

	suite.mockChatRepo.On("IsParticipant", ctx, roomID, suite.userID).Return(false, nil).Once()

	_, err := suite.service.CountUnread(ctx, roomID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ChatServiceTestSuite) TestGetPresence_NeverSeenIsOffline() {
	ctx := context.Background()
	otherID := uuid.NewString()

	suite.mockChatRepo.On("FindPresence", ctx, otherID).Return(nil, apperrors.ErrNotFound).Once()

	presence, err := suite.service.GetPresence(ctx, otherID)

	suite.Require().NoError(err)
	suite.Equal(otherID, presence.UserID)
	suite.False(presence.IsOnline)
	suite.True(presence.LastSeen.IsZero())
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
