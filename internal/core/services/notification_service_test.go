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

type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotifRepo *MockNotificationRepository
	mockPublisher *MockRealtimePublisher
	service       portssvc.NotificationSvcFacade
	userID        string
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotifRepo = new(MockNotificationRepository)
	suite.mockPublisher = new(MockRealtimePublisher)
	suite.service = services.NewNotificationService(suite.mockNotifRepo, suite.mockPublisher)
	suite.userID = uuid.NewString()
}

func (suite *NotificationServiceTestSuite) TestNotify_PersistsThenPublishes() {
	ctx := context.Background()

	var saved domain.Notification
	suite.mockNotifRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Notification)
		}).Return(nil).Once()

	expectedChannel := "private-user-" + suite.userID
	suite.mockPublisher.On("Trigger", expectedChannel, string(domain.EventNewTask), mock.Anything).Return(nil).Once()

	err := suite.service.Notify(ctx, domain.Notification{
		UserID:    suite.userID,
		Message:   "مهمة جديدة",
		EventType: domain.EventNewTask,
	})

	suite.Require().NoError(err)
	suite.NotEmpty(saved.NotificationID)
	suite.False(saved.CreatedAt.IsZero())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotify_DefaultsEventType() {
	ctx := context.Background()

	var saved domain.Notification
	suite.mockNotifRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Notification)
		}).Return(nil).Once()
	suite.mockPublisher.On("Trigger", mock.Anything, string(domain.EventGeneric), mock.Anything).Return(nil).Once()

	err := suite.service.Notify(ctx, domain.Notification{UserID: suite.userID, Message: "hello"})

	suite.Require().NoError(err)
	suite.Equal(domain.EventGeneric, saved.EventType)
}

func (suite *NotificationServiceTestSuite) TestNotify_PublishFailureSwallowed() {
	ctx := context.Background()

	suite.mockNotifRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()
	suite.mockPublisher.On("Trigger", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("pusher unreachable")).Once()

	err := suite.service.Notify(ctx, domain.Notification{UserID: suite.userID, Message: "m"})

	suite.Require().NoError(err)
}

func (suite *NotificationServiceTestSuite) TestNotify_SaveFailureIsFatal() {
	ctx := context.Background()

	suite.mockNotifRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).
		Return(errors.New("db down")).Once()

	err := suite.service.Notify(ctx, domain.Notification{UserID: suite.userID, Message: "m"})

	suite.Require().Error(err)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Trigger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestListNotifications_UnreadOnly() {
	ctx := context.Background()

	notifications := []domain.Notification{
		{NotificationID: uuid.NewString(), UserID: suite.userID, IsRead: false},
		{NotificationID: uuid.NewString(), UserID: suite.userID, IsRead: false},
	}
	// The repository applies the unread filter before pagination so pages
	// stay full; the service only forwards the flag.
	suite.mockNotifRepo.On("ListForUser", ctx, suite.userID, true, 20, (*string)(nil)).
		Return(notifications, nil, nil).Once()

	resp, err := suite.service.ListNotifications(ctx, suite.userID, dto.ListNotificationsParams{UnreadOnly: true})

	suite.Require().NoError(err)
	suite.Len(resp.Notifications, 2)
	suite.mockNotifRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestAuthorizeChannel_OwnChannel() {
	ctx := context.Background()
	channel := "private-user-" + suite.userID

	suite.mockPublisher.On("AuthorizePrivateChannel", mock.AnythingOfType("[]uint8")).
		Return([]byte(`{"auth":"sig"}`), nil).Once()

	auth, err := suite.service.AuthorizeChannel(ctx, suite.userID, "1234.5678", channel)

	suite.Require().NoError(err)
	suite.NotEmpty(auth)
}

func (suite *NotificationServiceTestSuite) TestAuthorizeChannel_ForeignChannelRejected() {
	ctx := context.Background()
	foreign := "private-user-" + uuid.NewString()

	_, err := suite.service.AuthorizeChannel(ctx, suite.userID, "1234.5678", foreign)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPublisher.AssertNotCalled(suite.T(), "AuthorizePrivateChannel", mock.Anything)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
