package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/core/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

type TaskServiceTestSuite struct {
	suite.Suite
	mockTaskRepo *MockTaskRepository
	mockNotifier *MockNotificationService
	service      portssvc.TaskSvcFacade
	userID       string
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.mockNotifier = new(MockNotificationService)
	suite.service = services.NewTaskService(suite.mockTaskRepo, suite.mockNotifier)
	suite.userID = uuid.NewString()
}

func (suite *TaskServiceTestSuite) TestCreateTask_NotifiesAssignee() {
	ctx := context.Background()
	assigneeID := uuid.NewString()

	suite.mockTaskRepo.On("SaveTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()

	var sent domain.Notification
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(domain.Notification)
		}).Return(nil).Once()

	task, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		TaskType:     "PLAN_REVIEW",
		Title:        "Review structural plans",
		AssignedToID: &assigneeID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TaskNew, task.Status)
	suite.Equal(assigneeID, sent.UserID)
	suite.Equal(domain.EventNewTask, sent.EventType)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestCreateTask_SelfAssignmentSkipsNotification() {
	ctx := context.Background()

	suite.mockTaskRepo.On("SaveTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()

	_, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		TaskType:     "GENERAL_TASK",
		Title:        "Tidy archive",
		AssignedToID: &suite.userID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_LegalTransition() {
	ctx := context.Background()
	taskID := uuid.NewString()

	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, Title: "t", Status: domain.TaskNew}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()

	status := string(domain.TaskInProgress)
	task, err := suite.service.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{Status: &status}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TaskInProgress, task.Status)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_IllegalTransition() {
	ctx := context.Background()
	taskID := uuid.NewString()

	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, Status: domain.TaskNew}, nil).Once()

	status := string(domain.TaskApproved)
	_, err := suite.service.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{Status: &status}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "UpdateTask", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_TerminalStatusFrozen() {
	ctx := context.Background()
	taskID := uuid.NewString()

	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, Status: domain.TaskApproved}, nil).Once()

	status := string(domain.TaskInProgress)
	_, err := suite.service.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{Status: &status}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_StatusChangeNotifiesAssignee() {
	ctx := context.Background()
	taskID := uuid.NewString()
	assigneeID := uuid.NewString()

	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, Title: "t", Status: domain.TaskCompletedPending, AssignedToID: &assigneeID}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()

	var sent domain.Notification
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(domain.Notification)
		}).Return(nil).Once()

	status := string(domain.TaskRejected)
	_, err := suite.service.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{Status: &status}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(assigneeID, sent.UserID)
	suite.Equal(domain.EventStatusChange, sent.EventType)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ReassignmentNotifiesNewAssignee() {
	ctx := context.Background()
	taskID := uuid.NewString()
	oldAssignee := uuid.NewString()
	newAssignee := uuid.NewString()

	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, Title: "t", Status: domain.TaskInProgress, AssignedToID: &oldAssignee}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.Task")).Return(nil).Once()

	var sent domain.Notification
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("domain.Notification")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(domain.Notification)
		}).Return(nil).Once()

	_, err := suite.service.UpdateTask(ctx, taskID, dto.UpdateTaskRequest{AssignedToID: &newAssignee}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newAssignee, sent.UserID)
	suite.Equal(domain.EventNewTask, sent.EventType)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestTaskStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.TaskStatus
		to      domain.TaskStatus
		allowed bool
	}{
		{domain.TaskNew, domain.TaskInProgress, true},
		{domain.TaskNew, domain.TaskCancelled, true},
		{domain.TaskNew, domain.TaskApproved, false},
		{domain.TaskInProgress, domain.TaskCompletedPending, true},
		{domain.TaskInProgress, domain.TaskApproved, false},
		{domain.TaskCompletedPending, domain.TaskApproved, true},
		{domain.TaskCompletedPending, domain.TaskRejected, true},
		{domain.TaskCompletedPending, domain.TaskNew, false},
		{domain.TaskRejected, domain.TaskInProgress, true},
		{domain.TaskApproved, domain.TaskInProgress, false},
		{domain.TaskCancelled, domain.TaskNew, false},
		{domain.TaskInProgress, domain.TaskInProgress, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
