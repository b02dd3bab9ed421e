package services

import (
	"context"
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

// taskService manages internal tasks and enforces the task status flow.
type taskService struct {
	taskRepo portsrepo.TaskRepositoryFacade
	notifier portssvc.NotificationSvcFacade
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, notifier portssvc.NotificationSvcFacade) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, notifier: notifier}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// CreateTask persists a new task in status new and notifies the assignee
// when one is set.
func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := nowUTC()
	task := domain.Task{
		TaskID:        uuid.NewString(),
		TaskType:      domain.TaskType(req.TaskType),
		Title:         req.Title,
		Description:   req.Description,
		Status:        domain.TaskNew,
		AssignedToID:  req.AssignedToID,
		TransactionID: req.TransactionID,
		DueDate:       req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		logger.Error("Failed to save task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	if task.AssignedToID != nil && *task.AssignedToID != creatorUserID {
		if err := s.notifier.Notify(ctx, domain.Notification{
			UserID:    *task.AssignedToID,
			Message:   fmt.Sprintf("مهمة جديدة: %s", task.Title),
			EventType: domain.EventNewTask,
			Related:   &domain.RelatedRef{Kind: domain.RelatedTask, ID: task.TaskID},
		}); err != nil {
			logger.Warn("Failed to notify task assignee", slog.String("error", err.Error()))
		}
	}

	logger.Info("Task created", slog.String("task_id", task.TaskID))
	return &task, nil
}

// GetTaskByID retrieves a task.
func (s *taskService) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.FindTaskByID(ctx, taskID)
}

// UpdateTask applies field updates. A status change must be a legal
// transition from the task's current status; an illegal one fails the whole
// update.
func (s *taskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, requestingUserID string) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var statusChanged bool
	if req.Status != nil {
		newStatus := domain.TaskStatus(*req.Status)
		if !task.Status.CanTransition(newStatus) {
			return nil, fmt.Errorf("%w: cannot move task from %s to %s", apperrors.ErrValidation, task.Status, newStatus)
		}
		statusChanged = newStatus != task.Status
		task.Status = newStatus
	}

	var reassignedTo *string
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedToID != nil {
		if task.AssignedToID == nil || *task.AssignedToID != *req.AssignedToID {
			reassignedTo = req.AssignedToID
		}
		task.AssignedToID = req.AssignedToID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.LastUpdatedAt = nowUTC()
	task.LastUpdatedBy = requestingUserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to update task", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// Notify once the update committed. Delivery is best-effort.
	if statusChanged && task.AssignedToID != nil && *task.AssignedToID != requestingUserID {
		if err := s.notifier.Notify(ctx, domain.Notification{
			UserID:    *task.AssignedToID,
			Message:   fmt.Sprintf("تم تحديث حالة المهمة %s إلى %s", task.Title, task.Status),
			EventType: domain.EventStatusChange,
			Related:   &domain.RelatedRef{Kind: domain.RelatedTask, ID: task.TaskID},
		}); err != nil {
			logger.Warn("Failed to notify task status change", slog.String("error", err.Error()))
		}
	}
	if reassignedTo != nil && *reassignedTo != requestingUserID {
		if err := s.notifier.Notify(ctx, domain.Notification{
			UserID:    *reassignedTo,
			Message:   fmt.Sprintf("مهمة جديدة: %s", task.Title),
			EventType: domain.EventNewTask,
			Related:   &domain.RelatedRef{Kind: domain.RelatedTask, ID: task.TaskID},
		}); err != nil {
			logger.Warn("Failed to notify task reassignment", slog.String("error", err.Error()))
		}
	}

	return task, nil
}

// ListTasks retrieves tasks matching the given filters.
func (s *taskService) ListTasks(ctx context.Context, params dto.ListTasksParams) ([]domain.Task, error) {
	filter := portsrepo.TaskListFilter{
		AssignedToID:  params.AssignedToID,
		TransactionID: params.TransactionID,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Status != nil {
		status := domain.TaskStatus(*params.Status)
		filter.Status = &status
	}
	return s.taskRepo.ListTasks(ctx, filter)
}
