package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// TaskSvcFacade covers internal tasks and their status flow.
type TaskSvcFacade interface {
	// CreateTask persists a new task in status new, notifying the assignee
	// when one is set.
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error)

	GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// UpdateTask applies field updates. A status change must be a legal
	// transition from the task's current status; an illegal one fails the
	// whole update with apperrors.ErrValidation.
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, requestingUserID string) (*domain.Task, error)

	ListTasks(ctx context.Context, params dto.ListTasksParams) ([]domain.Task, error)
}
