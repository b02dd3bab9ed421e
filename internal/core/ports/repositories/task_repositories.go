package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// TaskListFilter narrows ListTasks results.
type TaskListFilter struct {
	AssignedToID  *string
	TransactionID *string
	Status        *domain.TaskStatus
	Limit         int
	Offset        int
}

// TaskRepositoryFacade covers internal tasks.
type TaskRepositoryFacade interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]domain.Task, error)
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
}
