package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// ProjectRepositoryFacade covers projects and their budgets.
type ProjectRepositoryFacade interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, clientID *string, limit int, offset int) ([]domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) error

	// SaveBudget persists the budget header and its items atomically.
	SaveBudget(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error

	// FindBudgetByProjectID retrieves the latest budget version with items.
	FindBudgetByProjectID(ctx context.Context, projectID string) (*domain.Budget, error)
}
