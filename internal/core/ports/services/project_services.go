package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// ProjectSvcFacade covers execution projects and their budgets.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, clientID *string, limit int, offset int) ([]domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)

	// SetBudget replaces the project's budget with a new version; the total
	// is the sum of the items' estimated costs.
	SetBudget(ctx context.Context, projectID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)

	// GetBudget retrieves the latest budget version with its items.
	GetBudget(ctx context.Context, projectID string) (*domain.Budget, error)
}
