package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

// projectService manages execution projects and their budgets.
type projectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject opens an execution project in pending status.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := nowUTC()
	project := domain.Project{
		ProjectID:        uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		ClientID:         req.ClientID,
		TransactionID:    req.TransactionID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Status:           domain.ProjectPending,
		ProjectManagerID: req.ProjectManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Failed to save project", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

// GetProjectByID retrieves a project.
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

// ListProjects retrieves projects, optionally scoped to a client.
func (s *projectService) ListProjects(ctx context.Context, clientID *string, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.projectRepo.ListProjects(ctx, clientID, limit, offset)
}

// UpdateProject applies field updates to a project.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.ProjectManagerID != nil {
		project.ProjectManagerID = req.ProjectManagerID
	}

	project.LastUpdatedAt = nowUTC()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// SetBudget replaces the project's budget with a new version; the total is
// the sum of the items' estimated costs.
func (s *projectService) SetBudget(ctx context.Context, projectID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	version := 1
	if prev, err := s.projectRepo.FindBudgetByProjectID(ctx, projectID); err == nil {
		version = prev.Version + 1
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := nowUTC()
	budgetID := uuid.NewString()

	total := decimal.Zero
	items := make([]domain.BudgetItem, len(req.Items))
	for i, itemReq := range req.Items {
		if itemReq.EstimatedCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: estimated cost must be non-negative", apperrors.ErrValidation)
		}
		items[i] = domain.BudgetItem{
			ItemID:        uuid.NewString(),
			BudgetID:      budgetID,
			Category:      domain.BudgetCategory(itemReq.Category),
			Description:   itemReq.Description,
			EstimatedCost: itemReq.EstimatedCost,
		}
		total = total.Add(itemReq.EstimatedCost)
	}

	budget := domain.Budget{
		BudgetID:    budgetID,
		ProjectID:   projectID,
		TotalAmount: total,
		Version:     version,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveBudget(ctx, budget, items); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	logger.Info("Budget saved", slog.String("project_id", projectID), slog.Int("version", version))
	return &budget, nil
}

// GetBudget retrieves the latest budget version with its items.
func (s *projectService) GetBudget(ctx context.Context, projectID string) (*domain.Budget, error) {
	return s.projectRepo.FindBudgetByProjectID(ctx, projectID)
}
