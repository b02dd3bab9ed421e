package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the payload for opening an execution project.
type CreateProjectRequest struct {
	Name             string     `json:"name" binding:"required"`
	Description      string     `json:"description"`
	ClientID         string     `json:"clientID" binding:"required"`
	TransactionID    *string    `json:"transactionID"`
	StartDate        time.Time  `json:"startDate" binding:"required"`
	EndDate          *time.Time `json:"endDate"`
	ProjectManagerID *string    `json:"projectManagerID"`
}

// UpdateProjectRequest defines the mutable fields of a project.
type UpdateProjectRequest struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	EndDate          *time.Time `json:"endDate"`
	ProjectManagerID *string    `json:"projectManagerID"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID        string     `json:"projectID"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ClientID         string     `json:"clientID"`
	TransactionID    *string    `json:"transactionID"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	Status           string     `json:"status"`
	ProjectManagerID *string    `json:"projectManagerID"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:        p.ProjectID,
		Name:             p.Name,
		Description:      p.Description,
		ClientID:         p.ClientID,
		TransactionID:    p.TransactionID,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Status:           string(p.Status),
		ProjectManagerID: p.ProjectManagerID,
		CreatedAt:        p.CreatedAt,
	}
}

// ToProjectResponses converts a slice of domain.Project.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}

// CreateBudgetItemRequest is one cost line of a budget request.
type CreateBudgetItemRequest struct {
	Category      string          `json:"category" binding:"required,oneof=LABOR MATERIALS PERMITS EQUIPMENT SUBCONTRACTOR OTHER"`
	Description   string          `json:"description" binding:"required"`
	EstimatedCost decimal.Decimal `json:"estimatedCost" binding:"required"`
}

// CreateBudgetRequest defines the payload for setting a project's budget.
// Saving a new budget for a project bumps the version.
type CreateBudgetRequest struct {
	Items []CreateBudgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BudgetItemResponse defines the data returned for one budget line.
type BudgetItemResponse struct {
	ItemID        string           `json:"itemID"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	EstimatedCost decimal.Decimal  `json:"estimatedCost"`
	ActualCost    *decimal.Decimal `json:"actualCost"`
}

// BudgetResponse defines the data returned for a budget with its items.
type BudgetResponse struct {
	BudgetID    string               `json:"budgetID"`
	ProjectID   string               `json:"projectID"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Version     int                  `json:"version"`
	Items       []BudgetItemResponse `json:"items"`
}

// ToBudgetResponse converts a domain.Budget with its items.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = BudgetItemResponse{
			ItemID:        it.ItemID,
			Category:      string(it.Category),
			Description:   it.Description,
			EstimatedCost: it.EstimatedCost,
			ActualCost:    it.ActualCost,
		}
	}
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		ProjectID:   b.ProjectID,
		TotalAmount: b.TotalAmount,
		Version:     b.Version,
		Items:       items,
	}
}
