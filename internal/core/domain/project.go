package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of an execution project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "PENDING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// Project is the execution phase that may follow a transaction.
type Project struct {
	ProjectID        string        `json:"projectID"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ClientID         string        `json:"clientID"`
	TransactionID    *string       `json:"transactionID"`
	StartDate        time.Time     `json:"startDate"`
	EndDate          *time.Time    `json:"endDate"`
	Status           ProjectStatus `json:"status"`
	ProjectManagerID *string       `json:"projectManagerID"`
	AuditFields
}

// BudgetCategory classifies a budget line.
type BudgetCategory string

const (
	BudgetLabor         BudgetCategory = "LABOR"
	BudgetMaterials     BudgetCategory = "MATERIALS"
	BudgetPermits       BudgetCategory = "PERMITS"
	BudgetEquipment     BudgetCategory = "EQUIPMENT"
	BudgetSubcontractor BudgetCategory = "SUBCONTRACTOR"
	BudgetOther         BudgetCategory = "OTHER"
)

// Budget is a versioned cost plan for a project. TotalAmount is maintained as
// the sum of the items' estimated costs.
type Budget struct {
	BudgetID    string          `json:"budgetID"`
	ProjectID   string          `json:"projectID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Version     int             `json:"version"`
	Items       []BudgetItem    `json:"items,omitempty"`
	AuditFields
}

// BudgetItem is one cost line of a budget.
type BudgetItem struct {
	ItemID        string           `json:"itemID"`
	BudgetID      string           `json:"budgetID"`
	Category      BudgetCategory   `json:"category"`
	Description   string           `json:"description"`
	EstimatedCost decimal.Decimal  `json:"estimatedCost"`
	ActualCost    *decimal.Decimal `json:"actualCost"`
}
