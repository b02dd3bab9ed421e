package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for opening a transaction.
// The short code is generated server-side and must not be supplied.
type CreateTransactionRequest struct {
	Title                string           `json:"title" binding:"required"`
	Description          string           `json:"description"`
	Discipline           string           `json:"discipline" binding:"required,oneof=ARCH STRU ELEC MECH CIVL ENV"`
	ClientID             *string          `json:"clientID"`
	MainCategoryID       *string          `json:"mainCategoryID"`
	SubCategoryID        *string          `json:"subCategoryID"`
	CompetentAuthorityID *string          `json:"competentAuthorityID"`
	Location             string           `json:"location"`
	ExpectedStartDate    *time.Time       `json:"expectedStartDate"`
	ExpectedDuration     *int             `json:"expectedDuration"`
	DocType              string           `json:"docType"`
	DocClassification    string           `json:"docClassification"`
	DocNumber            string           `json:"docNumber"`
	DocDate              *time.Time       `json:"docDate"`
	AreaSqMeters         *decimal.Decimal `json:"areaSqMeters"`
	PieceNumber          string           `json:"pieceNumber"`
	PlanNumber           string           `json:"planNumber"`
	Neighborhood         string           `json:"neighborhood"`
	City                 string           `json:"city"`
}

// UpdateTransactionRequest defines the mutable metadata of a transaction.
// Status and short code are never updated through this path.
type UpdateTransactionRequest struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	Location          *string          `json:"location"`
	ExpectedStartDate *time.Time       `json:"expectedStartDate"`
	ExpectedDuration  *int             `json:"expectedDuration"`
	DocType           *string          `json:"docType"`
	DocClassification *string          `json:"docClassification"`
	DocNumber         *string          `json:"docNumber"`
	DocDate           *time.Time       `json:"docDate"`
	AreaSqMeters      *decimal.Decimal `json:"areaSqMeters"`
	PieceNumber       *string          `json:"pieceNumber"`
	PlanNumber        *string          `json:"planNumber"`
	Neighborhood      *string          `json:"neighborhood"`
	City              *string          `json:"city"`
}

// ListTransactionsParams narrows transaction listings.
type ListTransactionsParams struct {
	Status     *string `form:"status"`
	ActiveOnly bool    `form:"is_active"`
	Limit      int     `form:"limit"`
	Offset     int     `form:"offset"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string     `json:"transactionID"`
	ShortCode            string     `json:"shortCode"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Status               string     `json:"status"`
	Discipline           string     `json:"discipline"`
	ClientID             *string    `json:"clientID"`
	AssignedToID         *string    `json:"assignedToID"`
	MainCategoryID       *string    `json:"mainCategoryID"`
	SubCategoryID        *string    `json:"subCategoryID"`
	CompetentAuthorityID *string    `json:"competentAuthorityID"`
	Location             string     `json:"location"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		ShortCode:            t.ShortCode,
		Title:                t.Title,
		Description:          t.Description,
		Status:               string(t.Status),
		Discipline:           string(t.Discipline),
		ClientID:             t.ClientID,
		AssignedToID:         t.AssignedToID,
		MainCategoryID:       t.MainCategoryID,
		SubCategoryID:        t.SubCategoryID,
		CompetentAuthorityID: t.CompetentAuthorityID,
		Location:             t.Location,
		CreatedAt:            t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// DistributeRequest defines the payload for handing a transaction to an
// assignee.
type DistributeRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
	AssignedToID  string `json:"assignedToID" binding:"required"`
	ManagerNotes  string `json:"managerNotes"`
}

// ChecklistSlotResponse defines the data returned for one required-document
// slot.
type ChecklistSlotResponse struct {
	TransactionDocumentID string `json:"transactionDocumentID"`
	TransactionID         string `json:"transactionID"`
	DocumentTypeCode      string `json:"documentTypeCode"`
	Status                string `json:"status"`
}

// ToChecklistSlotResponse converts a domain.TransactionDocument.
func ToChecklistSlotResponse(d *domain.TransactionDocument) ChecklistSlotResponse {
	return ChecklistSlotResponse{
		TransactionDocumentID: d.TransactionDocumentID,
		TransactionID:         d.TransactionID,
		DocumentTypeCode:      d.DocumentTypeCode,
		Status:                string(d.Status),
	}
}

// AttachDocumentRequest defines the payload for recording an uploaded file
// against a transaction, optionally filling a checklist slot.
type AttachDocumentRequest struct {
	TransactionID         string  `json:"transactionID" binding:"required"`
	TransactionDocumentID *string `json:"transactionDocumentID"`
	FilePath              string  `json:"filePath" binding:"required"`
	Description           string  `json:"description"`
}

// DocumentResponse defines the data returned for an uploaded document.
type DocumentResponse struct {
	DocumentID            string  `json:"documentID"`
	TransactionID         string  `json:"transactionID"`
	TransactionDocumentID *string `json:"transactionDocumentID"`
	FilePath              string  `json:"filePath"`
	Description           string  `json:"description"`
	IsStamped             bool    `json:"isStamped"`
	StampedFilePath       *string `json:"stampedFilePath"`
}

// ToDocumentResponse converts a domain.Document.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:            d.DocumentID,
		TransactionID:         d.TransactionID,
		TransactionDocumentID: d.TransactionDocumentID,
		FilePath:              d.FilePath,
		Description:           d.Description,
		IsStamped:             d.IsStamped,
		StampedFilePath:       d.StampedFilePath,
	}
}

// DistributionResponse defines the data returned for a hand-off record.
type DistributionResponse struct {
	DistributionID string    `json:"distributionID"`
	TransactionID  string    `json:"transactionID"`
	AssignedFromID *string   `json:"assignedFromID"`
	AssignedToID   string    `json:"assignedToID"`
	AssignedAt     time.Time `json:"assignedAt"`
	ManagerNotes   string    `json:"managerNotes"`
}

// ToDistributionResponse converts a domain.TransactionDistribution.
func ToDistributionResponse(d *domain.TransactionDistribution) DistributionResponse {
	return DistributionResponse{
		DistributionID: d.DistributionID,
		TransactionID:  d.TransactionID,
		AssignedFromID: d.AssignedFromID,
		AssignedToID:   d.AssignedToID,
		AssignedAt:     d.AssignedAt,
		ManagerNotes:   d.ManagerNotes,
	}
}

// DashboardStats aggregates headline counts for the main dashboard.
type DashboardStats struct {
	TransactionsByStatus map[string]int `json:"transactionsByStatus"`
	TasksByStatus        map[string]int `json:"tasksByStatus"`
}
