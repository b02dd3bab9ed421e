package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of an office transaction (case file).
type TransactionStatus string

const (
	TxnNew          TransactionStatus = "new"
	TxnUnderReview  TransactionStatus = "under_review"
	TxnDocsRequired TransactionStatus = "docs_required"
	TxnProcessing   TransactionStatus = "processing"
	TxnApproved     TransactionStatus = "approved"
	TxnCompleted    TransactionStatus = "completed"
	TxnCancelled    TransactionStatus = "cancelled"
	TxnSuspended    TransactionStatus = "suspended"
)

// Discipline is the engineering discipline a transaction belongs to; it is
// embedded in the transaction short code.
type Discipline string

const (
	DisciplineArch Discipline = "ARCH"
	DisciplineStru Discipline = "STRU"
	DisciplineElec Discipline = "ELEC"
	DisciplineMech Discipline = "MECH"
	DisciplineCivl Discipline = "CIVL"
	DisciplineEnv  Discipline = "ENV"
)

// ValidDiscipline reports whether d is one of the known discipline codes.
func ValidDiscipline(d Discipline) bool {
	switch d {
	case DisciplineArch, DisciplineStru, DisciplineElec, DisciplineMech, DisciplineCivl, DisciplineEnv:
		return true
	}
	return false
}

// Transaction is a tracked case file. ShortCode is assigned exactly once at
// creation and never changes afterwards.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	ShortCode     string            `json:"shortCode"` // PROJ-{discipline}-{year}-{month}-{sequence}
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	Discipline    Discipline        `json:"discipline"`
	ClientID      *string           `json:"clientID"`
	AssignedToID  *string           `json:"assignedToID"`
	MainCategoryID      *string     `json:"mainCategoryID"`
	SubCategoryID       *string     `json:"subCategoryID"`
	CompetentAuthorityID *string    `json:"competentAuthorityID"`

	Location          string           `json:"location"`
	ExpectedStartDate *time.Time       `json:"expectedStartDate"`
	ExpectedDuration  *int             `json:"expectedDuration"` // days
	DocType           string           `json:"docType"`
	DocClassification string           `json:"docClassification"`
	DocNumber         string           `json:"docNumber"`
	DocDate           *time.Time       `json:"docDate"`
	AreaSqMeters      *decimal.Decimal `json:"areaSqMeters"`
	PieceNumber       string           `json:"pieceNumber"`
	PlanNumber        string           `json:"planNumber"`
	Neighborhood      string           `json:"neighborhood"`
	City              string           `json:"city"`
	AuditFields
}

// DocumentStatus is the state of a required-document checklist slot.
type DocumentStatus string

const (
	DocMissing  DocumentStatus = "missing"
	DocUploaded DocumentStatus = "uploaded"
	DocApproved DocumentStatus = "approved"
	DocRejected DocumentStatus = "rejected"
)

// DocumentType is a catalogued kind of document (DOC001, DOC002, ...).
type DocumentType struct {
	Code   string `json:"code"` // Primary key
	NameAr string `json:"nameAr"`
}

// TransactionDocument is one required-document slot on a transaction's
// checklist. A (transaction, document type) pair is unique.
type TransactionDocument struct {
	TransactionDocumentID string         `json:"transactionDocumentID"`
	TransactionID         string         `json:"transactionID"`
	DocumentTypeCode      string         `json:"documentTypeCode"`
	Status                DocumentStatus `json:"status"`
	AuditFields
}

// Document is an uploaded file, optionally filling a checklist slot.
type Document struct {
	DocumentID            string  `json:"documentID"`
	TransactionID         string  `json:"transactionID"`
	TransactionDocumentID *string `json:"transactionDocumentID"`
	FilePath              string  `json:"filePath"`
	Description           string  `json:"description"`
	UploadedByID          string  `json:"uploadedByID"`
	IsStamped             bool    `json:"isStamped"`
	StampedFilePath       *string `json:"stampedFilePath"`
	AuditFields
}

// TransactionDistribution is an immutable audit record of one hand-off of a
// transaction from an assigner to an assignee.
type TransactionDistribution struct {
	DistributionID string    `json:"distributionID"`
	TransactionID  string    `json:"transactionID"`
	AssignedFromID *string   `json:"assignedFromID"`
	AssignedToID   string    `json:"assignedToID"`
	AssignedAt     time.Time `json:"assignedAt"`
	ManagerNotes   string    `json:"managerNotes"`
}
