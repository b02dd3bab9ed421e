package domain

import "time"

// ReportTemplate is template text with placeholders, rendered against a
// transaction context into a binary document.
type ReportTemplate struct {
	TemplateID  string `json:"templateID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
	AuditFields
}

// GeneratedReport records one successful rendering of a template for a
// transaction; the rendered bytes live behind FilePath.
type GeneratedReport struct {
	ReportID      string    `json:"reportID"`
	TransactionID string    `json:"transactionID"`
	TemplateID    string    `json:"templateID"`
	FilePath      string    `json:"filePath"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}
