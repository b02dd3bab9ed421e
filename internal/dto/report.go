package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// CreateReportTemplateRequest defines the payload for registering a report
// template. Content is template text with placeholders.
type CreateReportTemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
}

// UpdateReportTemplateRequest defines the mutable fields of a template.
type UpdateReportTemplateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

// ReportTemplateResponse defines the data returned for a template.
type ReportTemplateResponse struct {
	TemplateID  string    `json:"templateID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToReportTemplateResponse converts a domain.ReportTemplate.
func ToReportTemplateResponse(t *domain.ReportTemplate) ReportTemplateResponse {
	return ReportTemplateResponse{
		TemplateID:  t.TemplateID,
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		CreatedAt:   t.CreatedAt,
	}
}

// ToReportTemplateResponses converts a slice of domain.ReportTemplate.
func ToReportTemplateResponses(ts []domain.ReportTemplate) []ReportTemplateResponse {
	responses := make([]ReportTemplateResponse, len(ts))
	for i := range ts {
		responses[i] = ToReportTemplateResponse(&ts[i])
	}
	return responses
}

// GenerateReportRequest defines the payload for rendering a template against
// a transaction.
type GenerateReportRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
	TemplateID    string `json:"templateID" binding:"required"`
}

// GeneratedReportResponse defines the data returned for a rendered report.
type GeneratedReportResponse struct {
	ReportID      string    `json:"reportID"`
	TransactionID string    `json:"transactionID"`
	TemplateID    string    `json:"templateID"`
	FilePath      string    `json:"filePath"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToGeneratedReportResponse converts a domain.GeneratedReport.
func ToGeneratedReportResponse(r *domain.GeneratedReport) GeneratedReportResponse {
	return GeneratedReportResponse{
		ReportID:      r.ReportID,
		TransactionID: r.TransactionID,
		TemplateID:    r.TemplateID,
		FilePath:      r.FilePath,
		CreatedAt:     r.CreatedAt,
	}
}

// ToGeneratedReportResponses converts a slice of domain.GeneratedReport.
func ToGeneratedReportResponses(reports []domain.GeneratedReport) []GeneratedReportResponse {
	responses := make([]GeneratedReportResponse, len(reports))
	for i := range reports {
		responses[i] = ToGeneratedReportResponse(&reports[i])
	}
	return responses
}
