package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// ReportSvcFacade covers report templates and rendering them against
// transactions.
type ReportSvcFacade interface {
	CreateTemplate(ctx context.Context, req dto.CreateReportTemplateRequest, creatorUserID string) (*domain.ReportTemplate, error)
	GetTemplateByID(ctx context.Context, templateID string) (*domain.ReportTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.ReportTemplate, error)
	UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateReportTemplateRequest, requestingUserID string) (*domain.ReportTemplate, error)

	// GenerateReport renders a template against a transaction's data, stores
	// the result and records the generation. Requires the report-generation
	// capability.
	GenerateReport(ctx context.Context, req dto.GenerateReportRequest, requestingUserID string) (*domain.GeneratedReport, error)

	ListGeneratedReports(ctx context.Context, transactionID string) ([]domain.GeneratedReport, error)
}
