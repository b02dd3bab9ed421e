package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// ReportRepositoryFacade covers report templates and generation records.
type ReportRepositoryFacade interface {
	SaveTemplate(ctx context.Context, tpl domain.ReportTemplate) error
	FindTemplateByID(ctx context.Context, templateID string) (*domain.ReportTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.ReportTemplate, error)
	UpdateTemplate(ctx context.Context, tpl domain.ReportTemplate) error

	SaveGeneratedReport(ctx context.Context, report domain.GeneratedReport) error
	ListGeneratedReports(ctx context.Context, transactionID string) ([]domain.GeneratedReport, error)
}
