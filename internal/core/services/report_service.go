package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/faroukh/office_mgmt_app/pkg/filestore"
)

// reportService manages report templates and renders them against
// transaction data.
type reportService struct {
	reportRepo portsrepo.ReportRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	userSvc    portssvc.UserSvcFacade
	files      filestore.Store
}

// NewReportService creates a new report service.
func NewReportService(reportRepo portsrepo.ReportRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, userSvc portssvc.UserSvcFacade, files filestore.Store) portssvc.ReportSvcFacade {
	return &reportService{
		reportRepo: reportRepo,
		txnRepo:    txnRepo,
		userSvc:    userSvc,
		files:      files,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// CreateTemplate registers a report template. The content must parse as a
// valid template.
func (s *reportService) CreateTemplate(ctx context.Context, req dto.CreateReportTemplateRequest, creatorUserID string) (*domain.ReportTemplate, error) {
	if _, err := template.New("report").Parse(req.Content); err != nil {
		return nil, fmt.Errorf("%w: template does not parse: %s", apperrors.ErrValidation, err.Error())
	}

	now := nowUTC()
	tpl := domain.ReportTemplate{
		TemplateID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reportRepo.SaveTemplate(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return &tpl, nil
}

// GetTemplateByID retrieves a template.
func (s *reportService) GetTemplateByID(ctx context.Context, templateID string) (*domain.ReportTemplate, error) {
	return s.reportRepo.FindTemplateByID(ctx, templateID)
}

// ListTemplates retrieves all templates.
func (s *reportService) ListTemplates(ctx context.Context) ([]domain.ReportTemplate, error) {
	return s.reportRepo.ListTemplates(ctx)
}

// UpdateTemplate applies field updates to a template.
func (s *reportService) UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateReportTemplateRequest, requestingUserID string) (*domain.ReportTemplate, error) {
	tpl, err := s.reportRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.Content != nil {
		if _, err := template.New("report").Parse(*req.Content); err != nil {
			return nil, fmt.Errorf("%w: template does not parse: %s", apperrors.ErrValidation, err.Error())
		}
		tpl.Content = *req.Content
	}

	tpl.LastUpdatedAt = nowUTC()
	tpl.LastUpdatedBy = requestingUserID

	if err := s.reportRepo.UpdateTemplate(ctx, *tpl); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return tpl, nil
}

// GenerateReport renders a template against a transaction's data, stores the
// result and records the generation. Requires the report-generation
// capability.
func (s *reportService) GenerateReport(ctx context.Context, req dto.GenerateReportRequest, requestingUserID string) (*domain.GeneratedReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapReportsGenerate) {
		return nil, apperrors.ErrForbidden
	}

	tpl, err := s.reportRepo.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	parsed, err := template.New(tpl.Name).Parse(tpl.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: template does not parse: %s", apperrors.ErrValidation, err.Error())
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, txn); err != nil {
		logger.Error("Failed to render report template", slog.String("error", err.Error()), slog.String("template_id", req.TemplateID))
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	reportID := uuid.NewString()
	relPath := fmt.Sprintf("reports/%s/%s.txt", txn.TransactionID, reportID)
	storedPath, err := s.files.Save(relPath, buf.Bytes())
	if err != nil {
		logger.Error("Failed to store rendered report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store rendered report: %w", err)
	}

	report := domain.GeneratedReport{
		ReportID:      reportID,
		TransactionID: txn.TransactionID,
		TemplateID:    tpl.TemplateID,
		FilePath:      storedPath,
		CreatedAt:     nowUTC(),
		CreatedBy:     requestingUserID,
	}

	if err := s.reportRepo.SaveGeneratedReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to record generated report: %w", err)
	}

	logger.Info("Report generated", slog.String("report_id", reportID), slog.String("transaction_id", txn.TransactionID))
	return &report, nil
}

// ListGeneratedReports retrieves generation records for a transaction.
func (s *reportService) ListGeneratedReports(ctx context.Context, transactionID string) ([]domain.GeneratedReport, error) {
	return s.reportRepo.ListGeneratedReports(ctx, transactionID)
}
