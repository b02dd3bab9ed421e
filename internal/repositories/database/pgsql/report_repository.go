package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportRepository struct {
	db *pgxpool.Pool
}

func newPgxReportRepository(db *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{db: db}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

const templateColumns = `template_id, name, description, content, created_at, created_by, last_updated_at, last_updated_by`

func scanTemplate(row pgx.Row) (domain.ReportTemplate, error) {
	var t domain.ReportTemplate
	err := row.Scan(
		&t.TemplateID,
		&t.Name,
		&t.Description,
		&t.Content,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func (r *PgxReportRepository) SaveTemplate(ctx context.Context, tpl domain.ReportTemplate) error {
	query := `
		INSERT INTO report_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		tpl.TemplateID,
		tpl.Name,
		tpl.Description,
		tpl.Content,
		tpl.CreatedAt,
		tpl.CreatedBy,
		tpl.LastUpdatedAt,
		tpl.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: template %s", apperrors.ErrDuplicate, tpl.Name)
		}
		return fmt.Errorf("failed to save report template: %w", err)
	}
	return nil
}

func (r *PgxReportRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.ReportTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM report_templates WHERE template_id = $1;`
	tpl, err := scanTemplate(r.db.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report template %s: %w", templateID, err)
	}
	return &tpl, nil
}

func (r *PgxReportRepository) ListTemplates(ctx context.Context) ([]domain.ReportTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM report_templates ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report templates: %w", err)
	}
	defer rows.Close()

	templates := []domain.ReportTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report template row: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report template rows: %w", err)
	}
	return templates, nil
}

func (r *PgxReportRepository) UpdateTemplate(ctx context.Context, tpl domain.ReportTemplate) error {
	query := `
		UPDATE report_templates SET
			name = $2,
			description = $3,
			content = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE template_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		tpl.TemplateID,
		tpl.Name,
		tpl.Description,
		tpl.Content,
		tpl.LastUpdatedAt,
		tpl.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update report template %s: %w", tpl.TemplateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReportRepository) SaveGeneratedReport(ctx context.Context, report domain.GeneratedReport) error {
	query := `
		INSERT INTO generated_reports (report_id, transaction_id, template_id, file_path, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		report.ReportID,
		report.TransactionID,
		report.TemplateID,
		report.FilePath,
		report.CreatedAt,
		report.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save generated report: %w", err)
	}
	return nil
}

func (r *PgxReportRepository) ListGeneratedReports(ctx context.Context, transactionID string) ([]domain.GeneratedReport, error) {
	query := `
		SELECT report_id, transaction_id, template_id, file_path, created_at, created_by
		FROM generated_reports
		WHERE transaction_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated reports: %w", err)
	}
	defer rows.Close()

	reports := []domain.GeneratedReport{}
	for rows.Next() {
		var g domain.GeneratedReport
		if err := rows.Scan(&g.ReportID, &g.TransactionID, &g.TemplateID, &g.FilePath, &g.CreatedAt, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan generated report row: %w", err)
		}
		reports = append(reports, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generated report rows: %w", err)
	}
	return reports, nil
}
