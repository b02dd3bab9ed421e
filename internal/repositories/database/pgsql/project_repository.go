package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, name, description, client_id, transaction_id, start_date, end_date, status, project_manager_id, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.Description,
		&p.ClientID,
		&p.TransactionID,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.ProjectManagerID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.ClientID,
		project.TransactionID,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.ProjectManagerID,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	project, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	return &project, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, clientID *string, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []interface{}{}
	if clientID != nil {
		args = append(args, *clientID)
		query += ` WHERE client_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects SET
			name = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			status = $6,
			project_manager_id = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE project_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.ProjectManagerID,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBudget writes the budget header and its items in one database
// transaction.
func (r *PgxProjectRepository) SaveBudget(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO budgets (budget_id, project_id, total_amount, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, headerQuery,
		budget.BudgetID,
		budget.ProjectID,
		budget.TotalAmount,
		budget.Version,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget version %d for project %s", apperrors.ErrDuplicate, budget.Version, budget.ProjectID)
		}
		return fmt.Errorf("failed to save budget for project %s: %w", budget.ProjectID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO budget_items (item_id, budget_id, category, description, estimated_cost, actual_cost)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.BudgetID,
			item.Category,
			item.Description,
			item.EstimatedCost,
			item.ActualCost,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for budget %s: %w", budget.BudgetID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) FindBudgetByProjectID(ctx context.Context, projectID string) (*domain.Budget, error) {
	query := `
		SELECT budget_id, project_id, total_amount, version, created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE project_id = $1
		ORDER BY version DESC
		LIMIT 1;
	`
	var b domain.Budget
	err := r.Pool.QueryRow(ctx, query, projectID).Scan(
		&b.BudgetID,
		&b.ProjectID,
		&b.TotalAmount,
		&b.Version,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget for project %s: %w", projectID, err)
	}

	itemQuery := `SELECT item_id, budget_id, category, description, estimated_cost, actual_cost FROM budget_items WHERE budget_id = $1 ORDER BY item_id;`
	rows, err := r.Pool.Query(ctx, itemQuery, b.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for budget %s: %w", b.BudgetID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BudgetItem
		if err := rows.Scan(&item.ItemID, &item.BudgetID, &item.Category, &item.Description, &item.EstimatedCost, &item.ActualCost); err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", err)
	}
	return &b, nil
}
