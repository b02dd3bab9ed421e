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

type PgxTaskRepository struct {
	db *pgxpool.Pool
}

func newPgxTaskRepository(db *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{db: db}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, task_type, title, description, status, assigned_to_id, transaction_id, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.TaskType,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.AssignedToID,
		&t.TransactionID,
		&t.DueDate,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		task.TaskID,
		task.TaskType,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedToID,
		task.TransactionID,
		task.DueDate,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1;`
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	return &task, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
		UPDATE tasks SET
			task_type = $2,
			title = $3,
			description = $4,
			status = $5,
			assigned_to_id = $6,
			transaction_id = $7,
			due_date = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE task_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		task.TaskID,
		task.TaskType,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedToID,
		task.TransactionID,
		task.DueDate,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.TaskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, filter portsrepo.TaskListFilter) ([]domain.Task, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}
	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		query += ` AND assigned_to_id = $` + strconv.Itoa(len(args))
	}
	if filter.TransactionID != nil {
		args = append(args, *filter.TransactionID)
		query += ` AND transaction_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM tasks GROUP BY status;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.TaskStatus]int{}
	for rows.Next() {
		var status domain.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}
	return counts, nil
}
