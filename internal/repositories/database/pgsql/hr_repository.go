package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHRRepository struct {
	db *pgxpool.Pool
}

func newPgxHRRepository(db *pgxpool.Pool) portsrepo.HRRepositoryFacade {
	return &PgxHRRepository{db: db}
}

var _ portsrepo.HRRepositoryFacade = (*PgxHRRepository)(nil)

const attendanceColumns = `attendance_id, employee_id, date, check_in, check_out, notes`

func scanAttendance(row pgx.Row) (domain.Attendance, error) {
	var a domain.Attendance
	err := row.Scan(&a.AttendanceID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Notes)
	return a, err
}

func (r *PgxHRRepository) SaveAttendance(ctx context.Context, att domain.Attendance) error {
	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		att.AttendanceID,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: employee %s already checked in on %s", apperrors.ErrDuplicate, att.EmployeeID, att.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	return nil
}

func (r *PgxHRRepository) FindAttendanceByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2;`
	att, err := scanAttendance(r.db.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find attendance for employee %s: %w", employeeID, err)
	}
	return &att, nil
}

func (r *PgxHRRepository) UpdateAttendance(ctx context.Context, att domain.Attendance) error {
	query := `
		UPDATE attendance SET check_in = $2, check_out = $3, notes = $4
		WHERE attendance_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, att.AttendanceID, att.CheckIn, att.CheckOut, att.Notes)
	if err != nil {
		return fmt.Errorf("failed to update attendance %s: %w", att.AttendanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxHRRepository) ListAttendanceForEmployee(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Attendance, error) {
	if limit <= 0 {
		limit = 31
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3;`
	rows, err := r.db.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	records := []domain.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return records, nil
}

// --- Leave requests ---

const leaveColumns = `leave_request_id, employee_id, leave_type, start_date, end_date, reason, status, reviewed_by_id, created_at`

func scanLeaveRequest(row pgx.Row) (domain.LeaveRequest, error) {
	var lr domain.LeaveRequest
	err := row.Scan(
		&lr.LeaveRequestID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.ReviewedByID,
		&lr.CreatedAt,
	)
	return lr, err
}

func (r *PgxHRRepository) SaveLeaveRequest(ctx context.Context, req domain.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		req.LeaveRequestID,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
		req.ReviewedByID,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save leave request: %w", err)
	}
	return nil
}

func (r *PgxHRRepository) FindLeaveRequestByID(ctx context.Context, leaveRequestID string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE leave_request_id = $1;`
	req, err := scanLeaveRequest(r.db.QueryRow(ctx, query, leaveRequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find leave request %s: %w", leaveRequestID, err)
	}
	return &req, nil
}

func (r *PgxHRRepository) UpdateLeaveReview(ctx context.Context, leaveRequestID string, status domain.ReviewStatus, reviewerID string) error {
	query := `UPDATE leave_requests SET status = $2, reviewed_by_id = $3 WHERE leave_request_id = $1;`
	tag, err := r.db.Exec(ctx, query, leaveRequestID, status, reviewerID)
	if err != nil {
		return fmt.Errorf("failed to review leave request %s: %w", leaveRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxHRRepository) ListLeaveRequests(ctx context.Context, employeeID *string, status *domain.ReviewStatus) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}
	if employeeID != nil {
		args = append(args, *employeeID)
		query += ` AND employee_id = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave request rows: %w", err)
	}
	return requests, nil
}

// --- Permission requests ---

const permissionColumns = `request_id, requester_id, capability_code, justification, status, reviewed_by_id, reviewed_at, created_at`

func scanPermissionRequest(row pgx.Row) (domain.PermissionRequest, error) {
	var pr domain.PermissionRequest
	err := row.Scan(
		&pr.RequestID,
		&pr.RequesterID,
		&pr.CapabilityCode,
		&pr.Justification,
		&pr.Status,
		&pr.ReviewedByID,
		&pr.ReviewedAt,
		&pr.CreatedAt,
	)
	return pr, err
}

func (r *PgxHRRepository) SavePermissionRequest(ctx context.Context, req domain.PermissionRequest) error {
	query := `
		INSERT INTO permission_requests (` + permissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		req.RequestID,
		req.RequesterID,
		req.CapabilityCode,
		req.Justification,
		req.Status,
		req.ReviewedByID,
		req.ReviewedAt,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save permission request: %w", err)
	}
	return nil
}

func (r *PgxHRRepository) FindPermissionRequestByID(ctx context.Context, requestID string) (*domain.PermissionRequest, error) {
	query := `SELECT ` + permissionColumns + ` FROM permission_requests WHERE request_id = $1;`
	req, err := scanPermissionRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find permission request %s: %w", requestID, err)
	}
	return &req, nil
}

func (r *PgxHRRepository) UpdatePermissionReview(ctx context.Context, requestID string, status domain.ReviewStatus, reviewerID string, reviewedAt time.Time) error {
	query := `UPDATE permission_requests SET status = $2, reviewed_by_id = $3, reviewed_at = $4 WHERE request_id = $1;`
	tag, err := r.db.Exec(ctx, query, requestID, status, reviewerID, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to review permission request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxHRRepository) ListPermissionRequests(ctx context.Context, requesterID *string, status *domain.ReviewStatus) ([]domain.PermissionRequest, error) {
	query := `SELECT ` + permissionColumns + ` FROM permission_requests WHERE 1=1`
	args := []interface{}{}
	if requesterID != nil {
		args = append(args, *requesterID)
		query += ` AND requester_id = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.PermissionRequest{}
	for rows.Next() {
		pr, err := scanPermissionRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission request row: %w", err)
		}
		requests = append(requests, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission request rows: %w", err)
	}
	return requests, nil
}
