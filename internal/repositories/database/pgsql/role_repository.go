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

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(db *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `INSERT INTO roles (role_id, name) VALUES ($1, $2);`
	_, err := r.Pool.Exec(ctx, query, role.RoleID, role.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: role %s", apperrors.ErrDuplicate, role.Name)
		}
		return fmt.Errorf("failed to save role: %w", err)
	}
	if len(role.Capabilities) > 0 {
		return r.SetRoleCapabilities(ctx, role.RoleID, role.Capabilities)
	}
	return nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `SELECT role_id, name FROM roles WHERE role_id = $1;`
	var role domain.Role
	err := r.Pool.QueryRow(ctx, query, roleID).Scan(&role.RoleID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role %s: %w", roleID, err)
	}

	caps, err := r.capabilitiesForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	role.Capabilities = caps
	return &role, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	query := `SELECT role_id, name FROM roles ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.RoleID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	for i := range roles {
		caps, err := r.capabilitiesForRole(ctx, roles[i].RoleID)
		if err != nil {
			return nil, err
		}
		roles[i].Capabilities = caps
	}
	return roles, nil
}

func (r *PgxRoleRepository) capabilitiesForRole(ctx context.Context, roleID string) ([]string, error) {
	query := `SELECT capability_code FROM role_capabilities WHERE role_id = $1 ORDER BY capability_code;`
	rows, err := r.Pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities for role %s: %w", roleID, err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan capability row: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capability rows: %w", err)
	}
	return codes, nil
}

// SetRoleCapabilities replaces the grant set in one database transaction.
func (r *PgxRoleRepository) SetRoleCapabilities(ctx context.Context, roleID string, capabilityCodes []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_capabilities WHERE role_id = $1;`, roleID); err != nil {
		return fmt.Errorf("failed to clear capabilities for role %s: %w", roleID, err)
	}

	batch := &pgx.Batch{}
	for _, code := range capabilityCodes {
		batch.Queue(`INSERT INTO role_capabilities (role_id, capability_code) VALUES ($1, $2);`, roleID, code)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert capabilities for role %s: %w", roleID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRoleRepository) ListCapabilities(ctx context.Context) ([]domain.Capability, error) {
	query := `SELECT code, name_en, name_ar FROM capabilities ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities: %w", err)
	}
	defer rows.Close()

	caps := []domain.Capability{}
	for rows.Next() {
		var c domain.Capability
		if err := rows.Scan(&c.Code, &c.NameEn, &c.NameAr); err != nil {
			return nil, fmt.Errorf("failed to scan capability row: %w", err)
		}
		caps = append(caps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capability rows: %w", err)
	}
	return caps, nil
}

func (r *PgxRoleRepository) FindCapabilityByCode(ctx context.Context, code string) (*domain.Capability, error) {
	query := `SELECT code, name_en, name_ar FROM capabilities WHERE code = $1;`
	var c domain.Capability
	err := r.Pool.QueryRow(ctx, query, code).Scan(&c.Code, &c.NameEn, &c.NameAr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find capability %s: %w", code, err)
	}
	return &c, nil
}

func (r *PgxRoleRepository) SaveDepartment(ctx context.Context, dept domain.Department) error {
	query := `INSERT INTO departments (department_id, name) VALUES ($1, $2);`
	_, err := r.Pool.Exec(ctx, query, dept.DepartmentID, dept.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: department %s", apperrors.ErrDuplicate, dept.Name)
		}
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

func (r *PgxRoleRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT department_id, name FROM departments ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	depts := []domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.DepartmentID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return depts, nil
}
