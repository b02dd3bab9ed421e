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

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, client_type, client_code, name_ar, phone_number, email, commercial_register, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.ClientType,
		&c.ClientCode,
		&c.NameAr,
		&c.PhoneNumber,
		&c.Email,
		&c.CommercialRegister,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.ClientType,
		client.ClientCode,
		client.NameAr,
		client.PhoneNumber,
		client.Email,
		client.CommercialRegister,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client code %s", apperrors.ErrDuplicate, client.ClientCode)
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY client_code LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients SET
			name_ar = $2,
			phone_number = $3,
			email = $4,
			commercial_register = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE client_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.NameAr,
		client.PhoneNumber,
		client.Email,
		client.CommercialRegister,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) SaveMainCategory(ctx context.Context, cat domain.TransactionMainCategory) error {
	query := `INSERT INTO transaction_main_categories (category_id, name, code) VALUES ($1, $2, $3);`
	_, err := r.db.Exec(ctx, query, cat.CategoryID, cat.Name, cat.Code)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category code %s", apperrors.ErrDuplicate, cat.Code)
		}
		return fmt.Errorf("failed to save main category: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) ListMainCategories(ctx context.Context) ([]domain.TransactionMainCategory, error) {
	query := `SELECT category_id, name, code FROM transaction_main_categories ORDER BY code;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query main categories: %w", err)
	}
	defer rows.Close()

	cats := []domain.TransactionMainCategory{}
	for rows.Next() {
		var c domain.TransactionMainCategory
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Code); err != nil {
			return nil, fmt.Errorf("failed to scan main category row: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating main category rows: %w", err)
	}
	return cats, nil
}

func (r *PgxClientRepository) SaveSubCategory(ctx context.Context, sub domain.TransactionSubCategory) error {
	query := `INSERT INTO transaction_sub_categories (sub_category_id, main_category_id, name, code) VALUES ($1, $2, $3, $4);`
	_, err := r.db.Exec(ctx, query, sub.SubCategoryID, sub.MainCategoryID, sub.Name, sub.Code)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sub-category code %s", apperrors.ErrDuplicate, sub.Code)
		}
		return fmt.Errorf("failed to save sub-category: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindSubCategoryByID(ctx context.Context, subCategoryID string) (*domain.TransactionSubCategory, error) {
	query := `SELECT sub_category_id, main_category_id, name, code FROM transaction_sub_categories WHERE sub_category_id = $1;`
	var s domain.TransactionSubCategory
	err := r.db.QueryRow(ctx, query, subCategoryID).Scan(&s.SubCategoryID, &s.MainCategoryID, &s.Name, &s.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-category %s: %w", subCategoryID, err)
	}
	return &s, nil
}

func (r *PgxClientRepository) ListSubCategories(ctx context.Context, mainCategoryID *string) ([]domain.TransactionSubCategory, error) {
	query := `SELECT sub_category_id, main_category_id, name, code FROM transaction_sub_categories`
	args := []interface{}{}
	if mainCategoryID != nil {
		query += ` WHERE main_category_id = $1`
		args = append(args, *mainCategoryID)
	}
	query += ` ORDER BY code;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-categories: %w", err)
	}
	defer rows.Close()

	subs := []domain.TransactionSubCategory{}
	for rows.Next() {
		var s domain.TransactionSubCategory
		if err := rows.Scan(&s.SubCategoryID, &s.MainCategoryID, &s.Name, &s.Code); err != nil {
			return nil, fmt.Errorf("failed to scan sub-category row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-category rows: %w", err)
	}
	return subs, nil
}

func (r *PgxClientRepository) SaveAuthority(ctx context.Context, auth domain.CompetentAuthority) error {
	query := `INSERT INTO competent_authorities (authority_id, name, code) VALUES ($1, $2, $3);`
	_, err := r.db.Exec(ctx, query, auth.AuthorityID, auth.Name, auth.Code)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: authority code %s", apperrors.ErrDuplicate, auth.Code)
		}
		return fmt.Errorf("failed to save authority: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) ListAuthorities(ctx context.Context) ([]domain.CompetentAuthority, error) {
	query := `SELECT authority_id, name, code FROM competent_authorities ORDER BY code;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authorities: %w", err)
	}
	defer rows.Close()

	auths := []domain.CompetentAuthority{}
	for rows.Next() {
		var a domain.CompetentAuthority
		if err := rows.Scan(&a.AuthorityID, &a.Name, &a.Code); err != nil {
			return nil, fmt.Errorf("failed to scan authority row: %w", err)
		}
		auths = append(auths, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authority rows: %w", err)
	}
	return auths, nil
}
