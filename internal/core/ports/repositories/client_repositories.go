package repositories

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// ClientRepositoryFacade covers clients, the transaction taxonomy and
// competent authorities.
type ClientRepositoryFacade interface {
	// SaveClient inserts a client. Returns apperrors.ErrDuplicate on client
	// code collision.
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error

	SaveMainCategory(ctx context.Context, cat domain.TransactionMainCategory) error
	ListMainCategories(ctx context.Context) ([]domain.TransactionMainCategory, error)

	SaveSubCategory(ctx context.Context, sub domain.TransactionSubCategory) error
	FindSubCategoryByID(ctx context.Context, subCategoryID string) (*domain.TransactionSubCategory, error)
	ListSubCategories(ctx context.Context, mainCategoryID *string) ([]domain.TransactionSubCategory, error)

	SaveAuthority(ctx context.Context, auth domain.CompetentAuthority) error
	ListAuthorities(ctx context.Context) ([]domain.CompetentAuthority, error)
}
