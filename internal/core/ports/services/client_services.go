package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// ClientSvcFacade covers clients, transaction categories and competent
// authorities.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)

	CreateMainCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.TransactionMainCategory, error)
	ListMainCategories(ctx context.Context) ([]domain.TransactionMainCategory, error)

	CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest, creatorUserID string) (*domain.TransactionSubCategory, error)
	ListSubCategories(ctx context.Context, mainCategoryID *string) ([]domain.TransactionSubCategory, error)

	CreateAuthority(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.CompetentAuthority, error)
	ListAuthorities(ctx context.Context) ([]domain.CompetentAuthority, error)
}
