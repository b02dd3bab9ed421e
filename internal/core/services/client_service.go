package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

// clientService manages clients, the transaction taxonomy and competent
// authorities.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient registers a client with a unique client code.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	clientType := domain.ClientType(req.ClientType)
	if clientType == "" {
		clientType = domain.ClientRegular
	}

	now := nowUTC()
	client := domain.Client{
		ClientID:           uuid.NewString(),
		ClientType:         clientType,
		ClientCode:         req.ClientCode,
		NameAr:             req.NameAr,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		CommercialRegister: req.CommercialRegister,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: client code %s already exists", apperrors.ErrDuplicate, req.ClientCode)
		}
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("client_code", client.ClientCode))
	return &client, nil
}

// GetClientByID retrieves a client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

// ListClients retrieves clients.
func (s *clientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.clientRepo.ListClients(ctx, limit, offset)
}

// UpdateClient applies field updates to a client.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.NameAr != nil {
		client.NameAr = *req.NameAr
		updated = true
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
		updated = true
	}
	if req.Email != nil {
		client.Email = *req.Email
		updated = true
	}
	if req.CommercialRegister != nil {
		client.CommercialRegister = *req.CommercialRegister
		updated = true
	}

	if !updated {
		return client, nil
	}

	client.LastUpdatedAt = nowUTC()
	client.LastUpdatedBy = requestingUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// CreateMainCategory registers a top-level transaction category.
func (s *clientService) CreateMainCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.TransactionMainCategory, error) {
	cat := domain.TransactionMainCategory{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Code:       req.Code,
	}
	if err := s.clientRepo.SaveMainCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to save main category: %w", err)
	}
	return &cat, nil
}

// ListMainCategories retrieves the top-level categories.
func (s *clientService) ListMainCategories(ctx context.Context) ([]domain.TransactionMainCategory, error) {
	return s.clientRepo.ListMainCategories(ctx)
}

// CreateSubCategory registers a sub-category under a main category.
func (s *clientService) CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest, creatorUserID string) (*domain.TransactionSubCategory, error) {
	sub := domain.TransactionSubCategory{
		SubCategoryID:  uuid.NewString(),
		MainCategoryID: req.MainCategoryID,
		Name:           req.Name,
		Code:           req.Code,
	}
	if err := s.clientRepo.SaveSubCategory(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save sub-category: %w", err)
	}
	return &sub, nil
}

// ListSubCategories retrieves sub-categories, optionally scoped to a main
// category.
func (s *clientService) ListSubCategories(ctx context.Context, mainCategoryID *string) ([]domain.TransactionSubCategory, error) {
	return s.clientRepo.ListSubCategories(ctx, mainCategoryID)
}

// CreateAuthority registers a competent authority.
func (s *clientService) CreateAuthority(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.CompetentAuthority, error) {
	auth := domain.CompetentAuthority{
		AuthorityID: uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
	}
	if err := s.clientRepo.SaveAuthority(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save authority: %w", err)
	}
	return &auth, nil
}

// ListAuthorities retrieves the competent authorities.
func (s *clientService) ListAuthorities(ctx context.Context) ([]domain.CompetentAuthority, error) {
	return s.clientRepo.ListAuthorities(ctx)
}
