package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// AuthSvcFacade covers credential verification and token issuance.
type AuthSvcFacade interface {
	// Login verifies the credentials and issues a signed access token.
	// Returns apperrors.ErrUnauthorized on bad credentials or an inactive
	// account.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// ValidateToken parses and verifies an access token and returns the
	// subject user ID.
	ValidateToken(ctx context.Context, token string) (string, error)
}
