package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves active users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// GetActor resolves a user with their role's capability set. Every
	// capability-gated service call goes through this.
	GetActor(ctx context.Context, userID string) (*domain.Actor, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeactivateUser soft-deletes a user; superuser only.
	DeactivateUser(ctx context.Context, userID string, requestingUserID string) error
}

// RoleSvc covers roles, capabilities and departments.
type RoleSvc interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error)
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	SetRoleCapabilities(ctx context.Context, roleID string, capabilityCodes []string, requestingUserID string) error
	ListCapabilities(ctx context.Context) ([]domain.Capability, error)

	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	RoleSvc
}
