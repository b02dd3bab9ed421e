package repositories

import (
	"context"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username (login).
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves active users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// ListUsersByIDs retrieves users keyed by ID.
	ListUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)

	// FindActorByID resolves a user together with their role's capability set.
	FindActorByID(ctx context.Context, userID string) (*domain.Actor, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	// DeactivateUser soft-deletes a user.
	DeactivateUser(ctx context.Context, userID string, updatedByUserID string, updatedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// RoleRepositoryFacade covers roles, capabilities and departments.
type RoleRepositoryFacade interface {
	SaveRole(ctx context.Context, role domain.Role) error
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// SetRoleCapabilities replaces the capability grant set of a role.
	SetRoleCapabilities(ctx context.Context, roleID string, capabilityCodes []string) error

	ListCapabilities(ctx context.Context) ([]domain.Capability, error)
	FindCapabilityByCode(ctx context.Context, code string) (*domain.Capability, error)

	SaveDepartment(ctx context.Context, dept domain.Department) error
	ListDepartments(ctx context.Context) ([]domain.Department, error)
}
