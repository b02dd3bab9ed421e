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
	"github.com/faroukh/office_mgmt_app/internal/utils"
)

// userService manages users, roles and departments.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, roleRepo portsrepo.RoleRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser persists a new user with a hashed password. Superuser only.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.GetActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperuser {
		logger.Warn("Non-superuser attempted to create a user", slog.String("user_id", creatorUserID))
		return nil, apperrors.ErrForbidden
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employeeType := domain.EmployeeType(req.EmployeeType)
	if employeeType == "" {
		employeeType = domain.EmployeeLocal
	}

	now := nowUTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		FullNameAr:   req.FullNameAr,
		EmployeeType: employeeType,
		PhoneNumber:  req.PhoneNumber,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, req.Username)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a specific user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by login name.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// ListUsers retrieves active users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// GetActor resolves a user with their role's capability set.
func (s *userService) GetActor(ctx context.Context, userID string) (*domain.Actor, error) {
	actor, err := s.userRepo.FindActorByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve actor for user %s: %w", userID, err)
	}
	return actor, nil
}

// UpdateUser applies field updates. Users may update themselves; superusers
// may update anyone.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if userID != requestingUserID && !actor.IsSuperuser {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.FullNameAr != nil {
		user.FullNameAr = *req.FullNameAr
		updated = true
	}
	if req.EmployeeType != nil {
		user.EmployeeType = domain.EmployeeType(*req.EmployeeType)
		updated = true
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
		updated = true
	}
	// Role and department reassignment is a superuser action.
	if req.RoleID != nil || req.DepartmentID != nil {
		if !actor.IsSuperuser {
			return nil, apperrors.ErrForbidden
		}
		if req.RoleID != nil {
			user.RoleID = req.RoleID
		}
		if req.DepartmentID != nil {
			user.DepartmentID = req.DepartmentID
		}
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = nowUTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeactivateUser soft-deletes a user; superuser only.
func (s *userService) DeactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.GetActor(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !actor.IsSuperuser {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.DeactivateUser(ctx, userID, requestingUserID, nowUTC()); err != nil {
		logger.Error("Failed to deactivate user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	logger.Info("User deactivated", slog.String("target_user_id", userID))
	return nil
}

// CreateRole persists a new role with its capability grants. Superuser only.
func (s *userService) CreateRole(ctx context.Context, req dto.CreateRoleRequest, creatorUserID string) (*domain.Role, error) {
	actor, err := s.GetActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperuser {
		return nil, apperrors.ErrForbidden
	}

	role := domain.Role{
		RoleID:       uuid.NewString(),
		Name:         req.Name,
		Capabilities: uniqueStrings(req.Capabilities),
	}

	if err := s.roleRepo.SaveRole(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to save role: %w", err)
	}
	if len(role.Capabilities) > 0 {
		if err := s.roleRepo.SetRoleCapabilities(ctx, role.RoleID, role.Capabilities); err != nil {
			return nil, fmt.Errorf("failed to set role capabilities: %w", err)
		}
	}
	return &role, nil
}

// GetRoleByID retrieves a role.
func (s *userService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	return s.roleRepo.FindRoleByID(ctx, roleID)
}

// ListRoles retrieves all roles.
func (s *userService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.ListRoles(ctx)
}

// SetRoleCapabilities replaces a role's capability grant set. Superuser only.
func (s *userService) SetRoleCapabilities(ctx context.Context, roleID string, capabilityCodes []string, requestingUserID string) error {
	actor, err := s.GetActor(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !actor.IsSuperuser {
		return apperrors.ErrForbidden
	}

	if _, err := s.roleRepo.FindRoleByID(ctx, roleID); err != nil {
		return err
	}
	return s.roleRepo.SetRoleCapabilities(ctx, roleID, uniqueStrings(capabilityCodes))
}

// ListCapabilities retrieves the capability catalogue.
func (s *userService) ListCapabilities(ctx context.Context) ([]domain.Capability, error) {
	return s.roleRepo.ListCapabilities(ctx)
}

// CreateDepartment persists a new department. Superuser only.
func (s *userService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	actor, err := s.GetActor(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperuser {
		return nil, apperrors.ErrForbidden
	}

	dept := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
	}
	if err := s.roleRepo.SaveDepartment(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to save department: %w", err)
	}
	return &dept, nil
}

// ListDepartments retrieves all departments.
func (s *userService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.roleRepo.ListDepartments(ctx)
}
