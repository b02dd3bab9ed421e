package dto

import (
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Username     string  `json:"username" binding:"required"`
	Password     string  `json:"password" binding:"required,min=8"`
	FullNameAr   string  `json:"fullNameAr" binding:"required"`
	EmployeeType string  `json:"employeeType" binding:"omitempty,oneof=local remote"`
	PhoneNumber  string  `json:"phoneNumber"`
	RoleID       *string `json:"roleID"`
	DepartmentID *string `json:"departmentID"`
}

// UpdateUserRequest defines the payload for updating a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	FullNameAr   *string `json:"fullNameAr"`
	EmployeeType *string `json:"employeeType" binding:"omitempty,oneof=local remote"`
	PhoneNumber  *string `json:"phoneNumber"`
	RoleID       *string `json:"roleID"`
	DepartmentID *string `json:"departmentID"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string  `json:"userID"`
	Username     string  `json:"username"`
	FullNameAr   string  `json:"fullNameAr"`
	EmployeeType string  `json:"employeeType"`
	PhoneNumber  string  `json:"phoneNumber"`
	IsSuperuser  bool    `json:"isSuperuser"`
	RoleID       *string `json:"roleID"`
	DepartmentID *string `json:"departmentID"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		FullNameAr:   u.FullNameAr,
		EmployeeType: string(u.EmployeeType),
		PhoneNumber:  u.PhoneNumber,
		IsSuperuser:  u.IsSuperuser,
		RoleID:       u.RoleID,
		DepartmentID: u.DepartmentID,
	}
}

// ToUserResponses converts a slice of domain.User.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// CreateRoleRequest defines the payload for creating a role.
type CreateRoleRequest struct {
	Name         string   `json:"name" binding:"required"`
	Capabilities []string `json:"capabilities"`
}

// RoleResponse defines the data returned for a role.
type RoleResponse struct {
	RoleID       string   `json:"roleID"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

// ToRoleResponse converts a domain.Role to RoleResponse.
func ToRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{RoleID: r.RoleID, Name: r.Name, Capabilities: r.Capabilities}
}

// CreateDepartmentRequest defines the payload for creating a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}
