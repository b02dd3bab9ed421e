package repositories

import (
	"context"
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// HRRepositoryFacade covers attendance, leave requests and permission
// requests.
type HRRepositoryFacade interface {
	// SaveAttendance inserts a check-in row. Returns apperrors.ErrDuplicate
	// when the employee already checked in on that date.
	SaveAttendance(ctx context.Context, att domain.Attendance) error
	FindAttendanceByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*domain.Attendance, error)
	UpdateAttendance(ctx context.Context, att domain.Attendance) error
	ListAttendanceForEmployee(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Attendance, error)

	SaveLeaveRequest(ctx context.Context, req domain.LeaveRequest) error
	FindLeaveRequestByID(ctx context.Context, leaveRequestID string) (*domain.LeaveRequest, error)
	UpdateLeaveReview(ctx context.Context, leaveRequestID string, status domain.ReviewStatus, reviewerID string) error
	ListLeaveRequests(ctx context.Context, employeeID *string, status *domain.ReviewStatus) ([]domain.LeaveRequest, error)

	SavePermissionRequest(ctx context.Context, req domain.PermissionRequest) error
	FindPermissionRequestByID(ctx context.Context, requestID string) (*domain.PermissionRequest, error)
	UpdatePermissionReview(ctx context.Context, requestID string, status domain.ReviewStatus, reviewerID string, reviewedAt time.Time) error
	ListPermissionRequests(ctx context.Context, requesterID *string, status *domain.ReviewStatus) ([]domain.PermissionRequest, error)
}
