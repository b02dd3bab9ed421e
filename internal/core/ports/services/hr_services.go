package services

import (
	"context"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	"github.com/faroukh/office_mgmt_app/internal/dto"
)

// AttendanceSvc covers daily check-in and check-out.
type AttendanceSvc interface {
	// CheckIn opens today's attendance record for the caller. A second
	// check-in on the same day returns apperrors.ErrDuplicate.
	CheckIn(ctx context.Context, req dto.CheckInRequest, employeeID string) (*domain.Attendance, error)

	// CheckOut closes the day's attendance record.
	CheckOut(ctx context.Context, req dto.CheckOutRequest, employeeID string) (*domain.Attendance, error)

	ListAttendance(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Attendance, error)
}

// LeaveSvc covers leave requests and their review flow.
type LeaveSvc interface {
	RequestLeave(ctx context.Context, req dto.CreateLeaveRequest, employeeID string) (*domain.LeaveRequest, error)

	// ReviewLeave approves or rejects a pending request and notifies the
	// requester. Requires the leave-review capability.
	ReviewLeave(ctx context.Context, leaveRequestID string, approve bool, reviewerUserID string) (*domain.LeaveRequest, error)

	ListLeaveRequests(ctx context.Context, employeeID *string, status *domain.ReviewStatus, requestingUserID string) ([]domain.LeaveRequest, error)
}

// PermissionRequestSvc covers capability requests and their review flow.
type PermissionRequestSvc interface {
	// RequestPermission files a capability request and notifies reviewers.
	RequestPermission(ctx context.Context, req dto.CreatePermissionRequest, requesterUserID string) (*domain.PermissionRequest, error)

	// ReviewPermission approves or rejects a pending request and notifies the
	// requester. Approval records the review only; it does not grant the
	// capability.
	ReviewPermission(ctx context.Context, requestID string, approve bool, reviewerUserID string) (*domain.PermissionRequest, error)

	ListPermissionRequests(ctx context.Context, requesterID *string, status *domain.ReviewStatus, requestingUserID string) ([]domain.PermissionRequest, error)
}

// HRSvcFacade combines all HR-related service interfaces.
type HRSvcFacade interface {
	AttendanceSvc
	LeaveSvc
	PermissionRequestSvc
}
