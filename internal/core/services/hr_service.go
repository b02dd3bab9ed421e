package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	"github.com/faroukh/office_mgmt_app/internal/core/domain"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in on this date")
	ErrNoOpenAttendance = errors.New("no open attendance record for this date")
	ErrAlreadyReviewed  = errors.New("request has already been reviewed")
	ErrLeaveDatesOrder  = errors.New("leave end date must not precede start date")
)

// hrService manages attendance, leave requests and permission requests.
type hrService struct {
	hrRepo   portsrepo.HRRepositoryFacade
	userSvc  portssvc.UserSvcFacade
	notifier portssvc.NotificationSvcFacade
}

// NewHRService creates a new HR service.
func NewHRService(hrRepo portsrepo.HRRepositoryFacade, userSvc portssvc.UserSvcFacade, notifier portssvc.NotificationSvcFacade) portssvc.HRSvcFacade {
	return &hrService{hrRepo: hrRepo, userSvc: userSvc, notifier: notifier}
}

var _ portssvc.HRSvcFacade = (*hrService)(nil)

// dayOf truncates a timestamp to its calendar day in UTC.
func dayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// CheckIn opens today's attendance record for the caller.
func (s *hrService) CheckIn(ctx context.Context, req dto.CheckInRequest, employeeID string) (*domain.Attendance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := nowUTC()
	date := dayOf(now)
	if req.Date != nil {
		date = dayOf(*req.Date)
	}

	att := domain.Attendance{
		AttendanceID: uuid.NewString(),
		EmployeeID:   employeeID,
		Date:         date,
		CheckIn:      now,
		Notes:        req.Notes,
	}

	if err := s.hrRepo.SaveAttendance(ctx, att); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrAlreadyCheckedIn.Error())
		}
		logger.Error("Failed to save attendance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	return &att, nil
}

// CheckOut closes the day's attendance record.
func (s *hrService) CheckOut(ctx context.Context, req dto.CheckOutRequest, employeeID string) (*domain.Attendance, error) {
	now := nowUTC()
	date := dayOf(now)
	if req.Date != nil {
		date = dayOf(*req.Date)
	}

	att, err := s.hrRepo.FindAttendanceByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoOpenAttendance.Error())
		}
		return nil, err
	}

	att.CheckOut = &now
	if err := s.hrRepo.UpdateAttendance(ctx, *att); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	return att, nil
}

// ListAttendance retrieves an employee's attendance records.
func (s *hrService) ListAttendance(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Attendance, error) {
	if limit <= 0 {
		limit = 31
	}
	return s.hrRepo.ListAttendanceForEmployee(ctx, employeeID, limit, offset)
}

// RequestLeave files a leave request in pending status.
func (s *hrService) RequestLeave(ctx context.Context, req dto.CreateLeaveRequest, employeeID string) (*domain.LeaveRequest, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLeaveDatesOrder.Error())
	}

	leave := domain.LeaveRequest{
		LeaveRequestID: uuid.NewString(),
		EmployeeID:     employeeID,
		LeaveType:      domain.LeaveType(req.LeaveType),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Reason:         req.Reason,
		Status:         domain.ReviewPending,
		CreatedAt:      nowUTC(),
	}

	if err := s.hrRepo.SaveLeaveRequest(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to save leave request: %w", err)
	}
	return &leave, nil
}

// ReviewLeave approves or rejects a pending leave request and notifies the
// requester. Requires the leave-review capability.
func (s *hrService) ReviewLeave(ctx context.Context, leaveRequestID string, approve bool, reviewerUserID string) (*domain.LeaveRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.GetActor(ctx, reviewerUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapLeaveReview) {
		return nil, apperrors.ErrForbidden
	}

	leave, err := s.hrRepo.FindLeaveRequestByID(ctx, leaveRequestID)
	if err != nil {
		return nil, err
	}
	if leave.Status != domain.ReviewPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAlreadyReviewed.Error())
	}

	status := domain.ReviewRejected
	if approve {
		status = domain.ReviewApproved
	}

	if err := s.hrRepo.UpdateLeaveReview(ctx, leaveRequestID, status, reviewerUserID); err != nil {
		logger.Error("Failed to record leave review", slog.String("error", err.Error()), slog.String("leave_request_id", leaveRequestID))
		return nil, fmt.Errorf("failed to record leave review: %w", err)
	}

	leave.Status = status
	leave.ReviewedByID = &reviewerUserID

	if err := s.notifier.Notify(ctx, domain.Notification{
		UserID:    leave.EmployeeID,
		Message:   fmt.Sprintf("تم الرد على طلب الإجازة: %s", status),
		EventType: domain.EventLeaveResponse,
		Related:   &domain.RelatedRef{Kind: domain.RelatedLeaveRequest, ID: leaveRequestID},
	}); err != nil {
		logger.Warn("Failed to notify leave requester", slog.String("error", err.Error()))
	}

	return leave, nil
}

// ListLeaveRequests retrieves leave requests. Non-reviewers only see their
// own.
func (s *hrService) ListLeaveRequests(ctx context.Context, employeeID *string, status *domain.ReviewStatus, requestingUserID string) ([]domain.LeaveRequest, error) {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapLeaveReview) {
		employeeID = &actor.UserID
	}
	return s.hrRepo.ListLeaveRequests(ctx, employeeID, status)
}

// RequestPermission files a capability request and notifies superusers able
// to review it.
func (s *hrService) RequestPermission(ctx context.Context, req dto.CreatePermissionRequest, requesterUserID string) (*domain.PermissionRequest, error) {
	perm := domain.PermissionRequest{
		RequestID:      uuid.NewString(),
		RequesterID:    requesterUserID,
		CapabilityCode: req.CapabilityCode,
		Justification:  req.Justification,
		Status:         domain.ReviewPending,
		CreatedAt:      nowUTC(),
	}

	if err := s.hrRepo.SavePermissionRequest(ctx, perm); err != nil {
		return nil, fmt.Errorf("failed to save permission request: %w", err)
	}
	return &perm, nil
}

// ReviewPermission approves or rejects a pending permission request and
// notifies the requester. Approval records the review only; it does not
// grant the capability.
func (s *hrService) ReviewPermission(ctx context.Context, requestID string, approve bool, reviewerUserID string) (*domain.PermissionRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userSvc.GetActor(ctx, reviewerUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapPermissionReqsReview) {
		return nil, apperrors.ErrForbidden
	}

	perm, err := s.hrRepo.FindPermissionRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if perm.Status != domain.ReviewPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAlreadyReviewed.Error())
	}

	status := domain.ReviewRejected
	if approve {
		status = domain.ReviewApproved
	}
	now := nowUTC()

	if err := s.hrRepo.UpdatePermissionReview(ctx, requestID, status, reviewerUserID, now); err != nil {
		logger.Error("Failed to record permission review", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, fmt.Errorf("failed to record permission review: %w", err)
	}

	perm.Status = status
	perm.ReviewedByID = &reviewerUserID
	perm.ReviewedAt = &now

	if err := s.notifier.Notify(ctx, domain.Notification{
		UserID:    perm.RequesterID,
		Message:   fmt.Sprintf("تم الرد على طلب الصلاحية %s: %s", perm.CapabilityCode, status),
		EventType: domain.EventPermissionResponse,
		Related:   &domain.RelatedRef{Kind: domain.RelatedPermissionRequest, ID: requestID},
	}); err != nil {
		logger.Warn("Failed to notify permission requester", slog.String("error", err.Error()))
	}

	return perm, nil
}

// ListPermissionRequests retrieves permission requests. Non-reviewers only
// see their own.
func (s *hrService) ListPermissionRequests(ctx context.Context, requesterID *string, status *domain.ReviewStatus, requestingUserID string) ([]domain.PermissionRequest, error) {
	actor, err := s.userSvc.GetActor(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Has(domain.CapPermissionReqsReview) {
		requesterID = &actor.UserID
	}
	return s.hrRepo.ListPermissionRequests(ctx, requesterID, status)
}
