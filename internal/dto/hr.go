package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// CheckInRequest defines the payload for recording a check-in. Date defaults
// to today when omitted.
type CheckInRequest struct {
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes"`
}

// CheckOutRequest defines the payload for closing an attendance record.
type CheckOutRequest struct {
	Date *time.Time `json:"date"`
}

// AttendanceResponse defines the data returned for an attendance record.
type AttendanceResponse struct {
	AttendanceID string     `json:"attendanceID"`
	EmployeeID   string     `json:"employeeID"`
	Date         time.Time  `json:"date"`
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	Notes        string     `json:"notes"`
}

// ToAttendanceResponse converts a domain.Attendance.
func ToAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: a.AttendanceID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date,
		CheckIn:      a.CheckIn,
		CheckOut:     a.CheckOut,
		Notes:        a.Notes,
	}
}

// ToAttendanceResponses converts a slice of domain.Attendance.
func ToAttendanceResponses(records []domain.Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, len(records))
	for i := range records {
		responses[i] = ToAttendanceResponse(&records[i])
	}
	return responses
}

// CreateLeaveRequest defines the payload for requesting leave.
type CreateLeaveRequest struct {
	LeaveType string    `json:"leaveType" binding:"required,oneof=ANNUAL SICK EMERGENCY UNPAID OTHER"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Reason    string    `json:"reason"`
}

// ReviewRequest defines the payload for approving or rejecting a leave or
// permission request.
type ReviewRequest struct {
	Approve bool `json:"approve"`
}

// LeaveRequestResponse defines the data returned for a leave request.
type LeaveRequestResponse struct {
	LeaveRequestID string     `json:"leaveRequestID"`
	EmployeeID     string     `json:"employeeID"`
	LeaveType      string     `json:"leaveType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ReviewedByID   *string    `json:"reviewedByID"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToLeaveRequestResponse converts a domain.LeaveRequest.
func ToLeaveRequestResponse(l *domain.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		LeaveRequestID: l.LeaveRequestID,
		EmployeeID:     l.EmployeeID,
		LeaveType:      string(l.LeaveType),
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		Reason:         l.Reason,
		Status:         string(l.Status),
		ReviewedByID:   l.ReviewedByID,
		CreatedAt:      l.CreatedAt,
	}
}

// ToLeaveRequestResponses converts a slice of domain.LeaveRequest.
func ToLeaveRequestResponses(ls []domain.LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, len(ls))
	for i := range ls {
		responses[i] = ToLeaveRequestResponse(&ls[i])
	}
	return responses
}

// CreatePermissionRequest defines the payload for requesting a capability.
type CreatePermissionRequest struct {
	CapabilityCode string `json:"capabilityCode" binding:"required"`
	Justification  string `json:"justification"`
}

// PermissionRequestResponse defines the data returned for a permission
// request.
type PermissionRequestResponse struct {
	RequestID      string     `json:"requestID"`
	RequesterID    string     `json:"requesterID"`
	CapabilityCode string     `json:"capabilityCode"`
	Justification  string     `json:"justification"`
	Status         string     `json:"status"`
	ReviewedByID   *string    `json:"reviewedByID"`
	ReviewedAt     *time.Time `json:"reviewedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToPermissionRequestResponse converts a domain.PermissionRequest.
func ToPermissionRequestResponse(p *domain.PermissionRequest) PermissionRequestResponse {
	return PermissionRequestResponse{
		RequestID:      p.RequestID,
		RequesterID:    p.RequesterID,
		CapabilityCode: p.CapabilityCode,
		Justification:  p.Justification,
		Status:         string(p.Status),
		ReviewedByID:   p.ReviewedByID,
		ReviewedAt:     p.ReviewedAt,
		CreatedAt:      p.CreatedAt,
	}
}

// ToPermissionRequestResponses converts a slice of domain.PermissionRequest.
func ToPermissionRequestResponses(ps []domain.PermissionRequest) []PermissionRequestResponse {
	responses := make([]PermissionRequestResponse, len(ps))
	for i := range ps {
		responses[i] = ToPermissionRequestResponse(&ps[i])
	}
	return responses
}
