package domain

import "time"

// Attendance is one working-day record for an employee. An (employee, date)
// pair is unique.
type Attendance struct {
	AttendanceID string     `json:"attendanceID"`
	EmployeeID   string     `json:"employeeID"`
	Date         time.Time  `json:"date"` // Day granularity
	CheckIn      time.Time  `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
	Notes        string     `json:"notes"`
}

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeaveEmergency LeaveType = "EMERGENCY"
	LeaveUnpaid    LeaveType = "UNPAID"
	LeaveOther     LeaveType = "OTHER"
)

// ReviewStatus is the shared pending/approved/rejected flow used by leave and
// permission requests.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// LeaveRequest is an employee's request for leave, reviewed by a manager.
type LeaveRequest struct {
	LeaveRequestID string       `json:"leaveRequestID"`
	EmployeeID     string       `json:"employeeID"`
	LeaveType      LeaveType    `json:"leaveType"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Reason         string       `json:"reason"`
	Status         ReviewStatus `json:"status"`
	ReviewedByID   *string      `json:"reviewedByID"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// PermissionRequest is a user's request to be granted a capability. Approval
// records the review and notifies the requester; it does not mutate the
// role's grant set.
type PermissionRequest struct {
	RequestID      string       `json:"requestID"`
	RequesterID    string       `json:"requesterID"`
	CapabilityCode string       `json:"capabilityCode"`
	Justification  string       `json:"justification"`
	Status         ReviewStatus `json:"status"`
	ReviewedByID   *string      `json:"reviewedByID"`
	ReviewedAt     *time.Time   `json:"reviewedAt"`
	CreatedAt      time.Time    `json:"createdAt"`
}
