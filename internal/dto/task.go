package dto

import (
	"time"

	"github.com/faroukh/office_mgmt_app/internal/core/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	TaskType      string     `json:"taskType" binding:"required,oneof=PLAN_REVIEW DOC_REVIEW TECH_REPORT EXT_FOLLOW ACC_AUDIT QUOTE_PREP DATA_UPDATE GENERAL_TASK"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	AssignedToID  *string    `json:"assignedToID"`
	TransactionID *string    `json:"transactionID"`
	DueDate       *time.Time `json:"dueDate"`
}

// UpdateTaskRequest defines the payload for updating a task. Status, when
// present, must be reachable from the task's current status.
type UpdateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status" binding:"omitempty,oneof=new in_progress completed_pending approved rejected cancelled"`
	AssignedToID *string    `json:"assignedToID"`
	DueDate      *time.Time `json:"dueDate"`
}

// ListTasksParams narrows task listings.
type ListTasksParams struct {
	Status        *string `form:"status"`
	AssignedToID  *string `form:"assigned_to"`
	TransactionID *string `form:"transaction_id"`
	Limit         int     `form:"limit"`
	Offset        int     `form:"offset"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID        string     `json:"taskID"`
	TaskType      string     `json:"taskType"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	AssignedToID  *string    `json:"assignedToID"`
	TransactionID *string    `json:"transactionID"`
	DueDate       *time.Time `json:"dueDate"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToTaskResponse converts a domain.Task to TaskResponse.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:        t.TaskID,
		TaskType:      string(t.TaskType),
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		AssignedToID:  t.AssignedToID,
		TransactionID: t.TransactionID,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTaskResponses converts a slice of domain.Task.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}
