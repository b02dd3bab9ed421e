package domain

import "time"

// TaskStatus is the lifecycle state of an internal task.
type TaskStatus string

const (
	TaskNew              TaskStatus = "new"
	TaskInProgress       TaskStatus = "in_progress"
	TaskCompletedPending TaskStatus = "completed_pending"
	TaskApproved         TaskStatus = "approved"
	TaskRejected         TaskStatus = "rejected"
	TaskCancelled        TaskStatus = "cancelled"
)

// taskTransitions is the strict allowed-transition table. Approved and
// cancelled are terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskNew:              {TaskInProgress, TaskCancelled},
	TaskInProgress:       {TaskCompletedPending, TaskCancelled},
	TaskCompletedPending: {TaskApproved, TaskRejected},
	TaskRejected:         {TaskInProgress, TaskCancelled},
	TaskApproved:         {},
	TaskCancelled:        {},
}

// CanTransition reports whether a task may move from one status to another.
// A no-op transition (same status) is always allowed.
func (s TaskStatus) CanTransition(to TaskStatus) bool {
	if s == to {
		return true
	}
	for _, allowed := range taskTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TaskType categorises the kind of internal work a task represents.
type TaskType string

const (
	TaskPlanReview  TaskType = "PLAN_REVIEW"
	TaskDocReview   TaskType = "DOC_REVIEW"
	TaskTechReport  TaskType = "TECH_REPORT"
	TaskExtFollow   TaskType = "EXT_FOLLOW"
	TaskAccAudit    TaskType = "ACC_AUDIT"
	TaskQuotePrep   TaskType = "QUOTE_PREP"
	TaskDataUpdate  TaskType = "DATA_UPDATE"
	TaskGeneralTask TaskType = "GENERAL_TASK"
)

// Task is an internal unit of work, optionally tied to a transaction.
type Task struct {
	TaskID        string     `json:"taskID"`
	TaskType      TaskType   `json:"taskType"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        TaskStatus `json:"status"`
	AssignedToID  *string    `json:"assignedToID"`
	TransactionID *string    `json:"transactionID"`
	DueDate       *time.Time `json:"dueDate"`
	AuditFields
}
