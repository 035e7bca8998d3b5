package notification

import "context"

// TriggerType represents the kind of notification being requested.
type TriggerType string

const (
	TypeLeaveSubmitted TriggerType = "leave_submitted"
	TypeLeaveApproved  TriggerType = "leave_approved"
	TypeLeaveRejected  TriggerType = "leave_rejected"
)

// Trigger asks the external notification collaborator to deliver a message.
// Delivery, templating and preferences are out of scope here. Recipients may
// be empty, in which case the delivery layer resolves them (e.g. the
// employee's approvers for a submission).
type Trigger struct {
	Type       TriggerType `json:"type"`
	EmployeeID string      `json:"employee_id"`
	RequestID  string      `json:"request_id"`
	Recipients []string    `json:"recipients,omitempty"`
}

// Dispatcher forwards triggers to the delivery layer, fire-and-forget.
type Dispatcher interface {
	Dispatch(ctx context.Context, trigger Trigger) error
}
