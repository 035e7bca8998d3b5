package audit

import (
	"context"
	"time"
)

// Action identifies the mutation an audit event records.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
	ActionAdjust  Action = "adjust"
)

// Event is emitted for every committed leave mutation. Storage of the audit
// trail belongs to an external collaborator; this service only produces the
// events.
type Event struct {
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	Action       Action    `json:"action"`
	Actor        string    `json:"actor"`
	Timestamp    time.Time `json:"timestamp"`
	BeforeStatus string    `json:"before_status,omitempty"`
	AfterStatus  string    `json:"after_status,omitempty"`
}

// Publisher hands events to the external audit collaborator. Publishing is
// fire-and-forget from the caller's perspective: events are emitted only
// after the mutation committed, and a publish failure never rolls the
// mutation back.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
