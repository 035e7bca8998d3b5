package event

import (
	"context"
	"log/slog"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/audit"
)

// AuditLogPublisher emits audit events as structured log records. The log
// stream is the handoff point to the external audit trail; nothing is stored
// locally.
type AuditLogPublisher struct {
	logger *slog.Logger
}

func NewAuditLogPublisher(logger *slog.Logger) *AuditLogPublisher {
	return &AuditLogPublisher{logger: logger}
}

// Publish implements audit.Publisher.
func (p *AuditLogPublisher) Publish(ctx context.Context, event audit.Event) error {
	p.logger.LogAttrs(ctx, slog.LevelInfo, "audit event",
		slog.String("action", string(event.Action)),
		slog.String("request_id", event.RequestID),
		slog.String("employee_id", event.EmployeeID),
		slog.String("actor", event.Actor),
		slog.String("before_status", event.BeforeStatus),
		slog.String("after_status", event.AfterStatus),
		slog.Time("timestamp", event.Timestamp),
	)
	return nil
}
