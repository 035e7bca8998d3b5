package event

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nafeesnawab/payroll-backend-go/internal/domain/notification"
)

// LogDispatcher records notification triggers as structured log records for
// the delivery layer to pick up. Templating and channel selection happen
// downstream.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Dispatch implements notification.Dispatcher.
func (d *LogDispatcher) Dispatch(ctx context.Context, trigger notification.Trigger) error {
	d.logger.LogAttrs(ctx, slog.LevelInfo, "notification trigger",
		slog.String("type", string(trigger.Type)),
		slog.String("employee_id", trigger.EmployeeID),
		slog.String("request_id", trigger.RequestID),
		slog.String("recipients", strings.Join(trigger.Recipients, ",")),
	)
	return nil
}
