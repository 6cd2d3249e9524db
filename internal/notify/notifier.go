// backend-go/internal/notify/notifier.go
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrorReport is the structured payload handed to the notifier when a run
// fails unrecoverably.
type ErrorReport struct {
	Message    string            `json:"message"`
	Stack      string            `json:"stack,omitempty"`
	Context    map[string]string `json:"context,omitempty"`
	ReportedAt time.Time         `json:"reported_at"`
}

// Notifier delivers failure reports to an external channel. The transport
// (email, chat) lives outside this service; implementations adapt the report
// to whatever that channel expects.
type Notifier interface {
	Notify(ctx context.Context, report ErrorReport)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that emits the report as a structured
// error log event. It is the default when no external channel is wired.
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) Notify(_ context.Context, report ErrorReport) {
	event := log.Error().Time("reported_at", report.ReportedAt)
	for k, v := range report.Context {
		event = event.Str(k, v)
	}
	if report.Stack != "" {
		event = event.Str("stack", report.Stack)
	}
	event.Msg(report.Message)
}
