// Package diagnostics implements the side channel used to report non-fatal
// problems found while compiling instruction tables.
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
)

// Collects the non-fatal problems found while compiling one fixture entry or
// one instruction record. Not safe for concurrent use, each entry being
// parsed owns its own collector.
type Diagnostics struct {
	// What the messages refer to (usually an instruction name)
	Subject  string
	messages []string
}

// Creates an empty diagnostics collector
func New(subject string) *Diagnostics {
	return &Diagnostics{Subject: subject}
}

// Records a diagnostic message
func (d *Diagnostics) Reportf(format string, args ...any) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// Number of diagnostics reported so far
func (d *Diagnostics) Count() int {
	return len(d.messages)
}

// Returns a copy of all the messages reported so far, in report order
func (d *Diagnostics) Messages() []string {
	return append([]string(nil), d.messages...)
}

// Returns a new collector for another subject, starting with a copy of the messages collected so far
func (d *Diagnostics) Fork(subject string) *Diagnostics {
	return &Diagnostics{
		Subject:  subject,
		messages: d.Messages(),
	}
}

// Emits all messages through a logger, one record per message at warning level
func (d *Diagnostics) Emit(ctx context.Context, logger *slog.Logger, attrs ...slog.Attr) {
	if logger == nil {
		return
	}

	for _, message := range d.messages {
		logger.LogAttrs(ctx, slog.LevelWarn, message, append([]slog.Attr{slog.String("subject", d.Subject)}, attrs...)...)
	}
}
