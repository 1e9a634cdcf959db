package diagnostics

import (
	"context"
	"log/slog"
	"sync"
)

// A diagnostic message captured by a Collector
type Entry struct {
	Subject string
	Message string
}

// slog.Handler keeping every diagnostic (warning or above) it receives in
// memory, so that callers can summarize a build without parsing log output
type Collector struct {
	mutex   *sync.Mutex
	entries *[]Entry
	attrs   []slog.Attr
}

func NewCollector() *Collector {
	return &Collector{
		mutex:   &sync.Mutex{},
		entries: &[]Entry{},
	}
}

func (c *Collector) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn
}

func (c *Collector) Handle(_ context.Context, record slog.Record) error {
	entry := Entry{Message: record.Message}

	visit := func(attr slog.Attr) bool {
		if attr.Key == "subject" {
			entry.Subject = attr.Value.String()
		}
		return true
	}

	for _, attr := range c.attrs {
		visit(attr)
	}
	record.Attrs(visit)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	*c.entries = append(*c.entries, entry)
	return nil
}

func (c *Collector) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Collector{
		mutex:   c.mutex,
		entries: c.entries,
		attrs:   append(append([]slog.Attr(nil), c.attrs...), attrs...),
	}
}

func (c *Collector) WithGroup(_ string) slog.Handler {
	return c
}

// Returns all the diagnostics received so far
func (c *Collector) Entries() []Entry {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]Entry(nil), *c.entries...)
}

// Number of diagnostics received so far
func (c *Collector) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(*c.entries)
}
