package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prefixes decorate notices printed by a WriterSink.
type Prefixes struct {
	Default     string
	Destructive string
}

// DefaultPrefixes mirrors the icons used by the web toasts.
var DefaultPrefixes = Prefixes{
	Default:     "✔",
	Destructive: "✖",
}

// WriterSink prints notices as single lines, one per call.
type WriterSink struct {
	mu       sync.Mutex
	out      io.Writer
	prefixes Prefixes
}

// NewWriterSink writes to out using the supplied prefixes. Empty prefixes fall
// back to DefaultPrefixes.
func NewWriterSink(out io.Writer, prefixes Prefixes) *WriterSink {
	if prefixes.Default == "" {
		prefixes.Default = DefaultPrefixes.Default
	}
	if prefixes.Destructive == "" {
		prefixes.Destructive = DefaultPrefixes.Destructive
	}
	return &WriterSink{out: out, prefixes: prefixes}
}

// Notify formats and writes the notice. Write errors are dropped.
func (s *WriterSink) Notify(_ context.Context, notice Notice) {
	if s == nil || s.out == nil || notice.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.out, Format(notice, s.prefixes))
}

// Format renders a notice as "<prefix> <title>: <description>".
func Format(notice Notice, prefixes Prefixes) string {
	prefix := prefixes.Default
	if notice.Destructive() {
		prefix = prefixes.Destructive
	}
	title := strings.TrimSpace(notice.Title)
	desc := strings.TrimSpace(notice.Description)

	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte(' ')
	}
	switch {
	case title != "" && desc != "":
		b.WriteString(title)
		b.WriteString(": ")
		b.WriteString(desc)
	case title != "":
		b.WriteString(title)
	default:
		b.WriteString(desc)
	}
	return b.String()
}
