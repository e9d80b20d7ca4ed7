package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Event is the canonical security-event record. Metadata carries
// flow-specific tags (request ids, resource names); secrets never do.
type Event struct {
	Timestamp  time.Time         `json:"timestamp"`
	EventType  string            `json:"event_type"`
	UserID     string            `json:"user_id,omitempty"`
	Email      string            `json:"email,omitempty"`
	ClientCode string            `json:"client_code,omitempty"`
	IP         string            `json:"ip,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Sink receives emitted events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops events.
type NoOpSink struct{}

// Emit implements [Sink] by doing nothing.
func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink writes events into a buffered channel.
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

// Emit implements [Sink]. It blocks until the event is buffered or ctx is
// done.
func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the receiving side of the sink.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements [Sink]. Marshal failures are dropped silently.
func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// KVWriterSink writes one tagged key-value line per event:
//
//	ts=2026-01-02T15:04:05Z event=login_failure email=a@b.com success=false error=invalid_credentials
//
// Values containing spaces or quotes are quoted. Metadata keys are emitted
// in sorted order so lines are stable for log tooling.
type KVWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewKVWriterSink creates a [KVWriterSink] that writes to w.
func NewKVWriterSink(w io.Writer) *KVWriterSink {
	return &KVWriterSink{
		writer: w,
	}
}

// Emit implements [Sink].
func (s *KVWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}

	var b strings.Builder
	writePair(&b, "ts", event.Timestamp.UTC().Format(time.RFC3339))
	writePair(&b, "event", event.EventType)
	if event.UserID != "" {
		writePair(&b, "user", event.UserID)
	}
	if event.Email != "" {
		writePair(&b, "email", event.Email)
	}
	if event.ClientCode != "" {
		writePair(&b, "client", event.ClientCode)
	}
	if event.IP != "" {
		writePair(&b, "ip", event.IP)
	}
	writePair(&b, "success", fmt.Sprintf("%t", event.Success))
	if event.Error != "" {
		writePair(&b, "error", event.Error)
	}

	keys := make([]string, 0, len(event.Metadata))
	for k := range event.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writePair(&b, k, event.Metadata[k])
	}

	b.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = io.WriteString(s.writer, b.String())
}

func writePair(b *strings.Builder, key, value string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(key)
	b.WriteByte('=')
	if strings.ContainsAny(value, " \t\"=") {
		b.WriteString(fmt.Sprintf("%q", value))
		return
	}
	b.WriteString(value)
}
