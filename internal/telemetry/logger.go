package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Event names emitted by the app layer. Grep-friendly on a JSONL log.
const (
	EventStateLoaded      = "state.loaded"
	EventStateReset       = "state.reset"
	EventStreakAdvanced   = "streak.advanced"
	EventXPGranted        = "xp.granted"
	EventLessonCompleted  = "lesson.completed"
	EventRoadmapToggled   = "roadmap.toggled"
	EventMCQAnswered      = "mcq.answered"
	EventDraftSaved       = "draft.saved"
	EventAssessmentStart  = "assessment.started"
	EventAssessmentSubmit = "assessment.submitted"
	EventCatalogFallback  = "catalog.fallback"
	EventStoreError       = "store.error"
)

// JSONLogger appends one JSON object per line to the session log. All
// methods are safe on a nil receiver so callers never guard their event
// emission.
type JSONLogger struct {
	mu        sync.Mutex
	w         io.WriteCloser
	sessionID string
}

// NewJSONLogger opens path for appending; an empty path discards output.
func NewJSONLogger(path, sessionID string) (*JSONLogger, error) {
	if path == "" {
		return &JSONLogger{w: nopCloser{Writer: io.Discard}, sessionID: sessionID}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{w: f, sessionID: sessionID}, nil
}

// Event records a named domain event with its fields.
func (l *JSONLogger) Event(name string, fields map[string]any) {
	l.log("info", name, fields)
}

// Error records a failure; err may be nil when only the fields matter.
func (l *JSONLogger) Error(name string, err error, fields map[string]any) {
	if err != nil {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["error"] = err.Error()
	}
	l.log("error", name, fields)
}

func (l *JSONLogger) log(level, event string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"level":   level,
		"event":   event,
		"session": l.sessionID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
