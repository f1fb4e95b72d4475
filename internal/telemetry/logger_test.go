package telemetry

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEventWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, err := NewJSONLogger(path, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	l.Event(EventXPGranted, map[string]any{"amount": 15})
	l.Error(EventStoreError, errors.New("disk full"), nil)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line is not JSON: %v", err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["event"] != EventXPGranted || lines[0]["amount"] != float64(15) {
		t.Fatalf("unexpected first line: %v", lines[0])
	}
	if lines[0]["session"] != "s-1" {
		t.Fatalf("session id missing: %v", lines[0])
	}
	if lines[1]["level"] != "error" || lines[1]["error"] != "disk full" {
		t.Fatalf("unexpected error line: %v", lines[1])
	}
}

func TestAppendAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	for _, id := range []string{"s-1", "s-2"} {
		l, err := NewJSONLogger(path, id)
		if err != nil {
			t.Fatal(err)
		}
		l.Event(EventStateLoaded, nil)
		l.Close()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := countLines(b); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *JSONLogger
	l.Event(EventStateLoaded, nil)
	l.Error(EventStoreError, errors.New("boom"), nil)
	if err := l.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestEmptyPathDiscards(t *testing.T) {
	l, err := NewJSONLogger("", "s-1")
	if err != nil {
		t.Fatal(err)
	}
	l.Event(EventStateLoaded, nil)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
