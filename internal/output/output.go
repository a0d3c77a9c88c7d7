// Package output writes run artifacts: entries as JSONL plus an aggregate
// JSON array, and the issue log as JSONL flushed per record so a crashed
// run still leaves a usable partial log.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fredkneeland/beja-dict-parser/internal/engine"
	"github.com/rs/zerolog"
)

// EntryWriter streams entries to a JSONL file and, on Close, writes the
// aggregate JSON array form alongside it.
type EntryWriter struct {
	jsonl    *os.File
	jsonPath string
	entries  []engine.Entry
	count    int
}

// NewEntryWriter opens the JSONL stream. jsonPath may be empty to skip the
// aggregate form.
func NewEntryWriter(jsonlPath, jsonPath string) (*EntryWriter, error) {
	f, err := os.Create(jsonlPath)
	if err != nil {
		return nil, fmt.Errorf("output: create %s: %w", jsonlPath, err)
	}
	return &EntryWriter{jsonl: f, jsonPath: jsonPath}, nil
}

// Write appends one entry to the JSONL stream.
func (w *EntryWriter) Write(e engine.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("output: marshal entry %s: %w", e.ID, err)
	}
	if _, err := w.jsonl.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("output: write entry: %w", err)
	}
	w.count++
	if w.jsonPath != "" {
		w.entries = append(w.entries, e)
	}
	return nil
}

// Count reports how many entries were written.
func (w *EntryWriter) Count() int { return w.count }

// Close finishes the JSONL stream and writes the aggregate JSON array.
func (w *EntryWriter) Close() error {
	if err := w.jsonl.Close(); err != nil {
		return fmt.Errorf("output: close entries jsonl: %w", err)
	}
	if w.jsonPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(w.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("output: marshal aggregate: %w", err)
	}
	if err := os.WriteFile(w.jsonPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", w.jsonPath, err)
	}
	return nil
}

// IssueLog is an engine.IssueSink writing one JSON object per line,
// unbuffered, safe for concurrent use by parallel page workers.
type IssueLog struct {
	mu     sync.Mutex
	f      *os.File
	count  int
	logger zerolog.Logger
}

// NewIssueLog opens the issue log for writing.
func NewIssueLog(path string, logger zerolog.Logger) (*IssueLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: create %s: %w", path, err)
	}
	return &IssueLog{f: f, logger: logger}, nil
}

// Record appends one issue. Write failures are logged rather than
// propagated: the issue log must never abort processing.
func (l *IssueLog) Record(issue engine.Issue) {
	data, err := json.Marshal(issue)
	if err != nil {
		l.logger.Error().Err(err).Str("kind", string(issue.Kind)).Msg("marshal issue")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(append(data, '\n')); err != nil {
		l.logger.Error().Err(err).Msg("write issue")
		return
	}
	l.count++
}

// Count reports how many issues were recorded.
func (l *IssueLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close closes the underlying file.
func (l *IssueLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.f.Close(); err != nil {
		return fmt.Errorf("output: close issue log: %w", err)
	}
	return nil
}
