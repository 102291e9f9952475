// Package logger writes the append-only audit trail of analyses as JSON lines.
package logger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gzhole/veritas/internal/redact"
)

// defaultMaxLogBytes is the size at which the audit file is rotated to
// <path>.1. One backup is kept.
const defaultMaxLogBytes = 10 << 20

// maxContentPreview bounds the content stored per event, in characters.
const maxContentPreview = 512

// AuditEvent records one analysis or filter call.
type AuditEvent struct {
	Timestamp     string   `json:"timestamp"`
	ID            string   `json:"id,omitempty"`
	Operation     string   `json:"operation"`
	Policy        string   `json:"policy"`
	RiskScore     float64  `json:"risk_score"`
	RiskLevel     string   `json:"risk_level"`
	Blocked       bool     `json:"blocked"`
	BlockedCount  int      `json:"blocked_count"`
	EvidenceCount int      `json:"evidence_count"`
	Categories    []string `json:"categories,omitempty"`
	HiddenChars   int      `json:"hidden_chars,omitempty"`
	Content       string   `json:"content"`
	Source        string   `json:"source,omitempty"`
}

// AuditLogger appends AuditEvents to a file. It is safe for concurrent use.
type AuditLogger struct {
	path     string
	maxBytes int64
	file     *os.File
	size     int64
	mu       sync.Mutex
}

// New opens (or creates) the audit file at path with owner-only permissions.
// A file already at the rotation limit is rotated first.
func New(path string) (*AuditLogger, error) {
	l := &AuditLogger{path: path, maxBytes: defaultMaxLogBytes}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *AuditLogger) open() error {
	if info, err := os.Stat(l.path); err == nil && info.Size() >= l.maxBytes {
		if err := os.Rename(l.path, l.path+".1"); err != nil {
			return fmt.Errorf("rotate audit log: %w", err)
		}
	}

	return l.reopen()
}

// reopen opens l.path for appending and picks up its current size.
func (l *AuditLogger) reopen() error {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}
	l.file = file
	l.size = info.Size()
	return nil
}

// Log writes one event. Content is scrubbed of credentials and truncated
// before it is written.
func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Content = redact.Preview(event.Content, maxContentPreview)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	var rotateErr error
	if l.file != nil && l.size > 0 && l.size+int64(len(data)) > l.maxBytes {
		rotateErr = l.rotate()
	}
	if l.file == nil {
		if err := l.reopen(); err != nil {
			return errors.Join(rotateErr, err)
		}
	}

	// A failed rotation still writes the event to the current file.
	n, err := l.file.Write(data)
	l.size += int64(n)
	return errors.Join(rotateErr, err)
}

// rotate moves the active file to <path>.1 and starts a new one. On failure
// the original path is reopened so logging continues.
func (l *AuditLogger) rotate() error {
	closeErr := l.file.Close()
	l.file = nil
	if closeErr != nil {
		return closeErr
	}
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		if reopenErr := l.reopen(); reopenErr != nil {
			return errors.Join(fmt.Errorf("rotate audit log: %w", err), reopenErr)
		}
		return fmt.Errorf("rotate audit log: %w", err)
	}
	return l.reopen()
}

// Path returns the file the logger writes to.
func (l *AuditLogger) Path() string {
	return l.path
}

func (l *AuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
