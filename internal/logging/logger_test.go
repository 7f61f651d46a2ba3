// Package logging tests for structured logging.
package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

// newTestLogger returns a logger writing to an in-memory buffer.
func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return newLogger(&buf, level), &buf
}

// TestInit_idempotent verifies Init is idempotent.
func TestInit_idempotent(t *testing.T) {
	// Reset global logger for this test
	global = nil
	once = *new(sync.Once)

	var buf1 bytes.Buffer
	Init(&buf1, LevelInfo)
	firstLogger := Get()

	// Second init with different parameters should be ignored
	var buf2 bytes.Buffer
	Init(&buf2, LevelDebug)

	logger := Get()
	if logger != firstLogger {
		t.Error("Second Init() should be ignored, different logger returned")
	}
}

// TestGet_withoutInit verifies Get initializes a default logger.
func TestGet_withoutInit(t *testing.T) {
	global = nil
	once = *new(sync.Once)

	logger := Get()
	if logger == nil {
		t.Fatal("Get() returned nil without Init()")
	}
}

// TestInfo_producesJSON verifies log entries are structured JSON.
func TestInfo_producesJSON(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Info("scan complete", map[string]interface{}{
		"files_scanned": 3,
		"skipped":       1,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v\noutput: %s", err, buf.String())
	}

	if entry["msg"] != "scan complete" {
		t.Errorf("msg = %v, want 'scan complete'", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want 'info'", entry["level"])
	}
	if entry["files_scanned"] != float64(3) {
		t.Errorf("files_scanned = %v, want 3", entry["files_scanned"])
	}
}

// TestError_includesError verifies the error field is attached.
func TestError_includesError(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Error("read failed", errors.New("permission denied"), map[string]interface{}{
		"file": "/logs/a.txt",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["error"] != "permission denied" {
		t.Errorf("error = %v, want 'permission denied'", entry["error"])
	}
	if entry["file"] != "/logs/a.txt" {
		t.Errorf("file = %v, want '/logs/a.txt'", entry["file"])
	}
}

// TestMinLevel_filtersDebug verifies debug messages are dropped at info level.
func TestMinLevel_filtersDebug(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Debug("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("debug message should be filtered at info level, got %q", buf.String())
	}

	logger.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Error("warn message should pass at info level")
	}
}

// TestContextMerging verifies multiple context maps are merged.
func TestContextMerging(t *testing.T) {
	logger, buf := newTestLogger(LevelDebug)

	logger.Info("merged",
		map[string]interface{}{"a": 1},
		map[string]interface{}{"b": 2},
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["a"] != float64(1) || entry["b"] != float64(2) {
		t.Errorf("context maps not merged: %v", entry)
	}
}
