package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
}

func TestSetup_WritesToFileWithRequestID(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "nested", "folio.log")
	closer, err := Setup(path, false)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}

	ctx := ContextWithID(context.Background(), "req-123")
	For(ctx).WithField("books", 3).Info("books loaded")
	For(ctx).Debug("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "books loaded") || !strings.Contains(out, "request_id=req-123") || !strings.Contains(out, "books=3") {
		t.Fatalf("log output = %q, want message with request_id and books fields", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestSetup_VerboseEnablesDebug(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "folio.log")
	closer, err := Setup(path, true)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	done := Track(context.Background(), "book fetch")
	done()
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "book fetch completed") {
		t.Fatalf("log output = %q, want tracked completion", string(data))
	}
}

func TestSetup_EmptyPathDiscards(t *testing.T) {
	restoreLogger(t)

	closer, err := Setup("  ", false)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	For(context.Background()).Info("goes nowhere")
}

func TestFor_WithoutID(t *testing.T) {
	entry := For(context.Background())
	if _, ok := entry.Data["request_id"]; ok {
		t.Fatalf("entry has request_id without one in context")
	}
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	if a == b {
		t.Fatalf("NewRequestID returned duplicate %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("NewRequestID = %q, not a uuid: %v", a, err)
	}
}
