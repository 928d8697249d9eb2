package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pidlock/internal/config"
	"pidlock/internal/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pidlock.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("lock acquired",
		logging.String(logging.FieldLockPath, "/tmp/test.pid"),
		logging.Int(logging.FieldPID, 1234),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := bytes.TrimSpace(data)
	var record map[string]any
	if err := json.Unmarshal(line, &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, line)
	}
	if record["msg"] != "lock acquired" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record[logging.FieldLockPath] != "/tmp/test.pid" {
		t.Fatalf("lock_path = %v", record[logging.FieldLockPath])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigUsesConfiguredLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled at error level")
	}
}

func TestNewComponentLoggerToleratesNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "supervisor")
	// Must not panic and must swallow output.
	logger.Info("noop")
}
