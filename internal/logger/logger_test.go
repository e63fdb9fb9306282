package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesLogDir(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log dir not created: %v", err)
	}

	// Logging after init must not panic and must land in the file.
	Warn("test warning", "key", "value")
	Error("test error")
}

func TestWrappersAreNilSafe(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// None of these may panic before Init runs.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
