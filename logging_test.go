package disruptor

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRotatingFileLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disruptor.log")
	l := NewRotatingFileLogger(path, zapcore.InfoLevel)
	l.Info("async handler worker stopped")
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("log file is empty, want at least one entry")
	}
}

func TestSetLogger_NilInstallsNoop(t *testing.T) {
	prev := logger
	defer SetLogger(prev)

	SetLogger(nil)
	logWorkerStopped(DefaultStopSignal, 0) // must not panic with a nop logger

	SetLogger(zap.NewNop())
	logBuildError("test", ErrCapacity)
}
