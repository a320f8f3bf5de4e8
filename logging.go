package disruptor

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logger is the package-level structured logger, used only off the hot
// path: builder validation failures, an async handler worker stopping, and
// a worker pool rejecting a submission. Nothing in Claim, Publish, or a
// SequenceBarrier's WaitFor path logs, matching the teacher's convention of
// keeping logging.defaultLogger out of gnet's read/write loop.
var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
}

// SetLogger replaces the package-level logger, the way gnet's
// logging.SetDefaultLogger lets a caller swap in its own sink. Passing nil
// installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func logWorkerStopped(stop StopSignal, lastIndex int64) {
	logger.Debug("async handler worker stopped",
		zap.Int64("stop_signal", int64(stop)),
		zap.Int64("last_processed_index", lastIndex),
	)
}

func logBuildError(component string, err error) {
	logger.Error("disruptor component failed to build",
		zap.String("component", component),
		zap.Error(err),
	)
}

func logWorkerPoolRejected(err error) {
	logger.Warn("worker pool rejected async handler, falling back to a bare goroutine",
		zap.Error(err),
	)
}

// NewRotatingFileLogger builds a *zap.Logger that writes JSON-encoded
// entries to a size- and age-rotated local file, grounded on gnet's
// logging.CreateLoggerAsLocalFile. Useful for long-running processes that
// want worker lifecycle diagnostics on disk instead of stdout.
func NewRotatingFileLogger(path string, level zapcore.Level) *zap.Logger {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 2,
		MaxAge:     15, // days
	})
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller())
}

// SyncLogger flushes any buffered log entries, mirroring the flushLogs hook
// a long-running process typically calls during shutdown. Safe to call even
// if SetLogger was never called.
func SyncLogger() error {
	if logger == nil {
		return nil
	}
	return logger.Sync()
}

