// Package logger is the process-wide leveled logger. Messages are written as
// JSON lines to a rotated file; before Init every call is a no-op.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the log file and its rotation.
type Options struct {
	Path       string
	Level      string // debug, info, warn, error
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	sugar   *zap.SugaredLogger
	rotator *lumberjack.Logger
	level   = zap.NewAtomicLevelAt(zap.DebugLevel)
	mu      sync.Mutex
)

// Init initializes the global logger with the specified log file path.
func Init(logPath string) error {
	return InitWithOptions(Options{Path: logPath})
}

// InitWithOptions initializes the global logger. A previous log file is closed.
func InitWithOptions(opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("failed to create log file: empty path")
	}
	if err := SetLevel(opts.Level); err != nil {
		return err
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 20
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	// lumberjack opens lazily; write nothing but surface permission errors now.
	if _, err := w.Write(nil); err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	rotator = w
	sugar = zap.New(core).Sugar()
	return nil
}

// SetLevel changes the minimum level. An empty string keeps the current one.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.SetLevel(l)
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if sugar != nil {
		_ = sugar.Sync()
		sugar = nil
	}
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return sugar
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, v...)
	}
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Debugf(format, v...)
	}
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, v...)
	}
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	if l := current(); l != nil {
		l.Warnf(format, v...)
	}
}
