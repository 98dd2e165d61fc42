// Package logger is the process-wide logging facade. Call sites use the
// printf-style helpers; the backend is a logrus logger that can be pointed
// at a file with InitLog.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	std     = newDefault()
	logFile *os.File
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return l
}

// InitLog redirects log output to the file at path, creating parent
// directories as needed. An empty path keeps the current output.
func InitLog(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %q: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	std.SetOutput(f)
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// FlushLog syncs and closes the log file opened by InitLog, if any, and
// restores stderr output.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	_ = logFile.Sync()
	_ = logFile.Close()
	logFile = nil
	std.SetOutput(os.Stderr)
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetLevel parses and applies a level name ("debug", "info", "warn", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetVerbosity maps a -v count onto a level: 0 keeps warn, 1 is info,
// 2 and above is debug.
func SetVerbosity(n int) {
	switch {
	case n >= 2:
		std.SetLevel(logrus.DebugLevel)
	case n == 1:
		std.SetLevel(logrus.InfoLevel)
	}
}

// Level returns the current level name.
func Level() string {
	return std.GetLevel().String()
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }

func Info(format string, args ...interface{}) { std.Infof(format, args...) }

func Warn(format string, args ...interface{}) { std.Warnf(format, args...) }

func Error(format string, args ...interface{}) { std.Errorf(format, args...) }

// WithField returns an entry carrying a single structured field.
func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}
