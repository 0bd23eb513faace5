package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger provides leveled logging throughout the application.
// It keeps a printf-style API on top of logrus.
type Logger struct {
	base *logrus.Logger
}

// NewLogger creates a Logger writing to stdout at the level named by LOG_LEVEL.
func NewLogger() *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	l := &Logger{base: log}
	l.SetLevel(os.Getenv("LOG_LEVEL"))
	return l
}

// SetLevel accepts DEBUG, INFO, WARN or ERROR (case-insensitive); anything
// else selects INFO.
func (l *Logger) SetLevel(level string) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		l.base.SetLevel(logrus.DebugLevel)
	case "WARN", "WARNING":
		l.base.SetLevel(logrus.WarnLevel)
	case "ERROR":
		l.base.SetLevel(logrus.ErrorLevel)
	default:
		l.base.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects every level to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// ToFile appends log output to path. The returned closer releases the file.
func (l *Logger) ToFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	l.base.SetOutput(f)
	return f, nil
}

// Logrus exposes the underlying logger, mainly for hooks in tests.
func (l *Logger) Logrus() *logrus.Logger {
	return l.base
}

func (l *Logger) Info(format string, args ...any) {
	l.base.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.base.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.base.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.base.Debugf(format, args...)
}
