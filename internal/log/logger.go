package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Logger wraps a logrus logger with the formatting used across the app.
type Logger struct {
	out *logrus.Logger
}

func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{out: l}
}

func SetDebug(debug bool) {
	if debug {
		logger.out.SetLevel(logrus.DebugLevel)
	} else {
		logger.out.SetLevel(logrus.InfoLevel)
	}
}

func Info(format string, args ...interface{}) {
	logger.out.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	logger.out.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.out.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	logger.out.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.out.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	logger.out.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.out.Warnf(format, args...)
}
