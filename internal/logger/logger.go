package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	Logger *logrus.Logger // Main logger instance
)

// Options controls where and how verbosely the application logs.
type Options struct {
	Level  string    // DEBUG, INFO, WARN or ERROR
	File   string    // takes precedence over Output
	Output io.Writer // nil means stdout
}

// Initialize sets up the logger with proper configuration
func Initialize(opts Options) {
	l := logrus.New()
	level := ParseLevel(opts.Level)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   opts.File != "",
	})

	output := io.Writer(os.Stdout)
	if opts.Output != nil {
		output = opts.Output
	}
	if opts.File != "" {
		logFile, err := openLogFile(opts.File)
		if err != nil {
			fmt.Printf("Failed to open log file, logging to stdout: %v\n", err)
		} else {
			output = logFile
			l.SetReportCaller(true)
		}
	}
	l.SetOutput(output)

	Logger = l

	Logger.WithFields(logrus.Fields{
		"log_level": level.String(),
		"log_file":  opts.File,
	}).Info("Logging system initialized")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// ParseLevel maps LOG_LEVEL values onto logrus levels, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "WARN":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// GetLogger returns the configured main logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Initialize(Options{Level: os.Getenv("LOG_LEVEL")})
	}
	return Logger
}

// WithContext creates a logger with additional context fields
func WithContext(fields map[string]interface{}) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithParse creates a logger for one engine run. Input text is never logged,
// only its size.
func WithParse(mode string, inputBytes int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"mode":        mode,
		"input_bytes": inputBytes,
		"component":   "parser_service",
	})
}

// WithSession creates a logger with session context
func WithSession(sessionID string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"session_id": sessionID,
		"component":  "session_store",
	})
}

// WithError creates a logger with error context
func WithError(err error, component string) *logrus.Entry {
	fields := logrus.Fields{
		"error":     err.Error(),
		"component": component,
	}

	// Add stack trace for debug level
	if GetLogger().GetLevel() >= logrus.DebugLevel {
		fields["stack_trace"] = getStackTrace()
	}

	return GetLogger().WithFields(fields)
}

// getStackTrace returns a formatted stack trace
func getStackTrace() string {
	var stack []string
	for i := 1; i < 10; i++ {
		if pc, file, line, ok := runtime.Caller(i); ok {
			fn := runtime.FuncForPC(pc)
			stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		}
	}
	return strings.Join(stack, "\n")
}

// fieldsEntry accepts nil fields so call sites can log without context.
func fieldsEntry(fields map[string]interface{}) *logrus.Entry {
	if fields == nil {
		return logrus.NewEntry(GetLogger())
	}
	return GetLogger().WithFields(fields)
}

func Debug(msg string, fields map[string]interface{}) { fieldsEntry(fields).Debug(msg) }
func Info(msg string, fields map[string]interface{})  { fieldsEntry(fields).Info(msg) }
func Warn(msg string, fields map[string]interface{})  { fieldsEntry(fields).Warn(msg) }
func Error(msg string, fields map[string]interface{}) { fieldsEntry(fields).Error(msg) }
func Fatal(msg string, fields map[string]interface{}) { fieldsEntry(fields).Fatal(msg) }
