// Package logging adapts logrus to the domain Logger interface.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a logrus logger
type Logger struct {
	entry *log.Entry
}

// New creates a logger writing text lines with full timestamps to out.
// Unknown levels fall back to info.
func New(out io.Writer, level string) *Logger {
	base := log.New()
	base.SetOutput(out)
	base.SetFormatter(&log.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		DisableLevelTruncation: true,
	})
	base.SetLevel(ParseLevel(level))

	return &Logger{entry: log.NewEntry(base)}
}

// ParseLevel maps a level name such as "DEBUG" or "warning" to a logrus level
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Level returns the active level
func (l *Logger) Level() log.Level {
	return l.entry.Logger.GetLevel()
}

// With returns a logger that always carries fields
func (l *Logger) With(fields ...interfaces.Field) *Logger {
	return &Logger{entry: l.entry.WithFields(toLogrus(fields))}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.entry.WithFields(toLogrus(fields)).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.entry.WithFields(toLogrus(fields)).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.entry.WithFields(toLogrus(fields)).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.entry.WithFields(toLogrus(fields)).Error(msg)
}

func toLogrus(fields []interfaces.Field) log.Fields {
	out := make(log.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
