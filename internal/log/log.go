// Package log is the structured logging facade used across the service.
//
// Call sites pass a message followed by alternating key/value pairs:
//
//	log.Info("Datacenter created", "id", dc.ID, "name", dc.Name)
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, "info", "console")
)

func newLogger(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Configure replaces the global logger. level is one of trace, debug, info,
// warn, error; format is console or json.
func Configure(level, format string) {
	SetOutput(os.Stderr, level, format)
}

// SetOutput is Configure with an explicit writer.
func SetOutput(out io.Writer, level, format string) {
	l := newLogger(out, level, format)
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger exposes the underlying logrus logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Trace(msg string, keyvals ...any) { entry(keyvals).Trace(msg) }
func Debug(msg string, keyvals ...any) { entry(keyvals).Debug(msg) }
func Info(msg string, keyvals ...any)  { entry(keyvals).Info(msg) }
func Warn(msg string, keyvals ...any)  { entry(keyvals).Warn(msg) }
func Error(msg string, keyvals ...any) { entry(keyvals).Error(msg) }

func entry(keyvals []any) *logrus.Entry {
	return Logger().WithFields(fields(keyvals))
}

func fields(keyvals []any) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2+1)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 >= len(keyvals) {
			f["!BADKEY"] = keyvals[i]
			break
		}
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if err, ok := keyvals[i+1].(error); ok {
			f[key] = err.Error()
			continue
		}
		f[key] = keyvals[i+1]
	}
	return f
}
