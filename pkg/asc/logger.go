package asc

import (
	"slices"
	"sort"

	"github.com/go-logr/logr"
)

// LogrLogger adapts a logr.Logger to the Logger interface. Debug messages are
// emitted at V(1); everything else at V(0).
type LogrLogger struct {
	sink logr.Logger
}

// NewLogrLogger wraps a logr.Logger.
func NewLogrLogger(logger logr.Logger) *LogrLogger {
	return &LogrLogger{sink: logger}
}

func (l *LogrLogger) Debug(msg string, fields map[string]interface{}) {
	l.sink.V(1).Info(msg, keysAndValues(fields)...)
}

func (l *LogrLogger) Info(msg string, fields map[string]interface{}) {
	l.sink.Info(msg, keysAndValues(fields)...)
}

func (l *LogrLogger) Warn(msg string, fields map[string]interface{}) {
	l.sink.Info(msg, append(keysAndValues(fields), "level", "warn")...)
}

func (l *LogrLogger) Error(msg string, fields map[string]interface{}) {
	err, ok := fields["error"].(error)
	if !ok {
		l.sink.Error(nil, msg, keysAndValues(fields)...)

		return
	}

	l.sink.Error(err, msg, keysAndValues(fields, "error")...)
}

// keysAndValues flattens fields in key order so log lines are stable.
func keysAndValues(fields map[string]interface{}, skip ...string) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if !slices.Contains(skip, key) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	kv := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		kv = append(kv, key, fields[key])
	}

	return kv
}
