package logger

import "context"

// Entry carries metric fields for a single log line, e.g.
//
//	logger.With(logger.Fields{logger.FieldDurationMs: 12}).Info(ctx, "done")
type Entry struct {
	fields Fields
}

// With starts an Entry.
func With(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// WithField returns a copy of e with one more field.
func (e *Entry) WithField(key string, value interface{}) *Entry {
	merged := make(Fields, len(e.fields)+1)
	for k, v := range e.fields {
		merged[k] = v
	}
	merged[key] = value
	return &Entry{fields: merged}
}

// WithDuration adds duration_ms.
func (e *Entry) WithDuration(ms int64) *Entry {
	return e.WithField(FieldDurationMs, ms)
}

// WithCount adds count.
func (e *Entry) WithCount(n int) *Entry {
	return e.WithField(FieldCount, n)
}

// Info logs through the context logger of ctx.
func (e *Entry) Info(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Infof(format, args...)
}

// Warn logs through the context logger of ctx.
func (e *Entry) Warn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Warnf(format, args...)
}

// Error logs through the context logger of ctx.
func (e *Entry) Error(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).WithFields(e.fields).Errorf(format, args...)
}
