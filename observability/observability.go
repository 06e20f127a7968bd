// Package observability defines the logging hooks the composition and
// stamping pipelines report progress through. The default is a nop so the
// library stays silent unless a front-end injects a logger.
package observability

import (
	"fmt"
	"io"
	"sync"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field    { return stringField{key, value} }
func Int(key string, value int) Field   { return intField{key, value} }
func Error(key string, err error) Field { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// NewTextLogger returns a Logger writing one line per event to w, in
// "LEVEL msg key=value ..." form. Safe for concurrent use.
func NewTextLogger(w io.Writer) Logger {
	return &textLogger{w: w, mu: &sync.Mutex{}}
}

type textLogger struct {
	w     io.Writer
	mu    *sync.Mutex
	bound []Field
}

func (l *textLogger) Debug(msg string, fields ...Field) { l.emit("DEBUG", msg, fields) }
func (l *textLogger) Info(msg string, fields ...Field)  { l.emit("INFO", msg, fields) }
func (l *textLogger) Warn(msg string, fields ...Field)  { l.emit("WARN", msg, fields) }
func (l *textLogger) Error(msg string, fields ...Field) { l.emit("ERROR", msg, fields) }

func (l *textLogger) With(fields ...Field) Logger {
	bound := append(append([]Field(nil), l.bound...), fields...)
	return &textLogger{w: l.w, mu: l.mu, bound: bound}
}

func (l *textLogger) emit(level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s", level, msg)
	for _, f := range l.bound {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.w)
}
