// Package logging builds the process logger and the per-request capture
// core whose entries are returned to callers as debugLogs.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tigagency/contracting-packet/internal/model"
)

// New constructs the process logger. Format "json" yields production
// encoding, anything else the development console encoder.
func New(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := cfg.Build()
	return logger
}

type captureSink struct {
	mu      sync.Mutex
	entries []model.LogEntry
}

// Capture is a zapcore.Core that records every entry written through it.
// One Capture is attached per generation request; its entries ride back to
// the caller in the response payload. Cores derived via With share the
// same sink.
type Capture struct {
	zapcore.LevelEnabler

	sink   *captureSink
	fields []zapcore.Field
}

// NewCapture returns a capture core recording debug and above.
func NewCapture() *Capture {
	return &Capture{
		LevelEnabler: zapcore.DebugLevel,
		sink:         &captureSink{},
	}
}

// Wrap attaches the capture core to logger, so entries are both emitted
// normally and recorded.
func (c *Capture) Wrap(logger *zap.Logger) *zap.Logger {
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, c)
	}))
}

func (c *Capture) With(fields []zapcore.Field) zapcore.Core {
	return &Capture{
		LevelEnabler: c.LevelEnabler,
		sink:         c.sink,
		fields:       append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

func (c *Capture) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *Capture) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	entry := model.LogEntry{
		Level:   ent.Level.String(),
		Message: ent.Message,
		Time:    ent.Time.UTC().Format(time.RFC3339Nano),
	}
	if len(enc.Fields) > 0 {
		entry.Fields = enc.Fields
	}

	c.sink.mu.Lock()
	c.sink.entries = append(c.sink.entries, entry)
	c.sink.mu.Unlock()
	return nil
}

func (c *Capture) Sync() error { return nil }

// Entries returns a copy of everything captured so far.
func (c *Capture) Entries() []model.LogEntry {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	out := make([]model.LogEntry, len(c.sink.entries))
	copy(out, c.sink.entries)
	return out
}
