package logzap

import (
	"fmt"

	"github.com/aatuh/ulid-toolkit/ports"
	"go.uber.org/zap"
)

// ZapLogger adapts zap to the ports.Logger interface.
type ZapLogger struct{ s *zap.SugaredLogger }

func New(z *zap.Logger) ports.Logger { return &ZapLogger{s: z.Sugar()} }

// NewWithLevel creates a JSON production logger at the given level
// ("debug", "info", "warn", "error").
func NewWithLevel(level string) (*ZapLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logzap: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logzap: build logger: %w", err)
	}
	return New(z).(*ZapLogger), nil
}

// NewNop discards everything.
func NewNop() ports.Logger { return New(zap.NewNop()) }

func (l *ZapLogger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l *ZapLogger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l *ZapLogger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
func (l *ZapLogger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.s.Sync() }
