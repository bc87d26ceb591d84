package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger emits JSON lines through a zap SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a JSON logger writing to w at the given minimum level.
func NewZapLogger(level Level, w io.Writer) *ZapLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zapLevel(level),
	)
	return &ZapLogger{sugar: zap.New(core).Sugar()}
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infof(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnf(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorf(msg, args...) }
func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugf(msg, args...) }

// Sync flushes buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
