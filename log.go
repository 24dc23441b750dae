package redis

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewRotatingLogger builds a zap.Logger that writes JSON-encoded entries to
// path, rotated via lumberjack once it exceeds maxSizeMB. Pass the result to
// WithLogger. A nil *lumberjack.Logger field is never constructed here: the
// rotation policy is always explicit so operators aren't surprised by an
// unbounded log file.
func NewRotatingLogger(path string, maxSizeMB, maxBackups, maxAgeDays int) *zap.Logger {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), zapcore.InfoLevel)
	return zap.New(core)
}
