package logger

import (
	"context"
	"os"
	"path/filepath"

	"evcms/internal/reqctx"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

// Init builds the global logger. In dev mode (LOG=dev) it uses zap's
// development config; otherwise it tees a JSON file core (rotated by
// lumberjack) with a console core.
func Init(logMode, logLevel string) {
	level := parseLevel(logLevel)

	if logMode == "dev" {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(level)
		logger, _ := devCfg.Build()
		Log = logger
		return
	}

	logDir := "logs"
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("could not create log directory: " + err.Error())
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "message",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	})

	console := zapcore.Lock(os.Stdout)

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), console, level),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// WithCtx returns the global logger annotated with request-scoped fields.
func WithCtx(ctx context.Context) *zap.Logger {
	log := Log
	if log == nil {
		log = zap.NewNop()
	}
	if rid, ok := reqctx.GetRequestID(ctx); ok {
		log = log.With(zap.String("request_id", rid))
	}
	if role, ok := reqctx.GetRole(ctx); ok {
		log = log.With(zap.String("role", role))
	}
	return log
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
