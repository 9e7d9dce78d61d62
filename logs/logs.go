package logs

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logging state
var (
	logger  *zap.SugaredLogger
	mu      sync.RWMutex
	Options = struct {
		Verbose     bool
		AppName     string
		Version     string
		Environment string
	}{
		AppName: "dialogen",
	}

	initOnce sync.Once
)

// Logger returns the global zap.SugaredLogger instance.
// If it's nil, InitLogger is called automatically.
func Logger() *zap.SugaredLogger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	InitLogger(os.Getenv("ENV"))
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Use replaces the global logger. Passing nil restores lazy initialization.
func Use(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	if l == nil {
		initOnce = sync.Once{}
	}
}

// InitLogger configures the global logger based on environment & LOG_FMT overrides.
// 'development' or 'dev' defaults to console logs, anything else to JSON.
// LOG_FMT can be 'json', 'formatted', or 'text'.
func InitLogger(env string) {
	initOnce.Do(func() {
		if env == "" || strings.EqualFold(env, "production") {
			env = "production"
		} else if strings.EqualFold(env, "dev") || strings.EqualFold(env, "development") {
			env = "development"
		}
		Options.Environment = env

		format := os.Getenv("LOG_FMT")
		if format == "" {
			if env == "development" {
				format = "text"
			} else {
				format = "json"
			}
		}

		var cfg zap.Config
		if format == "text" {
			cfg = zap.NewDevelopmentConfig()
			cfg.Encoding = "console"
		} else {
			cfg = zap.NewProductionConfig()
			cfg.Encoding = "json"
			if format == "formatted" {
				cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
				cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
				cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
			}
		}

		// stdout carries the generated dialogue in test runs
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		if Options.Verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}

		log, err := build(cfg)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fallback := zap.NewExample().Sugar()
			fallback.Errorf("Failed to initialize logger: %v", err)
			logger = fallback
			return
		}
		logger = log.Sugar()
	})
}

// build adds the process fields and skips the wrapper frame so entries
// report the caller of Infof and friends.
func build(cfg zap.Config) (*zap.Logger, error) {
	return cfg.Build(
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("app", Options.AppName),
			zap.String("version", Options.Version),
			zap.String("env", Options.Environment),
		),
	)
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}

// Warn uses fmt.Sprint to construct and log a message.
func Warn(args ...any) {
	if args == nil {
		return
	}
	Logger().Warn(args...)
}

// Debugf uses fmt.Sprintf to construct and log a message.
// Only logs if Options.Verbose is true.
func Debugf(format string, args ...any) {
	if Options.Verbose {
		Logger().Debugf(format, args...)
	}
}

// Infof uses fmt.Sprintf to construct and log a message.
func Infof(format string, args ...any) {
	Logger().Infof(format, args...)
}

// Warnf uses fmt.Sprintf to construct and log a message.
func Warnf(format string, args ...any) {
	Logger().Warnf(format, args...)
}

// Errorf uses fmt.Sprintf to construct and log a message.
func Errorf(format string, args ...any) {
	Logger().Errorf(format, args...)
}
