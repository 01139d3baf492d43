package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const LoggerKey = contextKey("logger")

// DefaultLevel keeps a successful run silent.
// DefaultLevel 使成功的运行在 stderr 上保持静默。
const DefaultLevel = zapcore.WarnLevel

var globalLogger *zap.SugaredLogger

// Init initializes the global logger based on configuration.
// Standard output carries converted records, so console logging goes to stderr.
// Init 根据配置初始化全局日志记录器。标准输出承载转换结果，因此控制台日志写入 stderr。
func Init(cfg LoggingConfig) {
	InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter is Init with an explicit console sink.
// InitWithWriter 与 Init 相同，但可指定控制台输出。
func InitWithWriter(cfg LoggingConfig, console io.Writer) {
	writeSyncer := zapcore.AddSync(console)

	if cfg.Enabled && cfg.Path != "" {
		// Create directory if not exists
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			// 如果无法创建目录，则继续输出到控制台
			globalLogger = zap.New(zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()),
				writeSyncer, zapcore.WarnLevel)).Sugar()
			globalLogger.Warnf("[WARN] Failed to create log directory: %v", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
			writeSyncer = zapcore.AddSync(rotator)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	level := ParseLevel(cfg.Level)

	core := zapcore.NewCore(encoder, writeSyncer, level)
	logger := zap.New(core, zap.AddCaller())
	globalLogger = logger.Sugar()

	globalLogger.Debugf("[LOG] Logging initialized (Level: %s, Path: %s)", level, cfg.Path)
}

// ParseLevel converts a level name, falling back to DefaultLevel.
// ParseLevel 转换日志级别名称，无法识别时回退到 DefaultLevel。
func ParseLevel(name string) zapcore.Level {
	if name == "" {
		return DefaultLevel
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return DefaultLevel
	}
	return level
}

// Sync flushes any buffered log entries.
// Sync 刷新所有缓存的日志条目。
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Get returns the logger from context or global logger
// Get 从 Context 或全局日志记录器返回 Logger。
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok {
			return logger
		}
	}
	if globalLogger == nil {
		// Fallback to a stderr logger at the default level if not initialized
		return zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr), DefaultLevel)).Sugar()
	}
	return globalLogger
}

// WithContext adds logger to context
// WithContext 将 Logger 添加到 Context。
func WithContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}
