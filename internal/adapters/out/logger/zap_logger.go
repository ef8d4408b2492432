package logger

import (
	"fmt"
	"sort"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const unknownModule = "unknown"

var _ out.LoggerPort = (*ZapLogger)(nil)

type ZapLogger struct {
	logger        *zap.Logger
	defaultFields out.LogFields
	module        string
}

// NewZapLogger строит zap-логгер: format "console" дает цветной вывод для разработки,
// иначе JSON. Время пишется в таймзоне приложения.
func NewZapLogger(level, format, timezone string) (*ZapLogger, error) {
	var zapCfg zap.Config

	switch format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
	}

	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(parsedLevel)

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	zapCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05.000"))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return NewZapLoggerFrom(logger), nil
}

// NewZapLoggerFrom оборачивает готовый *zap.Logger, например zap.NewNop() в тестах.
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger:        logger,
		defaultFields: make(out.LogFields),
	}
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ZapLogger{
		logger:        l.logger,
		defaultFields: make(out.LogFields, len(l.defaultFields)+len(fields)),
		module:        l.module,
	}

	// Копируем существующие поля
	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}

	// Добавляем новые поля
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		logger:        l.logger,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func (l *ZapLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	module := l.module
	if module == "" {
		module = unknownModule
	}

	zapFields := make([]zap.Field, 0, len(l.defaultFields)+len(fields)+1)
	zapFields = append(zapFields, zap.String("module", module))
	zapFields = append(zapFields, l.zapFields(fields)...)

	switch level {
	case out.LogLevelDebug:
		l.logger.Debug(event, zapFields...)
	case out.LogLevelInfo:
		l.logger.Info(event, zapFields...)
	case out.LogLevelWarn:
		l.logger.Warn(event, zapFields...)
	case out.LogLevelError:
		l.logger.Error(event, zapFields...)
	}
}

// zapFields объединяет поля по умолчанию с полями события, поля события важнее.
// Ключи сортируются, чтобы вывод был стабильным.
func (l *ZapLogger) zapFields(fields out.LogFields) []zap.Field {
	merged := make(out.LogFields, len(l.defaultFields)+len(fields))
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := merged[k].(error); ok {
			result = append(result, zap.NamedError(k, err))
			continue
		}
		result = append(result, zap.Any(k, merged[k]))
	}
	return result
}
