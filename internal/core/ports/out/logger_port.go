package out

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogFields are attached to an event; keys are camelCase, values must be JSON friendly.
type LogFields map[string]interface{}

// LoggerPort writes structured events named like "slots.availability.done".
// WithModule and WithFields return derived loggers and never mutate the receiver.
type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
	// Sync flushes buffered entries before shutdown.
	Sync() error
}
