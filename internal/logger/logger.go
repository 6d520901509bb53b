package logger

// Logger is the structured logging facade used across the viewer.
// Engine packages depend on this interface, never on zap directly.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err wraps an error as a Field under the conventional "error" key.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
