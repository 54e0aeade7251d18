package rabbitmq_common

// Logger - логгер пакетов rabbitmq в стиле key/value, чтобы не тянуть сюда
// порт логгера сервиса. Адаптер живет в internal/adapters/logger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

// OrNoop возвращает logger или пустой логгер, если logger == nil.
func OrNoop(logger Logger) Logger {
	if logger == nil {
		return discardLogger{}
	}
	return logger
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{})        {}
func (discardLogger) Info(string, ...interface{})         {}
func (discardLogger) Warn(string, ...interface{})         {}
func (discardLogger) Error(error, string, ...interface{}) {}
