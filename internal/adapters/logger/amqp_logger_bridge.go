package logger_adapter

import (
	"fmt"

	"joytop-admin-service/internal/core/port"
	"joytop-admin-service/pkg/rabbitmq/rabbitmq_common"
)

// AmqpLoggerBridge позволяет pkg/rabbitmq писать в общий логгер сервиса.
type AmqpLoggerBridge struct {
	logger port.LoggerPort
}

var _ rabbitmq_common.Logger = (*AmqpLoggerBridge)(nil)

func NewAmqpLoggerBridge(logger port.LoggerPort) *AmqpLoggerBridge {
	return &AmqpLoggerBridge{logger: logger.WithFields(port.Fields{"component": "rabbitmq"})}
}

// keysAndValuesToFields: пары ключ-значение в port.Fields, непарный хвост уходит в "extra"
func keysAndValuesToFields(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 == 1 {
		fields["extra"] = keysAndValues[len(keysAndValues)-1]
	}
	return fields
}

func (b *AmqpLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, keysAndValuesToFields(keysAndValues))
}

func (b *AmqpLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, keysAndValuesToFields(keysAndValues))
}

func (b *AmqpLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, keysAndValuesToFields(keysAndValues))
}

func (b *AmqpLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, keysAndValuesToFields(keysAndValues))
}
