package logger_adapter

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"joytop-admin-service/internal/core/port"
)

// fluentPoster - часть *fluent.Fluent, которая нужна адаптеру
type fluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

// FluentLoggerAdapter отправляет записи в Fluent Bit, тег = уровень записи.
type FluentLoggerAdapter struct {
	client     fluentPoster
	fields     port.Fields
	minLevel   slog.Level
	postErrors *atomic.Int64
}

func NewFluentLoggerAdapter(client fluentPoster, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentLoggerAdapter{
		client:     client,
		fields:     make(port.Fields),
		minLevel:   level,
		postErrors: &atomic.Int64{},
	}, nil
}

func (a *FluentLoggerAdapter) mergeFields(fields port.Fields) port.Fields {
	merged := make(port.Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentLoggerAdapter) post(level slog.Level, tag, msg string, fields port.Fields, err error) {
	if level < a.minLevel {
		return
	}

	data := a.mergeFields(fields)
	if err != nil {
		data["error"] = err.Error()
	}
	data["level"] = tag
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	// Потерянная запись не должна ронять запрос: только считаем
	if postErr := a.client.Post(tag, map[string]interface{}(data)); postErr != nil {
		a.postErrors.Add(1)
	}
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, "info", msg, fields, nil)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, "warn", msg, fields, nil)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	a.post(slog.LevelError, "error", msg, fields, err)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, "debug", msg, fields, nil)
}

// WithFields создает новый логгер с расширенным контекстом
func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:     a.client,
		fields:     a.mergeFields(fields),
		minLevel:   a.minLevel,
		postErrors: a.postErrors,
	}
}

// PostErrors - сколько записей не удалось отправить
func (a *FluentLoggerAdapter) PostErrors() int64 {
	return a.postErrors.Load()
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
