package contextkeys

import (
	"context"
	"net/http"
)

// Значения одного запроса администратора, которые уходят дальше в API маркетплейса.
type (
	traceIDKeyType struct{}
	langKeyType    struct{}
	cookiesKeyType struct{}
)

var (
	traceIDKey = traceIDKeyType{}
	langKey    = langKeyType{}
	cookiesKey = cookiesKeyType{}
)

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает trace_id или "".
func TraceIDFromContext(ctx context.Context) string {
	return stringValue(ctx, traceIDKey)
}

// ContextWithLang помещает выбранный язык ответа ("uz", "ru", "en")
func ContextWithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey, lang)
}

// LangFromContext возвращает язык или ""
func LangFromContext(ctx context.Context) string {
	return stringValue(ctx, langKey)
}

// ContextWithSessionCookies сохраняет cookies администратора, которые нужно
// пробросить в API маркетплейса.
func ContextWithSessionCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey, cookies)
}

func SessionCookiesFromContext(ctx context.Context) []*http.Cookie {
	if cookies, ok := ctx.Value(cookiesKey).([]*http.Cookie); ok {
		return cookies
	}
	return nil
}

func stringValue(ctx context.Context, key any) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
