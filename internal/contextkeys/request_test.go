package contextkeys

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestValues(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, TraceIDFromContext(ctx))
	require.Empty(t, LangFromContext(ctx))
	require.Nil(t, SessionCookiesFromContext(ctx))
	require.NotNil(t, LoggerFromContext(ctx))

	ctx = ContextWithTraceID(ctx, "trace-1")
	ctx = ContextWithLang(ctx, "ru")
	ctx = ContextWithSessionCookies(ctx, []*http.Cookie{{Name: "sessionid", Value: "abc"}})

	require.Equal(t, "trace-1", TraceIDFromContext(ctx))
	require.Equal(t, "ru", LangFromContext(ctx))
	require.Len(t, SessionCookiesFromContext(ctx), 1)
}
