package marketplace_api_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"joytop-admin-service/internal/contextkeys"

	"github.com/hashicorp/go-retryablehttp"
)

// Config - параметры подключения к REST API маркетплейса.
type Config struct {
	BaseURL   string // Например, "https://api.joytop.uz"
	APIPrefix string // Например, "/api/website/v1"

	// DefaultLang уходит в заголовке lang, если в контексте запроса язык не выбран.
	DefaultLang string

	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client - общий HTTP-клиент для всех ресурсов маркетплейса.
type Client struct {
	baseURL     string
	defaultLang string
	httpClient  *http.Client
	metrics     *Metrics
}

// NewClient создает клиента. metrics может быть nil.
func NewClient(cfg Config, metrics *Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("marketplace api client: base url is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("marketplace api client: invalid base url %q: %w", cfg.BaseURL, err)
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if prefix := strings.Trim(cfg.APIPrefix, "/"); prefix != "" {
		base += "/" + prefix
	}

	return &Client{
		baseURL:     base,
		defaultLang: cfg.DefaultLang,
		httpClient:  buildHTTPClient(cfg),
		metrics:     metrics,
	}, nil
}

// buildHTTPClient собирает http.Client с повторами на 429/5xx.
func buildHTTPClient(cfg Config) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	// отдаем последний ответ как есть, чтобы вызывающий увидел статус и тело ошибки
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.CheckRetry = idempotentRetryPolicy
	rc.Logger = nil

	httpClient := rc.StandardClient()
	httpClient.Timeout = cfg.Timeout
	return httpClient
}

type methodKeyType struct{}

var methodKey = methodKeyType{}

// idempotentRetryPolicy повторяет только GET, PUT и DELETE. POST и PATCH
// могли уже примениться на бэкенде, поэтому их результат отдается как есть.
func idempotentRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	method, _ := ctx.Value(methodKey).(string)
	if resp != nil && resp.Request != nil {
		method = resp.Request.Method
	}

	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

func (c *Client) resourceURL(resource string) string {
	return c.baseURL + "/" + strings.Trim(resource, "/") + "/"
}

func (c *Client) entityURL(resource string, id int64) string {
	return fmt.Sprintf("%s%d/", c.resourceURL(resource), id)
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, resource, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(context.WithValue(ctx, methodKey, method), method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	lang := contextkeys.LangFromContext(ctx)
	if lang == "" {
		lang = c.defaultLang
	}
	if lang != "" {
		req.Header.Set("lang", lang)
	}

	// сессия администратора (cookie) пробрасывается как есть
	for _, cookie := range contextkeys.SessionCookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(resource, method, 0, time.Since(startTime))
		return nil, err
	}
	c.metrics.observe(resource, method, resp.StatusCode, time.Since(startTime))
	return resp, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
