package marketplace_api_client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
)

const statisticsResource = "statistics"

// GetStatistics читает агрегированную статистику (сырой объект или {"status", "data"}).
func (c *Client) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "GetStatistics",
	})

	resp, err := c.doRequest(ctx, statisticsResource, http.MethodGet, c.resourceURL(statisticsResource), nil, "")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace api", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		reqErr := readRequestError(resp)
		clientLogger.Error("Received error response from marketplace api", reqErr, port.Fields{"status_code": resp.StatusCode})
		return nil, reqErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics response: %w", err)
	}

	stats, err := decodeEntity[domain.Statistics](body)
	if err != nil {
		clientLogger.Error("Failed to decode statistics", err, nil)
		return nil, err
	}
	return &stats, nil
}
