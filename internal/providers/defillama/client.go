package defillama

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/yield-ingester/internal/adapter"
	"github.com/feral-file/yield-ingester/internal/domain"
	"github.com/feral-file/yield-ingester/internal/logger"
)

// Client defines the interface for DefiLlama feed operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/defillama_client.go -package=mocks -mock_names=Client=MockDefiLlamaClient
type Client interface {
	// FetchPools fetches the yield pools feed. Non-object elements are dropped.
	FetchPools(ctx context.Context) ([]PoolRecord, error)
	// FetchProtocols fetches the protocol metadata feed. Non-object elements are dropped.
	FetchProtocols(ctx context.Context) ([]ProtocolRecord, error)
}

// DefiLlamaClient implements Client over HTTP
type DefiLlamaClient struct {
	httpClient   adapter.HTTPClient
	poolsURL     string
	protocolsURL string
}

// NewClient creates a new DefiLlama feed client
func NewClient(httpClient adapter.HTTPClient, poolsURL, protocolsURL string) Client {
	return &DefiLlamaClient{
		httpClient:   httpClient,
		poolsURL:     poolsURL,
		protocolsURL: protocolsURL,
	}
}

// FetchPools fetches the pools feed, an object carrying a `data` list
func (c *DefiLlamaClient) FetchPools(ctx context.Context) ([]PoolRecord, error) {
	logger.InfoCtx(ctx, "Fetching pools feed", zap.String("url", c.poolsURL))

	var payload interface{}
	if err := c.httpClient.Get(ctx, c.poolsURL, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch pools feed: %w", err)
	}

	obj, ok := payload.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: pools feed is not an object", domain.ErrUnexpectedPayload)
	}
	data, ok := obj["data"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing 'data' list", domain.ErrUnexpectedPayload)
	}

	records := make([]PoolRecord, 0, len(data))
	for i, item := range data {
		rec, ok := item.(map[string]interface{})
		if !ok {
			logger.WarnCtx(ctx, "Skipping malformed pool entry",
				zap.Int("index", i),
				zap.String("reason", string(domain.SkipReasonMalformed)),
			)
			continue
		}
		records = append(records, PoolRecord{Record: rec})
	}

	logger.InfoCtx(ctx, "Fetched pool records", zap.Int("count", len(records)))
	return records, nil
}

// FetchProtocols fetches the protocols feed, a top-level list
func (c *DefiLlamaClient) FetchProtocols(ctx context.Context) ([]ProtocolRecord, error) {
	logger.InfoCtx(ctx, "Fetching protocols feed", zap.String("url", c.protocolsURL))

	var payload interface{}
	if err := c.httpClient.Get(ctx, c.protocolsURL, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch protocols feed: %w", err)
	}

	data, ok := payload.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: protocols feed is not a list", domain.ErrUnexpectedPayload)
	}

	records := make([]ProtocolRecord, 0, len(data))
	for i, item := range data {
		rec, ok := item.(map[string]interface{})
		if !ok {
			logger.WarnCtx(ctx, "Skipping malformed protocol entry",
				zap.Int("index", i),
				zap.String("reason", string(domain.SkipReasonMalformed)),
			)
			continue
		}
		records = append(records, ProtocolRecord{Record: rec})
	}

	logger.InfoCtx(ctx, "Fetched protocol records", zap.Int("count", len(records)))
	return records, nil
}
