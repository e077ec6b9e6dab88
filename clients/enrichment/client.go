package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/core"
)

const maxPayloadBytes = 1 << 20

// EnrichmentClient implements the clients.EnrichmentClient interface over plain HTTP
type EnrichmentClient struct {
	httpClient *http.Client
	timeout    time.Duration
	// apiKeys maps provider name to its access key, only for providers that need one
	apiKeys map[string]string
}

// NewEnrichmentClient creates a client that bounds every provider call by timeout
func NewEnrichmentClient(httpClient *http.Client, timeout time.Duration, apiKeys map[string]string) clients.EnrichmentClient {
	keys := make(map[string]string, len(apiKeys))
	for provider, key := range apiKeys {
		if key != "" {
			keys[provider] = key
		}
	}
	return &EnrichmentClient{
		httpClient: httpClient,
		timeout:    timeout,
		apiKeys:    keys,
	}
}

// HasAPIKey reports whether a key-gated provider is usable
func (c *EnrichmentClient) HasAPIKey(provider string) bool {
	_, ok := c.apiKeys[provider]
	return ok
}

// Fetch issues one request to the named provider and normalizes the outcome
func (c *EnrichmentClient) Fetch(ctx context.Context, providerName string, query string) mo.Result[clients.Payload] {
	p, ok := providers[providerName]
	if !ok {
		return mo.Err[clients.Payload](&core.FetchError{
			Provider: providerName,
			Err:      fmt.Errorf("unknown provider"),
		})
	}

	apiKey := c.apiKeys[providerName]
	if p.requiresKey && apiKey == "" {
		return mo.Err[clients.Payload](&core.FetchError{
			Provider: providerName,
			Err:      fmt.Errorf("missing API key"),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestURL := p.buildURL(providerEndpoints[providerName], query, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return mo.Err[clients.Payload](&core.FetchError{
			Provider: providerName,
			Err:      fmt.Errorf("failed to create request: %w", err),
		})
	}
	req.Header.Set("Accept", p.accept)
	req.Header.Set("User-Agent", "selfbot/2.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ Enrichment request to %s failed: %v", providerName, err)
		return mo.Err[clients.Payload](&core.FetchError{
			Provider: providerName,
			Err:      fmt.Errorf("failed to execute request: %w", err),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return mo.Err[clients.Payload](&core.FetchError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("⚠️ Enrichment provider %s returned status %d", providerName, resp.StatusCode)
		return mo.Err[clients.Payload](&core.FetchError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		})
	}

	payload := clients.NewPayload(providerName, body)
	if p.format == formatJSON && !payload.IsJSON() {
		log.Printf("⚠️ Enrichment provider %s returned a non-JSON body", providerName)
		return mo.Err[clients.Payload](&core.FetchError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        core.ErrUnexpectedPayload,
		})
	}
	if p.format == formatText && payload.Text() == "" {
		return mo.Err[clients.Payload](&core.FetchError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        core.ErrUnexpectedPayload,
		})
	}

	log.Printf("📋 Completed successfully - fetched %s in %v", providerName, time.Since(start).Round(time.Millisecond))
	return mo.Ok(payload)
}
