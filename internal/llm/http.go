package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
)

// APIError is a non-2xx provider response.
type APIError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// transport posts JSON payloads and decodes JSON responses. Transport errors and
// 5xx responses are retried up to maxRetries times with exponential backoff;
// 4xx responses and undecodable bodies are permanent.
type transport struct {
	provider   Provider
	httpClient *http.Client
	maxRetries int
}

func newTransport(p Provider, opts ClientOptions) transport {
	hc := opts.HTTPClient
	switch {
	case hc != nil:
	case opts.Timeout > 0:
		hc = &http.Client{Timeout: opts.Timeout}
	default:
		hc = http.DefaultClient
	}
	return transport{provider: p, httpClient: hc, maxRetries: opts.MaxRetries}
}

func (t transport) postJSON(ctx context.Context, url string, headers map[string]string, payload, target any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := t.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= 500 {
			return &APIError{Provider: t.provider, StatusCode: resp.StatusCode, Body: string(body)}
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(&APIError{Provider: t.provider, StatusCode: resp.StatusCode, Body: string(body)})
		}
		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s response: %w", t.provider, err))
		}
		return nil
	}

	var b backoff.BackOff = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(t.maxRetries))
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}
