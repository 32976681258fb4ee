package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sanidhya49/binsavvy-cli/config"
	"github.com/rs/zerolog/log"
)

// Client talks to the BinSavvy REST API. It is a plain pass-through: no
// retries, no backoff, and no Authorization header — the demo backend accepts
// unauthenticated calls, and consumers that need freshness check the session
// themselves before issuing requests. Changing either behavior changes the
// error-handling contract downstream, so don't.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

// New creates a Client from configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
	}
}

// APIError is a non-2xx response, with a preview of the body for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s. Body: %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// url joins the configured base URL with an endpoint path.
func (c *Client) url(path string) string {
	return c.cfg.BaseURL + path
}

// newJSONRequest creates a request carrying a JSON body. A nil body sends an
// empty request with no content type.
func (c *Client) newJSONRequest(ctx context.Context, method, urlStr string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", urlStr).Msg("Failed to create HTTP request object")
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// sendRequest sends an HTTP request and checks its status. Multipart requests
// pass through with whatever content type the multipart writer already set.
func (c *Client) sendRequest(req *http.Request) (*http.Response, error) {
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("Sending HTTP request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		bodyStr := ""
		if readErr == nil {
			bodyStr = string(bodyBytes)
		}
		resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: bodyStr}
		log.Error().Str("method", req.Method).Str("url", req.URL.String()).
			Int("status", resp.StatusCode).Str("body", bodyStr).Msg("HTTP request returned non-OK status")
		return nil, apiErr
	}
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return resp, nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", resp.Request.URL.String()).Msg("Failed to read response body")
		return nil, err
	}
	return body, nil
}

// doJSON performs a request and unmarshals the JSON response into out.
// A nil out discards the body.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newJSONRequest(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	raw, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(raw[:min(len(raw), 200)])).Msg("Failed to parse response JSON")
		return err
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
