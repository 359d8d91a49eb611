// Package gateway is the single HTTP client every storefront component uses to
// reach the glow REST proxy. One attempt per call, no retry.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Options はクエリとJSONボディ（どちらも任意）
type Options struct {
	Query url.Values
	Body  any
}

type Gateway struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    client,
	}
}

// Do sends one request and returns the raw "data" member of the response
// envelope. A missing "data" member is returned as JSON null.
func (g *Gateway) Do(ctx context.Context, method, path string, opts Options) (json.RawMessage, error) {
	target := g.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &TransportError{Message: requestFailure(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if gjson.ValidBytes(raw) {
			if e := gjson.GetBytes(raw, "error"); e.Exists() && e.String() != "" {
				msg = e.String()
			}
		}
		return nil, &TransportError{Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, &TransportError{Status: resp.StatusCode, Message: "invalid JSON response"}
	}

	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data.Raw), nil
}

func (g *Gateway) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodGet, path, Options{Query: query})
}

func (g *Gateway) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodPost, path, Options{Body: body})
}

func (g *Gateway) Delete(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodDelete, path, Options{Query: query})
}

func requestFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "request failed"
}
