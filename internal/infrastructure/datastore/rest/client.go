package rest

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/forces-league/internal/platform/logging"
	"github.com/riskibarqy/forces-league/internal/platform/resilience"
	"github.com/riskibarqy/forces-league/internal/usecase"
)

const (
	restPathPrefix  = "/rest/v1/"
	maxResponseSize = 4 << 20

	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"
)

var errDataStoreTransient = crerr.New("data store transient failure")

var bodyJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// StoreError carries the data store's own error payload so callers can surface it verbatim.
type StoreError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *StoreError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Code != "" {
		return fmt.Sprintf("data store status=%d code=%s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("data store status=%d: %s", e.Status, msg)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a hosted table store exposing a PostgREST style API. Requests are never
// retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL, err := validateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid DATASTORE_URL")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, crerr.New("data store api key is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
		breaker:    resilience.NewFromConfig(cfg.CircuitBreaker),
	}, nil
}

type request struct {
	method string
	table  string
	query  url.Values
	body   any
	prefer string
}

// do sends one request and decodes a successful response into target when target is non-nil.
func (c *Client) do(ctx context.Context, req request, target any) error {
	err := c.breaker.Do(func() error {
		return c.execute(ctx, req, target)
	}, isCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "data store circuit breaker rejected request", "table", req.table, "state", c.breaker.State())
		return fmt.Errorf("%w: data store is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return err
}

func (c *Client) execute(ctx context.Context, req request, target any) error {
	fullURL := c.baseURL + restPathPrefix + req.table
	if encoded := encodeQuery(req.query); encoded != "" {
		fullURL += "?" + encoded
	}

	var body io.Reader
	if req.body != nil {
		raw, err := bodyJSON.Marshal(req.body)
		if err != nil {
			return crerr.Wrapf(err, "marshal %s request body", req.table)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return crerr.Wrap(err, "build data store request")
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.prefer != "" {
		httpReq.Header.Set("Prefer", req.prefer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.WarnContext(ctx, "data store request failed", "method", req.method, "table", req.table, "error", err)
		return fmt.Errorf("%w: send %s %s: %s", errDataStoreTransient, req.method, req.table, sanitize(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseSize)); err != nil {
		return fmt.Errorf("%w: read %s response: %v", errDataStoreTransient, req.table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		storeErr := decodeStoreError(resp.StatusCode, buf.B)
		c.logger.WarnContext(ctx, "data store returned error",
			"method", req.method,
			"table", req.table,
			"status_code", resp.StatusCode,
			"code", storeErr.Code,
			"error", storeErr.Message,
		)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return crerr.Mark(storeErr, errDataStoreTransient)
		}
		return storeErr
	}

	if target == nil || buf.Len() == 0 {
		return nil
	}
	if err := sonic.Unmarshal(buf.B, target); err != nil {
		return crerr.Wrapf(err, "decode %s response", req.table)
	}
	return nil
}

func decodeStoreError(status int, raw []byte) *StoreError {
	out := &StoreError{Status: status}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return out
	}
	if err := sonic.Unmarshal(trimmed, out); err != nil || out.Message == "" {
		out.Message = abbreviate(string(trimmed), 512)
	}
	out.Status = status
	return out
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errDataStoreTransient)
}

// isInvalidID reports the store rejecting a malformed uuid literal in a filter.
func isInvalidID(err error) bool {
	var storeErr *StoreError
	if stderrors.As(err, &storeErr) {
		return storeErr.Code == "22P02"
	}
	return false
}

func validateBaseURL(raw string) (string, error) {
	candidate := strings.TrimRight(strings.TrimSpace(raw), "/")
	if candidate == "" {
		return "", crerr.New("base url is required")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return candidate, nil
}

// encodeQuery keeps the filter operators readable; PostgREST accepts them unescaped.
func encodeQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	encoded := values.Encode()
	replacer := strings.NewReplacer("%28", "(", "%29", ")", "%2C", ",", "%22", "\"", "%2A", "*")
	return replacer.Replace(encoded)
}

func sanitize(value, secret string) string {
	if secret == "" {
		return value
	}
	return strings.ReplaceAll(value, secret, "***")
}

func abbreviate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
