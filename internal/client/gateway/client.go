package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/dmitrijs2005/dessertai/internal/client/metrics"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// TokenFunc returns the bearer token to attach, or "" for none.
type TokenFunc func(ctx context.Context) string

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	// Logger receives retryablehttp's request logs. Nil silences them.
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Token   TokenFunc
}

type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	metrics *metrics.Metrics
	token   TokenFunc
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", opts.BaseURL)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if opts.Logger != nil {
		rc.Logger = opts.Logger
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	return &Client{
		baseURL: base,
		http:    rc,
		metrics: opts.Metrics,
		token:   opts.Token,
	}, nil
}

// endpoint names a call for metrics and carries its fallback message.
type endpoint struct {
	name     string
	fallback string
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, ep endpoint, cl call) error {
	start := time.Now()
	err := c.roundTrip(ctx, ep, cl)
	c.metrics.ObserveRequest(ep.name, outcomeOf(err), time.Since(start))
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case isAPIError(err):
		return metrics.OutcomeAPIError
	default:
		return metrics.OutcomeUnavailable
	}
}

func (c *Client) roundTrip(ctx context.Context, ep endpoint, cl call) error {
	u := c.baseURL.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body any
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", ep.name, err)
		}
		body = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", ep.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if resp == nil {
		if err == nil {
			err = errors.New("no response")
		}
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, ep.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", ErrUnavailable, ep.name, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, data, ep.fallback)
	}

	if cl.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: ep.fallback, Fallback: true, Err: err}
	}
	return nil
}

func isAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func userIDInt(id models.ID) (int64, error) {
	n, err := id.Int()
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidUserID, id)
	}
	return n, nil
}
