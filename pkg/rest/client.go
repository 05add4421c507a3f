package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubkit-cli/hubkit/pkg/config"
	"github.com/hubkit-cli/hubkit/pkg/telemetry"
)

const (
	// DefaultAccept is sent when a request does not override the Accept
	// header.
	DefaultAccept = "application/vnd.github.v3+json"

	userAgent       = "hubkit"
	jsonContentType = "application/json; charset=UTF-8"
)

// Client executes API requests. It owns and exclusively constructs the
// Envelopes and RequestErrors returned to callers.
//
// Configuration values are read-only after construction; the client
// itself is safe for sequential use. Detached tasks share nothing with
// the client beyond those read-only values.
type Client struct {
	cfg     *config.Config
	http    *http.Client
	tokens  TokenProvider
	logger  *log.Logger
	display Display
}

// NewClient creates a Client with the given configuration and token
// provider. A nil logger falls back to the package default.
func NewClient(cfg *config.Config, tokens TokenProvider, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout()},
		tokens: tokens,
		logger: logger,
	}
}

// SetDisplay attaches the progress display used while detached requests
// run. A nil display leaves detached requests silent.
func (c *Client) SetDisplay(d Display) { c.display = d }

// Interactive reports whether a progress display is attached. Callers use
// it to decide whether to run requests detached by default.
func (c *Client) Interactive() bool { return c.display != nil }

// Do executes one request and returns its envelope, or a *RequestError
// describing the failure. See the package documentation for the
// execution model.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	if req.Method == "" {
		req.Method = MethodGet
	}
	url := c.resolveURL(req.Path)

	token := req.Token
	if token == "" && c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			c.logger.Debug("no access token available", "error", err)
		} else {
			token = t
		}
	}
	headers := c.buildHeaders(req, token)

	c.logger.Debug("rest request", "method", req.Method, "url", url)
	if c.cfg.LogRequestBody && len(req.Body) > 0 {
		c.logger.Debug("request body", "body", string(req.Body))
	}

	started := time.Now()
	var raw *Response
	var err error
	if req.Detached {
		task := StartTask(ctx, describe(req), string(req.Method), url, headers, req.Body, c.cfg.Timeout())
		Await(ctx, []*Task{task}, describe(req), false, c.display, c.logger)
		raw, err = task.Result()
	} else {
		raw, err = send(ctx, c.http, string(req.Method), url, headers, req.Body)
	}

	props := map[string]string{"method": string(req.Method), "url": url}
	if err != nil {
		rerr := newTransportError(err)
		c.report(rerr, props)
		return nil, rerr
	}
	if raw.StatusCode >= 400 {
		rerr := newStatusError(raw)
		c.report(rerr, props)
		return nil, rerr
	}

	telemetry.Default().RecordEvent("rest-request", props, map[string]float64{
		"duration_ms": float64(time.Since(started).Milliseconds()),
	})

	if raw.StatusCode == http.StatusAccepted {
		// The server has accepted the request but the result is not
		// ready. Only GETs are safe to reissue; a mutation must never be
		// silently repeated.
		if req.Method == MethodGet && c.cfg.RetryDelaySeconds > 0 {
			c.logger.Debug("result not ready, retrying", "delay", c.cfg.RetryDelay())
			select {
			case <-ctx.Done():
				return nil, newTransportError(ctx.Err())
			case <-time.After(c.cfg.RetryDelay()):
			}
			return c.Do(ctx, req)
		}
		c.logger.Warn("the server is still processing the request; the returned result may be incomplete",
			"method", req.Method, "url", url)
	}

	return c.envelope(raw), nil
}

// resolveURL turns a fragment into a full request URL. Absolute URLs pass
// through verbatim so pagination links can be followed directly.
func (c *Client) resolveURL(fragment string) string {
	p := NormalizePath(fragment)
	if isAbsoluteURL(p) {
		return p
	}
	return strings.TrimSuffix(c.cfg.APIBaseURL, "/") + "/" + p
}

// NormalizePath strips one leading and one trailing slash from fragment.
// It is idempotent.
func NormalizePath(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "/")
	return strings.TrimSuffix(fragment, "/")
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (c *Client) buildHeaders(req Request, token string) map[string]string {
	accept := req.Accept
	if accept == "" {
		accept = DefaultAccept
	}
	h := map[string]string{
		"Accept":     accept,
		"User-Agent": userAgent,
	}
	if token != "" {
		h["Authorization"] = "token " + token
	}
	if req.Method.HasBody() {
		h["Content-Type"] = jsonContentType
	}
	return h
}

// envelope decodes the response body and extracts header metadata. A body
// that is not JSON is kept as raw text; this is not an error.
func (c *Client) envelope(raw *Response) *Envelope {
	var payload any
	if len(raw.Body) > 0 {
		if err := json.Unmarshal(raw.Body, &payload); err != nil {
			payload = string(raw.Body)
		}
		if !c.cfg.DisableTypeCoercion {
			payload = Normalize(payload)
		}
	}

	env := &Envelope{
		Payload:      payload,
		StatusCode:   raw.StatusCode,
		RequestID:    raw.Header.Get(headerRequestID),
		ETag:         raw.Header.Get(headerETag),
		LastModified: raw.Header.Get(headerLastModified),
	}
	if link := raw.Header.Get(headerLink); link != "" {
		env.RawLink = link
		env.NextLink = nextLink(link)
	}
	env.RateLimit = intHeader(raw.Header, headerRateLimit)
	env.RateLimitRemaining = intHeader(raw.Header, headerRateLimitRemaining)
	env.RateLimitReset = int64(intHeader(raw.Header, headerRateLimitReset))
	return env
}

func intHeader(h http.Header, name string) int {
	n, _ := strconv.Atoi(h.Get(name))
	return n
}

// report records a failure to telemetry and the log before it is raised
// to the caller. Every network failure passes through here; none are
// silently swallowed.
func (c *Client) report(err *RequestError, props map[string]string) {
	telemetry.Default().RecordException(err, "rest-request-failed", props)
	c.logger.Error("request failed",
		"status", err.StatusCode, "requestId", err.RequestID, "message", err.Message)
}

func describe(req Request) string {
	if req.Description != "" {
		return req.Description
	}
	return string(req.Method) + " " + NormalizePath(req.Path)
}
