package rest

import "net/http"

// Method is the HTTP method of a request.
type Method string

// Supported HTTP methods.
const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPatch  Method = http.MethodPatch
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// HasBody reports whether the method carries a request body.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPatch, MethodPut, MethodDelete:
		return true
	}
	return false
}

// Request describes one API invocation.
type Request struct {
	// Path is a URI fragment relative to the configured API base
	// (leading and trailing slashes are stripped), or a fully-qualified
	// URL, which is used verbatim. Pagination next-links arrive as full
	// URLs and flow through here unchanged.
	Path string

	// Method defaults to GET when empty.
	Method Method

	// Body is the UTF-8 encoded JSON body. Only meaningful for
	// body-carrying methods.
	Body []byte

	// Accept overrides the default Accept header.
	Accept string

	// Token overrides the client's token provider for this request.
	Token string

	// Detached runs the request on its own task with progress feedback
	// instead of blocking the calling goroutine directly.
	Detached bool

	// Description labels the request in progress output and logs.
	Description string
}

// Response is the raw transport-level result of one HTTP exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope is the normalized result of a request: the decoded payload plus
// the pagination and rate-limit metadata extracted from response headers.
type Envelope struct {
	// Payload is the normalized value decoded from the response body: an
	// object graph (map[string]any), an array ([]any), a scalar, or the
	// raw body text when the body is not JSON. Nil for empty bodies.
	Payload any

	StatusCode int
	RequestID  string

	// NextLink is the absolute URL of the next result page, extracted
	// from the Link header entry tagged rel="next". Empty on the last
	// page. RawLink preserves the unparsed header value.
	NextLink string
	RawLink  string

	ETag         string
	LastModified string

	RateLimit          int
	RateLimitRemaining int
	RateLimitReset     int64
}

// Response header names consumed by the engine.
const (
	headerLink               = "Link"
	headerETag               = "ETag"
	headerLastModified       = "Last-Modified"
	headerRateLimit          = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRequestID          = "X-GitHub-Request-Id"
)
