package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// authHint is appended to 404 failures. The API reports private resources
// a token cannot see as 404 rather than 403, so "not found" commonly means
// "not authorized".
const authHint = "This typically happens when the resource is private or does not exist. " +
	"Verify that you are authenticated (hubkit auth status) and that your token " +
	"has the scopes required to access this resource."

// RequestError is the uniform error raised for any transport- or
// application-level request failure, whether the request ran inline or on
// a detached task. Its Error() string is multi-line and intended for
// direct console or log display.
type RequestError struct {
	Message      string // short description of what failed
	StatusCode   int    // HTTP status, 0 for connection-level failures
	StatusText   string // standard status description
	InnerMessage string // structured API error detail, or raw body text
	RequestID    string // server-assigned request id, when known
	RawContent   string // unmodified response body
}

// Error returns the composed multi-line message.
func (e *RequestError) Error() string {
	lines := []string{e.Message}
	if e.StatusCode != 0 {
		lines = append(lines, fmt.Sprintf("%d | %s", e.StatusCode, e.StatusText))
	}
	if e.InnerMessage != "" && e.InnerMessage != e.RawContent {
		lines = append(lines, e.InnerMessage)
	}
	if e.RawContent != "" {
		lines = append(lines, e.RawContent)
	}
	if e.StatusCode == http.StatusNotFound {
		lines = append(lines, authHint)
	}
	if e.RequestID != "" {
		lines = append(lines, "RequestId: "+e.RequestID)
	}
	return strings.Join(lines, "\n")
}

// newStatusError builds a RequestError from a non-2xx response.
func newStatusError(raw *Response) *RequestError {
	e := &RequestError{
		Message:    "the remote server rejected the request",
		StatusCode: raw.StatusCode,
		StatusText: http.StatusText(raw.StatusCode),
		RequestID:  raw.Header.Get(headerRequestID),
		RawContent: strings.TrimSpace(string(raw.Body)),
	}
	e.InnerMessage = innerDetail(e.RawContent)
	return e
}

// newTransportError builds a RequestError for a failure with no HTTP
// response (connection refused, timeout, cancelled context).
func newTransportError(err error) *RequestError {
	return &RequestError{Message: "unable to complete the request: " + err.Error()}
}

// innerDetail extracts the API's structured error description when the
// body has the documented {message, documentation_url, errors} shape.
// Any other body is returned as-is.
func innerDetail(body string) string {
	if body == "" {
		return ""
	}
	var decoded struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
		Errors           []struct {
			Message  string `json:"message"`
			Resource string `json:"resource"`
			Field    string `json:"field"`
			Code     string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil || decoded.Message == "" {
		return body
	}

	lines := []string{decoded.Message}
	for _, item := range decoded.Errors {
		if item.Message != "" {
			lines = append(lines, item.Message)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s.%s: %s", item.Resource, item.Field, item.Code))
	}
	if decoded.DocumentationURL != "" {
		lines = append(lines, decoded.DocumentationURL)
	}
	return strings.Join(lines, "\n")
}
