// Package rest implements the REST invocation engine behind every hubkit
// command.
//
// # Overview
//
// The engine issues authenticated HTTP requests against the configured API
// base, normalizes responses, and maps failures into a uniform error shape:
//
//   - [Client.Do]: execute one request, inline or on a detached task
//   - [Client.FetchAll]: follow Link rel="next" headers across pages
//   - [Normalize]: deep-copy payloads, promoting date strings to time.Time
//   - [Await]: progress animation while detached tasks run
//
// # Execution model
//
// Requests normally run inline on the calling goroutine. When a request is
// marked detached it runs on its own [Task] with a fresh HTTP client, and
// the caller blocks in [Await], which renders a rotating glyph and elapsed
// seconds to an interactive terminal. Non-interactive hosts render nothing.
//
// # Errors
//
// Transport failures and non-2xx statuses both surface as [*RequestError],
// whose Error() string is a multi-line, directly displayable message
// combining the status line, the API's structured error detail, the raw
// body, and the request id.
//
// A 202 response to a GET means the server has not finished preparing the
// result; the engine sleeps for the configured retry delay and reissues
// the identical request. Mutating methods are never retried on 202.
package rest
