package gh

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// Service exposes the resource operations of the API. It is a thin
// parameter-shaping layer; execution, pagination, and error
// normalization happen in rest.Client.
type Service struct {
	client *rest.Client
}

// NewService creates a Service backed by client.
func NewService(client *rest.Client) *Service {
	return &Service{client: client}
}

// Client returns the underlying request client, for call sites that
// need raw access (the api command).
func (s *Service) Client() *rest.Client { return s.client }

// repoPath joins path segments under repos/<owner>/<repo>.
func repoPath(owner, repo string, parts ...string) string {
	segs := append([]string{"repos", owner, repo}, parts...)
	return strings.Join(segs, "/")
}

// withQuery appends an encoded query string to a path fragment.
func withQuery(fragment string, q url.Values) string {
	if len(q) == 0 {
		return fragment
	}
	return fragment + "?" + q.Encode()
}

// encodeBody marshals a request body struct to JSON.
func encodeBody(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding request body")
	}
	return data, nil
}

func describeResource(verb, kind, owner, repo string) string {
	return fmt.Sprintf("%s %s in %s/%s", verb, kind, owner, repo)
}
