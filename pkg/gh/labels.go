package gh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// ListLabels returns every label defined in owner/repo.
func (s *Service) ListLabels(ctx context.Context, owner, repo string, singlePage bool) ([]any, error) {
	return s.client.FetchAll(ctx, repoPath(owner, repo, "labels"),
		describeResource("listing", "labels", owner, repo), singlePage)
}

// NewLabel is the body of a label creation request. Color is a hex
// code without the leading #.
type NewLabel struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateLabel defines a new label in owner/repo.
func (s *Service) CreateLabel(ctx context.Context, owner, repo string, label NewLabel) (any, error) {
	if label.Name == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "a label name is required")
	}
	label.Color = strings.TrimPrefix(label.Color, "#")
	body, err := encodeBody(label)
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "labels"),
		Method:      rest.MethodPost,
		Body:        body,
		Description: describeResource("creating", "a label", owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// DeleteLabel removes a label definition from owner/repo.
func (s *Service) DeleteLabel(ctx context.Context, owner, repo, name string) error {
	_, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "labels", url.PathEscape(name)),
		Method:      rest.MethodDelete,
		Description: fmt.Sprintf("deleting label %q in %s/%s", name, owner, repo),
	})
	return err
}

// AddIssueLabels attaches labels to an issue, keeping existing ones.
func (s *Service) AddIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) (any, error) {
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeMissingValue, "at least one label is required")
	}
	body, err := encodeBody(map[string][]string{"labels": labels})
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues", strconv.Itoa(number), "labels"),
		Method:      rest.MethodPost,
		Body:        body,
		Description: fmt.Sprintf("labeling issue #%d in %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// RemoveIssueLabel detaches one label from an issue.
func (s *Service) RemoveIssueLabel(ctx context.Context, owner, repo string, number int, name string) error {
	_, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues", strconv.Itoa(number), "labels", url.PathEscape(name)),
		Method:      rest.MethodDelete,
		Description: fmt.Sprintf("unlabeling issue #%d in %s/%s", number, owner, repo),
	})
	return err
}
