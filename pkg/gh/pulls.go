package gh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// PullFilter narrows a pull request listing. The zero value lists open
// pull requests.
type PullFilter struct {
	State      string // open, closed, all
	Head       string // user:ref-name
	Base       string // base branch name
	Sort       string // created, updated, popularity, long-running
	Direction  string // asc, desc
	SinglePage bool
}

func (f PullFilter) query() url.Values {
	q := url.Values{}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if f.Head != "" {
		q.Set("head", f.Head)
	}
	if f.Base != "" {
		q.Set("base", f.Base)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Direction != "" {
		q.Set("direction", f.Direction)
	}
	return q
}

// ListPullRequests returns the pull requests of owner/repo matching
// filter.
func (s *Service) ListPullRequests(ctx context.Context, owner, repo string, filter PullFilter) ([]any, error) {
	fragment := withQuery(repoPath(owner, repo, "pulls"), filter.query())
	return s.client.FetchAll(ctx, fragment, describeResource("listing", "pull requests", owner, repo), filter.SinglePage)
}

// GetPullRequest returns one pull request by number.
func (s *Service) GetPullRequest(ctx context.Context, owner, repo string, number int) (any, error) {
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "pulls", strconv.Itoa(number)),
		Description: fmt.Sprintf("getting pull request #%d from %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// NewPullRequest is the body of a pull request creation request.
type NewPullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body,omitempty"`
	Draft bool   `json:"draft,omitempty"`
}

// CreatePullRequest opens a pull request from Head into Base.
func (s *Service) CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (any, error) {
	if pr.Title == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "a pull request title is required")
	}
	if pr.Head == "" || pr.Base == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "both a head and a base branch are required")
	}
	body, err := encodeBody(pr)
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "pulls"),
		Method:      rest.MethodPost,
		Body:        body,
		Description: describeResource("creating", "a pull request", owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// Merge methods accepted by MergePullRequest.
const (
	MergeMethodMerge  = "merge"
	MergeMethodSquash = "squash"
	MergeMethodRebase = "rebase"
)

// MergePullRequest merges a pull request using the given method.
func (s *Service) MergePullRequest(ctx context.Context, owner, repo string, number int, method, commitTitle string) (any, error) {
	switch method {
	case "", MergeMethodMerge, MergeMethodSquash, MergeMethodRebase:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown merge method %q: use merge, squash, or rebase", method)
	}

	payload := map[string]string{}
	if method != "" {
		payload["merge_method"] = method
	}
	if commitTitle != "" {
		payload["commit_title"] = commitTitle
	}
	body, err := encodeBody(payload)
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "pulls", strconv.Itoa(number), "merge"),
		Method:      rest.MethodPut,
		Body:        body,
		Description: fmt.Sprintf("merging pull request #%d in %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// ClosePullRequest closes a pull request without merging it.
func (s *Service) ClosePullRequest(ctx context.Context, owner, repo string, number int) (any, error) {
	body, err := encodeBody(map[string]string{"state": "closed"})
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "pulls", strconv.Itoa(number)),
		Method:      rest.MethodPatch,
		Body:        body,
		Description: fmt.Sprintf("closing pull request #%d in %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}
