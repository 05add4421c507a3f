package gh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// IssueFilter narrows an issue listing. The zero value lists open
// issues. Milestone/NoMilestone and Assignee/NoAssignee are mutually
// exclusive pairs; combining them is a parameter error raised before
// any network call.
type IssueFilter struct {
	State       string // open, closed, all
	Labels      []string
	Assignee    string
	NoAssignee  bool
	Milestone   string // milestone number as a string
	NoMilestone bool
	Creator     string
	Mentioned   string
	Sort        string // created, updated, comments
	Direction   string // asc, desc
	Since       time.Time
	SinglePage  bool
}

func (f IssueFilter) validate() error {
	if f.Milestone != "" && f.NoMilestone {
		return errors.New(errors.ErrCodeConflictingParams,
			"a milestone filter and the no-milestone filter cannot be combined")
	}
	if f.Assignee != "" && f.NoAssignee {
		return errors.New(errors.ErrCodeConflictingParams,
			"an assignee filter and the no-assignee filter cannot be combined")
	}
	return nil
}

func (f IssueFilter) query() url.Values {
	q := url.Values{}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if len(f.Labels) > 0 {
		q.Set("labels", strings.Join(f.Labels, ","))
	}
	switch {
	case f.NoAssignee:
		q.Set("assignee", "none")
	case f.Assignee != "":
		q.Set("assignee", f.Assignee)
	}
	switch {
	case f.NoMilestone:
		q.Set("milestone", "none")
	case f.Milestone != "":
		q.Set("milestone", f.Milestone)
	}
	if f.Creator != "" {
		q.Set("creator", f.Creator)
	}
	if f.Mentioned != "" {
		q.Set("mentioned", f.Mentioned)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Direction != "" {
		q.Set("direction", f.Direction)
	}
	if !f.Since.IsZero() {
		q.Set("since", f.Since.UTC().Format(time.RFC3339))
	}
	return q
}

// ListIssues returns the issues of owner/repo matching filter, across
// all pages unless filter.SinglePage is set.
func (s *Service) ListIssues(ctx context.Context, owner, repo string, filter IssueFilter) ([]any, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	fragment := withQuery(repoPath(owner, repo, "issues"), filter.query())
	return s.client.FetchAll(ctx, fragment, describeResource("listing", "issues", owner, repo), filter.SinglePage)
}

// GetIssue returns one issue by number.
func (s *Service) GetIssue(ctx context.Context, owner, repo string, number int) (any, error) {
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues", strconv.Itoa(number)),
		Description: fmt.Sprintf("getting issue #%d from %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// NewIssue is the body of an issue creation request.
type NewIssue struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Milestone int      `json:"milestone,omitempty"`
}

// CreateIssue opens a new issue and returns the created resource.
func (s *Service) CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (any, error) {
	if issue.Title == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "an issue title is required")
	}
	body, err := encodeBody(issue)
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues"),
		Method:      rest.MethodPost,
		Body:        body,
		Description: describeResource("creating", "an issue", owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// IssueEdit carries the fields to change on an issue. Nil fields are
// left untouched.
type IssueEdit struct {
	Title     *string   `json:"title,omitempty"`
	Body      *string   `json:"body,omitempty"`
	State     *string   `json:"state,omitempty"`
	Labels    *[]string `json:"labels,omitempty"`
	Assignees *[]string `json:"assignees,omitempty"`
	Milestone *int      `json:"milestone,omitempty"`
}

// UpdateIssue applies edit to an issue and returns the updated
// resource.
func (s *Service) UpdateIssue(ctx context.Context, owner, repo string, number int, edit IssueEdit) (any, error) {
	body, err := encodeBody(edit)
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues", strconv.Itoa(number)),
		Method:      rest.MethodPatch,
		Body:        body,
		Description: fmt.Sprintf("updating issue #%d in %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// CloseIssue closes an issue by number.
func (s *Service) CloseIssue(ctx context.Context, owner, repo string, number int) (any, error) {
	closed := "closed"
	return s.UpdateIssue(ctx, owner, repo, number, IssueEdit{State: &closed})
}

// CommentOnIssue adds a comment to an issue or pull request.
func (s *Service) CommentOnIssue(ctx context.Context, owner, repo string, number int, text string) (any, error) {
	if text == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "a comment body is required")
	}
	body, err := encodeBody(map[string]string{"body": text})
	if err != nil {
		return nil, err
	}
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo, "issues", strconv.Itoa(number), "comments"),
		Method:      rest.MethodPost,
		Body:        body,
		Description: fmt.Sprintf("commenting on #%d in %s/%s", number, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}
