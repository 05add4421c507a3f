package gh

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hubkit-cli/hubkit/pkg/config"
	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.APIBaseURL = baseURL
	cfg.WebTimeoutSeconds = 5
	cfg.RetryDelaySeconds = 0
	return NewService(rest.NewClient(cfg, rest.StaticToken("t"), log.New(io.Discard)))
}

func TestListIssues_QueryShaping(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	s := newTestService(t, server.URL)
	_, err := s.ListIssues(context.Background(), "golang", "go", IssueFilter{
		State:       "closed",
		Labels:      []string{"bug", "help wanted"},
		NoMilestone: true,
		Assignee:    "gopher",
	})
	if err != nil {
		t.Fatalf("ListIssues() failed: %v", err)
	}

	if gotPath != "/repos/golang/go/issues" {
		t.Errorf("path = %q", gotPath)
	}
	q, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("bad query %q: %v", gotQuery, err)
	}
	if q.Get("state") != "closed" || q.Get("labels") != "bug,help wanted" {
		t.Errorf("query = %q", gotQuery)
	}
	if q.Get("milestone") != "none" {
		t.Errorf("milestone = %q, want none", q.Get("milestone"))
	}
	if q.Get("assignee") != "gopher" {
		t.Errorf("assignee = %q", q.Get("assignee"))
	}
}

func TestListIssues_ConflictingFilters(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	s := newTestService(t, server.URL)

	_, err := s.ListIssues(context.Background(), "a", "b", IssueFilter{Milestone: "3", NoMilestone: true})
	if !errors.Is(err, errors.ErrCodeConflictingParams) {
		t.Errorf("error = %v, want CONFLICTING_PARAMETERS", err)
	}
	_, err = s.ListIssues(context.Background(), "a", "b", IssueFilter{Assignee: "x", NoAssignee: true})
	if !errors.Is(err, errors.ErrCodeConflictingParams) {
		t.Errorf("error = %v, want CONFLICTING_PARAMETERS", err)
	}
	if calls.Load() != 0 {
		t.Errorf("parameter errors must be raised before any network call; saw %d requests", calls.Load())
	}
}

func TestCreateIssue(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 7, "title": "crash on start"}`))
	}))
	defer server.Close()

	s := newTestService(t, server.URL)
	created, err := s.CreateIssue(context.Background(), "a", "b", NewIssue{
		Title:  "crash on start",
		Body:   "details",
		Labels: []string{"bug"},
	})
	if err != nil {
		t.Fatalf("CreateIssue() failed: %v", err)
	}

	if gotMethod != "POST" {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotBody["title"] != "crash on start" {
		t.Errorf("body title = %v", gotBody["title"])
	}
	if _, sent := gotBody["milestone"]; sent {
		t.Error("zero milestone must be omitted from the body")
	}
	if created.(map[string]any)["number"] != float64(7) {
		t.Errorf("created = %v", created)
	}
}

func TestCreateIssue_RequiresTitle(t *testing.T) {
	s := newTestService(t, "http://unused.invalid")
	_, err := s.CreateIssue(context.Background(), "a", "b", NewIssue{})
	if !errors.Is(err, errors.ErrCodeMissingValue) {
		t.Errorf("error = %v, want MISSING_REQUIRED_VALUE", err)
	}
}

func TestCloseIssue(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"number": 7, "state": "closed"}`))
	}))
	defer server.Close()

	s := newTestService(t, server.URL)
	if _, err := s.CloseIssue(context.Background(), "a", "b", 7); err != nil {
		t.Fatalf("CloseIssue() failed: %v", err)
	}

	if gotMethod != "PATCH" || gotPath != "/repos/a/b/issues/7" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["state"] != "closed" {
		t.Errorf("body = %v", gotBody)
	}
	if title, sent := gotBody["title"]; sent {
		t.Errorf("nil edit fields must be omitted, got title=%v", title)
	}
}

func TestMergePullRequest_RejectsUnknownMethod(t *testing.T) {
	s := newTestService(t, "http://unused.invalid")
	_, err := s.MergePullRequest(context.Background(), "a", "b", 1, "fast-forward", "")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
