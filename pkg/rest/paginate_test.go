package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// pagedServer serves a 3-page result set joined by rel="next" links.
func pagedServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/items?page=2>; rel="next", <%s/items?page=3>; rel="last"`, server.URL, server.URL))
			w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
		case "2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/items?page=1>; rel="prev", <%s/items?page=3>; rel="next"`, server.URL, server.URL))
			w.Write([]byte(`[{"id": 3}]`))
		case "3":
			w.Write([]byte(`[{"id": 4}, {"id": 5}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	return server
}

func TestFetchAll_FollowsNextLinks(t *testing.T) {
	var calls atomic.Int32
	server := pagedServer(t, &calls)
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.FetchAll(context.Background(), "items", "listing items", false)
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if calls.Load() != 3 {
		t.Errorf("requests = %d, want 3", calls.Load())
	}
	if len(results) != 5 {
		t.Fatalf("results = %d items, want 5", len(results))
	}
	// Server-provided order is preserved across pages.
	for i, want := range []float64{1, 2, 3, 4, 5} {
		obj := results[i].(map[string]any)
		if obj["id"] != want {
			t.Errorf("results[%d].id = %v, want %v", i, obj["id"], want)
		}
	}
}

func TestFetchAll_SinglePage(t *testing.T) {
	var calls atomic.Int32
	server := pagedServer(t, &calls)
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.FetchAll(context.Background(), "items", "listing items", true)
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("requests = %d, want 1", calls.Load())
	}
	if len(results) != 2 {
		t.Errorf("results = %d items, want first page only (2)", len(results))
	}
}

func TestFetchAll_ScalarPayloadWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 42}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.FetchAll(context.Background(), "stats", "stats", false)
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want the single object wrapped in a slice", len(results))
	}
}

func TestFetchAll_PropagatesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/items?page=2>; rel="next"`, r.Host))
		w.Write([]byte(`[{"id": 1}]`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	_, err := c.FetchAll(context.Background(), "items", "listing items", false)
	if err == nil {
		t.Fatal("FetchAll() should propagate mid-pagination errors")
	}
}
