package session

import (
	"context"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	sess, err := New("tok", "gopher", 0)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if sess.AccessToken != "tok" || sess.Login != "gopher" {
		t.Errorf("session = %+v", sess)
	}
	if !sess.ExpiresAt.IsZero() {
		t.Error("zero ttl must create a non-expiring session")
	}
	if sess.IsExpired() {
		t.Error("non-expiring session reported expired")
	}

	if _, err := New("", "gopher", 0); err == nil {
		t.Error("New() with an empty token must fail")
	}
}

func TestSession_IsExpired(t *testing.T) {
	sess, err := New("tok", "", time.Millisecond)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if !sess.IsExpired() {
		t.Error("expired session reported live")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	ctx := context.Background()

	sess, _ := New("tok", "gopher", 0)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil || got.AccessToken != "tok" || got.Login != "gopher" {
		t.Errorf("Get() = %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get() after delete = %+v, want nil", got)
	}
}

func TestFileStore_MissingIsNil(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	got, err := store.Get(context.Background(), "never-stored")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for a missing session", got)
	}
}

func TestFileStore_ExpiredDropped(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	ctx := context.Background()

	sess, _ := New("tok", "", time.Millisecond)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for an expired session", got)
	}
}

func TestCLIStore(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	cli := NewCLIStore(fs)
	ctx := context.Background()

	sess, _ := New("tok", "gopher", 0)
	if err := cli.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	got, err := cli.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if got == nil || got.AccessToken != "tok" {
		t.Errorf("GetSession() = %+v", got)
	}

	if err := cli.DeleteSession(ctx); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	got, _ = cli.GetSession(ctx)
	if got != nil {
		t.Errorf("GetSession() after logout = %+v, want nil", got)
	}
}
