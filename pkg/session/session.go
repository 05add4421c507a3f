// Package session stores authentication sessions for the CLI.
//
// A session holds the bearer token presented to the API, plus the login
// it belongs to. Two backends exist:
//   - file: JSON files under the user config directory, the default for
//     a single-machine CLI
//   - redis: shared storage for fleets of automation runners that must
//     present the same credentials
//
// Sessions optionally expire; a zero ExpiresAt never does, which is the
// normal case for personal access tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/hubkit-cli/hubkit/pkg/errors"
)

// Session stores one authenticated identity.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	Login       string    `json:"login,omitempty"`
	Host        string    `json:"host,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExpired reports whether the session has passed its expiry. A zero
// ExpiresAt never expires.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns nil, nil when the session
	// does not exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Close releases backend resources.
	Close() error
}

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "generating session id")
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a session holding token for login. A zero ttl means the
// session never expires.
func New(token, login string, ttl time.Duration) (*Session, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeMissingValue, "an access token is required")
	}
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:          id,
		AccessToken: token,
		Login:       login,
		CreatedAt:   now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s, nil
}
