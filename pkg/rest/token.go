package rest

import (
	"context"
	"os"
)

// TokenProvider supplies the bearer token attached to API requests.
// An empty token with a nil error means "no token available"; requests
// then go out unauthenticated (lower rate limits).
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token string.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// EnvToken reads the first non-empty value among the named environment
// variables.
type EnvToken []string

func (t EnvToken) Token(context.Context) (string, error) {
	for _, name := range t {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Chain tries each provider in order and returns the first non-empty
// token. Provider errors are skipped, not propagated; a fully empty chain
// yields an empty token.
type Chain []TokenProvider

func (c Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		tok, err := p.Token(ctx)
		if err != nil {
			continue
		}
		if tok != "" {
			return tok, nil
		}
	}
	return "", nil
}
