package rest

import (
	"context"
	"errors"
	"testing"
)

type failingProvider struct{}

func (failingProvider) Token(context.Context) (string, error) {
	return "", errors.New("store unavailable")
}

func TestEnvToken(t *testing.T) {
	t.Setenv("HUBKIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "from-github-env")

	p := EnvToken{"HUBKIT_TOKEN", "GITHUB_TOKEN"}
	tok, err := p.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if tok != "from-github-env" {
		t.Errorf("token = %q, want the first non-empty variable", tok)
	}
}

func TestEnvToken_Precedence(t *testing.T) {
	t.Setenv("HUBKIT_TOKEN", "from-hubkit-env")
	t.Setenv("GITHUB_TOKEN", "from-github-env")

	p := EnvToken{"HUBKIT_TOKEN", "GITHUB_TOKEN"}
	tok, _ := p.Token(context.Background())
	if tok != "from-hubkit-env" {
		t.Errorf("token = %q, want HUBKIT_TOKEN to win", tok)
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name  string
		chain Chain
		want  string
	}{
		{
			name:  "first non-empty wins",
			chain: Chain{StaticToken(""), StaticToken("second")},
			want:  "second",
		},
		{
			name:  "errors are skipped",
			chain: Chain{failingProvider{}, StaticToken("fallback")},
			want:  "fallback",
		},
		{
			name:  "empty chain yields empty token",
			chain: Chain{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := tt.chain.Token(context.Background())
			if err != nil {
				t.Fatalf("Token() failed: %v", err)
			}
			if tok != tt.want {
				t.Errorf("token = %q, want %q", tok, tt.want)
			}
		})
	}
}
