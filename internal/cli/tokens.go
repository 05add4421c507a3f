package cli

import (
	"context"

	"github.com/hubkit-cli/hubkit/pkg/rest"
	"github.com/hubkit-cli/hubkit/pkg/session"
)

// Environment variables consulted for a token, in precedence order.
var tokenEnvVars = []string{"HUBKIT_TOKEN", "GITHUB_TOKEN"}

// tokenChain builds the provider chain used by every request:
// environment variables first, then the stored login session.
func (c *CLI) tokenChain() rest.TokenProvider {
	return rest.Chain{
		rest.EnvToken(tokenEnvVars),
		&sessionTokenProvider{cli: c},
	}
}

// sessionTokenProvider reads the token stored by `hubkit auth login`.
// The store is opened lazily so unauthenticated commands never touch it.
type sessionTokenProvider struct {
	cli *CLI
}

func (p *sessionTokenProvider) Token(ctx context.Context) (string, error) {
	store, err := p.cli.sessionStore(ctx)
	if err != nil {
		return "", err
	}
	defer store.Close()

	sess, err := store.GetSession(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// sessionStore opens the configured session backend.
func (c *CLI) sessionStore(ctx context.Context) (*session.CLIStore, error) {
	var backend session.Store
	var err error
	switch c.Config.SessionBackend {
	case "redis":
		backend, err = session.NewRedisStore(ctx, session.RedisConfig{Addr: c.Config.RedisAddr})
	default:
		backend, err = session.NewFileStore("")
	}
	if err != nil {
		return nil, err
	}
	return session.NewCLIStore(backend), nil
}
