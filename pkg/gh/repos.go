package gh

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// GetRepo returns the repository resource for owner/repo.
func (s *Service) GetRepo(ctx context.Context, owner, repo string) (any, error) {
	env, err := s.client.Do(ctx, rest.Request{
		Path:        repoPath(owner, repo),
		Description: fmt.Sprintf("getting repository %s/%s", owner, repo),
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// ListRepos returns the repositories visible to the authenticated
// user, or those of owner when non-empty.
func (s *Service) ListRepos(ctx context.Context, owner string, singlePage bool) ([]any, error) {
	fragment := "user/repos"
	description := "listing your repositories"
	if owner != "" {
		fragment = "users/" + url.PathEscape(owner) + "/repos"
		description = "listing repositories of " + owner
	}
	return s.client.FetchAll(ctx, fragment, description, singlePage)
}

// CurrentUser returns the authenticated user resource.
func (s *Service) CurrentUser(ctx context.Context) (any, error) {
	env, err := s.client.Do(ctx, rest.Request{
		Path:        "user",
		Description: "getting the authenticated user",
	})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}
