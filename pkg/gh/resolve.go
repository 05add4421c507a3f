package gh

import (
	"regexp"

	"github.com/hubkit-cli/hubkit/pkg/config"
	"github.com/hubkit-cli/hubkit/pkg/errors"
)

// repoURIPattern extracts the first two path segments of a repository
// web URL: owner, then an optional repository name. Deeper segments
// (issue numbers, file paths) are ignored.
var repoURIPattern = regexp.MustCompile(`^https?://(?:www\.)?[^/]+/([^/]+)(?:/([^/?#]+))?`)

// RepoParams are the caller-supplied inputs a command can name a
// repository with. URI is mutually exclusive with Owner and Repo.
type RepoParams struct {
	URI   string
	Owner string
	Repo  string
}

// Resolver derives the (owner, repo) pair a command operates on,
// falling back to configured defaults when explicit parameters are
// absent.
type Resolver struct {
	defaultOwner string
	defaultRepo  string
}

// NewResolver creates a Resolver defaulting from cfg.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		defaultOwner: cfg.DefaultOwner,
		defaultRepo:  cfg.DefaultRepo,
	}
}

// Resolve returns the owner and repository named by p, requiring both
// to be present and well formed. It never performs network calls.
func (r *Resolver) Resolve(p RepoParams) (owner, repo string, err error) {
	return r.resolve(p, true)
}

// ResolveLenient is Resolve without completeness checks. Call sites
// that tolerate partial resolution (optional filters) use it; either
// returned value may be empty.
func (r *Resolver) ResolveLenient(p RepoParams) (owner, repo string) {
	owner, repo, _ = r.resolve(p, false)
	return owner, repo
}

func (r *Resolver) resolve(p RepoParams, validate bool) (string, string, error) {
	if p.URI != "" && (p.Owner != "" || p.Repo != "") {
		return "", "", errors.New(errors.ErrCodeConflictingParams,
			"a repository URI and explicit owner/repository parameters cannot be combined")
	}

	if p.URI != "" {
		m := repoURIPattern.FindStringSubmatch(p.URI)
		if m == nil {
			if validate {
				return "", "", errors.New(errors.ErrCodeInvalidURI, "not a repository URI: %s", p.URI)
			}
			return "", "", nil
		}
		owner, repo := m[1], m[2]
		if validate && repo == "" {
			return "", "", errors.New(errors.ErrCodeInvalidURI,
				"repository URI %s names no repository", p.URI)
		}
		return owner, repo, nil
	}

	owner, repo := p.Owner, p.Repo
	if owner == "" {
		owner = r.defaultOwner
	}
	if repo == "" {
		repo = r.defaultRepo
	}
	if validate {
		if err := ValidateOwner(owner); err != nil {
			return "", "", err
		}
		if err := ValidateRepo(repo); err != nil {
			return "", "", err
		}
	}
	return owner, repo, nil
}
