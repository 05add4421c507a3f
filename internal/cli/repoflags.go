package cli

import (
	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/gh"
)

// repoFlags carries the repository-addressing flags shared by resource
// commands. A URI is mutually exclusive with explicit names; unset
// values default from configuration.
type repoFlags struct {
	uri   string
	owner string
	repo  string
}

func addRepoFlags(cmd *cobra.Command, f *repoFlags) {
	cmd.Flags().StringVar(&f.uri, "uri", "", "repository URL (e.g. https://github.com/owner/repo)")
	cmd.Flags().StringVar(&f.owner, "owner", "", "repository owner")
	cmd.Flags().StringVarP(&f.repo, "repo", "R", "", "repository name")
}

func (c *CLI) resolveRepo(f repoFlags) (owner, repo string, err error) {
	return c.newResolver().Resolve(gh.RepoParams{URI: f.uri, Owner: f.owner, Repo: f.repo})
}
