package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// repoCommand creates the repo command with subcommands.
func (c *CLI) repoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Work with repositories",
	}

	cmd.AddCommand(c.repoViewCommand())
	cmd.AddCommand(c.repoListCommand())

	return cmd
}

func (c *CLI) repoViewCommand() *cobra.Command {
	var rf repoFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			r, err := c.newService().GetRepo(cmd.Context(), owner, repo)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(r)
			}

			fmt.Println(StyleTitle.Render(stringField(r, "full_name")))
			if desc := stringField(r, "description"); desc != "" {
				printDetail(desc)
			}
			printKeyValue("Stars", fmt.Sprintf("%d", numberField(r, "stargazers_count")))
			printKeyValue("Forks", fmt.Sprintf("%d", numberField(r, "forks_count")))
			printKeyValue("Issues", fmt.Sprintf("%d open", numberField(r, "open_issues_count")))
			if lang := stringField(r, "language"); lang != "" {
				printKeyValue("Language", lang)
			}
			if t := timeField(r, "pushed_at"); !t.IsZero() {
				printKeyValue("Pushed", relativeTime(t))
			}
			if url := stringField(r, "html_url"); url != "" {
				printKeyValue("Link", StyleLink.Render(url))
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource as JSON")
	return cmd
}

func (c *CLI) repoListCommand() *cobra.Command {
	var owner string
	var asJSON, singlePage bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories of a user, or your own",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := c.newService().ListRepos(cmd.Context(), owner, singlePage)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(repos)
			}

			for _, r := range repos {
				name := stringField(r, "full_name")
				desc := stringField(r, "description")
				fmt.Printf("%-40s %s\n", StyleValue.Render(name), StyleDim.Render(desc))
			}
			printDetail("%d repositories", len(repos))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "list repositories of this user instead of your own")
	cmd.Flags().BoolVar(&singlePage, "single-page", false, "fetch only the first page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource list as JSON")
	return cmd
}
