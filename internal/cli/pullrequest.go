package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/gh"
)

// prCommand creates the pr command with subcommands.
func (c *CLI) prCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Work with pull requests",
	}

	cmd.AddCommand(c.prListCommand())
	cmd.AddCommand(c.prViewCommand())
	cmd.AddCommand(c.prCreateCommand())
	cmd.AddCommand(c.prMergeCommand())
	cmd.AddCommand(c.prCloseCommand())

	return cmd
}

func (c *CLI) prListCommand() *cobra.Command {
	var rf repoFlags
	var filter gh.PullFilter
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests in a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			prs, err := c.newService().ListPullRequests(cmd.Context(), owner, repo, filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(prs)
			}

			if len(prs) == 0 {
				printInfo("No pull requests match in %s/%s", owner, repo)
				return nil
			}
			for _, pr := range prs {
				printPullLine(pr)
			}
			printDetail("%d pull requests", len(prs))
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVar(&filter.State, "state", "open", "filter by state (open, closed, all)")
	cmd.Flags().StringVar(&filter.Head, "head", "", "filter by head ref (user:branch)")
	cmd.Flags().StringVar(&filter.Base, "base", "", "filter by base branch")
	cmd.Flags().StringVar(&filter.Sort, "sort", "", "sort order (created, updated, popularity, long-running)")
	cmd.Flags().BoolVar(&filter.SinglePage, "single-page", false, "fetch only the first page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource list as JSON")

	return cmd
}

func (c *CLI) prViewCommand() *cobra.Command {
	var rf repoFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view <number>",
		Short: "Show one pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			pr, err := c.newService().GetPullRequest(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(pr)
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("#%d %s", numberField(pr, "number"), stringField(pr, "title"))))
			printKeyValue("State", stringField(pr, "state"))
			if head, ok := nestedField(pr, "head", "ref").(string); ok {
				base, _ := nestedField(pr, "base", "ref").(string)
				printKeyValue("Branches", fmt.Sprintf("%s → %s", head, base))
			}
			if login, ok := nestedField(pr, "user", "login").(string); ok && login != "" {
				printKeyValue("Author", "@"+login)
			}
			if t := timeField(pr, "created_at"); !t.IsZero() {
				printKeyValue("Opened", t.Format("Jan 2, 2006"))
			}
			if url := stringField(pr, "html_url"); url != "" {
				printKeyValue("Link", StyleLink.Render(url))
			}
			if body := stringField(pr, "body"); body != "" {
				fmt.Println()
				fmt.Println(body)
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource as JSON")
	return cmd
}

func (c *CLI) prCreateCommand() *cobra.Command {
	var rf repoFlags
	var pr gh.NewPullRequest
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			created, err := c.newService().CreatePullRequest(cmd.Context(), owner, repo, pr)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(created)
			}
			printSuccess("Created pull request #%d", numberField(created, "number"))
			if url := stringField(created, "html_url"); url != "" {
				printDetail(url)
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&pr.Title, "title", "t", "", "pull request title (required)")
	cmd.Flags().StringVarP(&pr.Body, "body", "b", "", "pull request body")
	cmd.Flags().StringVar(&pr.Head, "head", "", "branch containing the changes (required)")
	cmd.Flags().StringVar(&pr.Base, "base", "", "branch to merge into (required)")
	cmd.Flags().BoolVar(&pr.Draft, "draft", false, "open as a draft")

	return cmd
}

func (c *CLI) prMergeCommand() *cobra.Command {
	var rf repoFlags
	var method, commitTitle string

	cmd := &cobra.Command{
		Use:   "merge <number>",
		Short: "Merge a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			result, err := c.newService().MergePullRequest(cmd.Context(), owner, repo, number, method, commitTitle)
			if err != nil {
				return err
			}
			printSuccess("Merged pull request #%d", number)
			if sha := stringField(result, "sha"); sha != "" {
				printDetail("merge commit %s", sha)
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&method, "method", "m", "", "merge method (merge, squash, rebase)")
	cmd.Flags().StringVar(&commitTitle, "commit-title", "", "title for the merge commit")
	return cmd
}

func (c *CLI) prCloseCommand() *cobra.Command {
	var rf repoFlags

	cmd := &cobra.Command{
		Use:   "close <number>",
		Short: "Close a pull request without merging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			if _, err := c.newService().ClosePullRequest(cmd.Context(), owner, repo, number); err != nil {
				return err
			}
			printSuccess("Closed pull request #%d", number)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	return cmd
}

func printPullLine(pr any) {
	number := numberField(pr, "number")
	state := stringField(pr, "state")
	title := stringField(pr, "title")
	head, _ := nestedField(pr, "head", "ref").(string)

	fmt.Printf("%s %s %s\n",
		stateStyle(state).Render(fmt.Sprintf("#%-5d", number)),
		StyleValue.Render(title),
		StyleDim.Render(head))
}
