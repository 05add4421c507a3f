package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/gh"
)

// issueCommand creates the issue command with subcommands.
func (c *CLI) issueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Work with issues",
	}

	cmd.AddCommand(c.issueListCommand())
	cmd.AddCommand(c.issueViewCommand())
	cmd.AddCommand(c.issueCreateCommand())
	cmd.AddCommand(c.issueEditCommand())
	cmd.AddCommand(c.issueCloseCommand())
	cmd.AddCommand(c.issueCommentCommand())

	return cmd
}

func (c *CLI) issueListCommand() *cobra.Command {
	var rf repoFlags
	var filter gh.IssueFilter
	var asJSON, pick bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues in a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			issues, err := c.newService().ListIssues(cmd.Context(), owner, repo, filter)
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				return printJSON(issues)
			case pick:
				selected, err := pickIssue(issues)
				if err != nil {
					return err
				}
				if selected == nil {
					return nil
				}
				return printJSON(selected)
			default:
				if len(issues) == 0 {
					printInfo("No issues match in %s/%s", owner, repo)
					return nil
				}
				for _, issue := range issues {
					printIssueLine(issue)
				}
				printDetail("%d issues", len(issues))
				return nil
			}
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVar(&filter.State, "state", "open", "filter by state (open, closed, all)")
	cmd.Flags().StringSliceVarP(&filter.Labels, "label", "l", nil, "filter by label (repeatable)")
	cmd.Flags().StringVar(&filter.Assignee, "assignee", "", "filter by assignee")
	cmd.Flags().BoolVar(&filter.NoAssignee, "no-assignee", false, "only unassigned issues")
	cmd.Flags().StringVar(&filter.Milestone, "milestone", "", "filter by milestone number")
	cmd.Flags().BoolVar(&filter.NoMilestone, "no-milestone", false, "only issues without a milestone")
	cmd.Flags().StringVar(&filter.Creator, "creator", "", "filter by creator")
	cmd.Flags().StringVar(&filter.Mentioned, "mention", "", "filter by mentioned user")
	cmd.Flags().StringVar(&filter.Sort, "sort", "", "sort order (created, updated, comments)")
	cmd.Flags().BoolVar(&filter.SinglePage, "single-page", false, "fetch only the first page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource list as JSON")
	cmd.Flags().BoolVar(&pick, "pick", false, "select one issue interactively")

	return cmd
}

func (c *CLI) issueViewCommand() *cobra.Command {
	var rf repoFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view <number>",
		Short: "Show one issue",
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

			issue, err := c.newService().GetIssue(cmd.Context(), owner, repo, number)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(issue)
			}
			printIssueDetail(issue)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource as JSON")
	return cmd
}

func (c *CLI) issueCreateCommand() *cobra.Command {
	var rf repoFlags
	var issue gh.NewIssue
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			created, err := c.newService().CreateIssue(cmd.Context(), owner, repo, issue)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(created)
			}
			printSuccess("Created issue #%d", numberField(created, "number"))
			if url := stringField(created, "html_url"); url != "" {
				printDetail(url)
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&issue.Title, "title", "t", "", "issue title (required)")
	cmd.Flags().StringVarP(&issue.Body, "body", "b", "", "issue body")
	cmd.Flags().StringSliceVarP(&issue.Labels, "label", "l", nil, "label to attach (repeatable)")
	cmd.Flags().StringSliceVarP(&issue.Assignees, "assignee", "a", nil, "user to assign (repeatable)")
	cmd.Flags().IntVar(&issue.Milestone, "milestone", 0, "milestone number")

	return cmd
}

func (c *CLI) issueEditCommand() *cobra.Command {
	var rf repoFlags
	var title, body, state string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: "Change an issue's title, body, or state",
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

			var edit gh.IssueEdit
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if cmd.Flags().Changed("body") {
				edit.Body = &body
			}
			if cmd.Flags().Changed("state") {
				edit.State = &state
			}

			updated, err := c.newService().UpdateIssue(cmd.Context(), owner, repo, number, edit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(updated)
			}
			printSuccess("Updated issue #%d", number)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "new body")
	cmd.Flags().StringVar(&state, "state", "", "new state (open, closed)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource as JSON")

	return cmd
}

func (c *CLI) issueCloseCommand() *cobra.Command {
	var rf repoFlags
	var comment string

	cmd := &cobra.Command{
		Use:   "close <number>",
		Short: "Close an issue",
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

			svc := c.newService()
			if comment != "" {
				if _, err := svc.CommentOnIssue(cmd.Context(), owner, repo, number, comment); err != nil {
					return err
				}
			}
			if _, err := svc.CloseIssue(cmd.Context(), owner, repo, number); err != nil {
				return err
			}
			printSuccess("Closed issue #%d", number)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "leave a comment while closing")
	return cmd
}

func (c *CLI) issueCommentCommand() *cobra.Command {
	var rf repoFlags
	var body string

	cmd := &cobra.Command{
		Use:   "comment <number>",
		Short: "Comment on an issue or pull request",
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

			comment, err := c.newService().CommentOnIssue(cmd.Context(), owner, repo, number, body)
			if err != nil {
				return err
			}
			printSuccess("Commented on #%d", number)
			if url := stringField(comment, "html_url"); url != "" {
				printDetail(url)
			}
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&body, "body", "b", "", "comment body (required)")
	return cmd
}

// =============================================================================
// Rendering
// =============================================================================

func printIssueLine(issue any) {
	number := numberField(issue, "number")
	state := stringField(issue, "state")
	title := stringField(issue, "title")
	updated := relativeTime(timeField(issue, "updated_at"))

	fmt.Printf("%s %s %s\n",
		stateStyle(state).Render(fmt.Sprintf("#%-5d", number)),
		StyleValue.Render(title),
		StyleDim.Render(updated))
}

func printIssueDetail(issue any) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("#%d %s", numberField(issue, "number"), stringField(issue, "title"))))
	printKeyValue("State", stringField(issue, "state"))
	if login, ok := nestedField(issue, "user", "login").(string); ok && login != "" {
		printKeyValue("Author", "@"+login)
	}
	if t := timeField(issue, "created_at"); !t.IsZero() {
		printKeyValue("Opened", t.Format("Jan 2, 2006"))
	}
	if t := timeField(issue, "updated_at"); !t.IsZero() {
		printKeyValue("Updated", relativeTime(t))
	}
	if url := stringField(issue, "html_url"); url != "" {
		printKeyValue("Link", StyleLink.Render(url))
	}
	if body := stringField(issue, "body"); body != "" {
		fmt.Println()
		fmt.Println(body)
	}
}

func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "not a resource number: %s", arg)
	}
	return n, nil
}
