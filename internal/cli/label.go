package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/gh"
)

// labelCommand creates the label command with subcommands.
func (c *CLI) labelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Work with labels",
	}

	cmd.AddCommand(c.labelListCommand())
	cmd.AddCommand(c.labelCreateCommand())
	cmd.AddCommand(c.labelDeleteCommand())
	cmd.AddCommand(c.labelAddCommand())
	cmd.AddCommand(c.labelRemoveCommand())

	return cmd
}

func (c *CLI) labelListCommand() *cobra.Command {
	var rf repoFlags
	var asJSON, singlePage bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels defined in a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			labels, err := c.newService().ListLabels(cmd.Context(), owner, repo, singlePage)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(labels)
			}

			for _, label := range labels {
				name := stringField(label, "name")
				desc := stringField(label, "description")
				fmt.Printf("%-24s %s\n", StyleValue.Render(name), StyleDim.Render(desc))
			}
			printDetail("%d labels", len(labels))
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().BoolVar(&singlePage, "single-page", false, "fetch only the first page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw resource list as JSON")
	return cmd
}

func (c *CLI) labelCreateCommand() *cobra.Command {
	var rf repoFlags
	var label gh.NewLabel

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Define a new label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label.Name = args[0]
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			if _, err := c.newService().CreateLabel(cmd.Context(), owner, repo, label); err != nil {
				return err
			}
			printSuccess("Created label %q", label.Name)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVar(&label.Color, "color", "", "hex color (with or without leading #)")
	cmd.Flags().StringVar(&label.Description, "description", "", "label description")
	return cmd
}

func (c *CLI) labelDeleteCommand() *cobra.Command {
	var rf repoFlags

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a label definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := c.resolveRepo(rf)
			if err != nil {
				return err
			}

			if err := c.newService().DeleteLabel(cmd.Context(), owner, repo, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted label %q", args[0])
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	return cmd
}

func (c *CLI) labelAddCommand() *cobra.Command {
	var rf repoFlags
	var labels []string

	cmd := &cobra.Command{
		Use:   "add <issue-number>",
		Short: "Attach labels to an issue",
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

			if _, err := c.newService().AddIssueLabels(cmd.Context(), owner, repo, number, labels); err != nil {
				return err
			}
			printSuccess("Labeled issue #%d", number)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "label to attach (repeatable, required)")
	return cmd
}

func (c *CLI) labelRemoveCommand() *cobra.Command {
	var rf repoFlags
	var label string

	cmd := &cobra.Command{
		Use:   "remove <issue-number>",
		Short: "Detach one label from an issue",
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

			if err := c.newService().RemoveIssueLabel(cmd.Context(), owner, repo, number, label); err != nil {
				return err
			}
			printSuccess("Removed label %q from issue #%d", label, number)
			return nil
		},
	}

	addRepoFlags(cmd, &rf)
	cmd.Flags().StringVarP(&label, "label", "l", "", "label to detach (required)")
	return cmd
}
