package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/config"
)

// configCommand creates the config command with subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write configuration",
		Long: `Inspect and change hubkit settings.

Configuration is stored as TOML at ~/.config/hubkit/config.toml.
Available keys:

  ` + keysLine(),
	}

	cmd.AddCommand(c.configListCommand())
	cmd.AddCommand(c.configGetCommand())
	cmd.AddCommand(c.configSetCommand())

	return cmd
}

func keysLine() string {
	line := ""
	for i, k := range config.Keys() {
		if i > 0 {
			line += ", "
		}
		line += k
	}
	return line
}

func (c *CLI) configListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every setting and its current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.Keys() {
				value, err := c.Config.Value(key)
				if err != nil {
					return err
				}
				printKeyValue(key, fmt.Sprintf("%v", value))
			}
			return nil
		},
	}
}

func (c *CLI) configGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := c.Config.Value(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%v\n", value)
			return nil
		},
	}
}

func (c *CLI) configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.SetValue(args[0], args[1]); err != nil {
				return err
			}
			if err := c.Config.Save(""); err != nil {
				return err
			}
			printSuccess("Set %s", args[0])
			return nil
		},
	}
}
