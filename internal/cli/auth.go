package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/session"
)

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored credentials",
		Long: `Store and inspect the access token used to authenticate API requests.

Tokens are read in precedence order: the HUBKIT_TOKEN and GITHUB_TOKEN
environment variables, then the session saved by 'hubkit auth login'.
Sessions are stored in ~/.config/hubkit/sessions/ unless a redis backend
is configured.`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authStatusCommand())
	cmd.AddCommand(c.authLogoutCommand())

	return cmd
}

// authLoginCommand creates the login subcommand.
func (c *CLI) authLoginCommand() *cobra.Command {
	var withToken bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token for API requests",
		Long: `Save a personal access token for future commands.

The token is read from standard input with --with-token, which keeps it
out of shell history:

  hubkit auth login --with-token < token.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !withToken {
				printInfo("Pass --with-token and provide the token on standard input")
				printDetail("hubkit does not drive a browser authorization flow")
				return nil
			}

			scanner := bufio.NewScanner(os.Stdin)
			scanner.Scan()
			token := strings.TrimSpace(scanner.Text())
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read token: %w", err)
			}

			sess, err := session.New(token, "", 0)
			if err != nil {
				return err
			}

			store, err := c.sessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Verify the token before persisting it.
			login := ""
			if user, err := c.newServiceWithToken(token).CurrentUser(ctx); err == nil {
				login = stringField(user, "login")
				sess.Login = login
			} else {
				printWarning("Could not verify the token against the API; storing it anyway")
				c.Logger.Debug("token verification failed", "error", err)
			}

			if err := store.SaveSession(ctx, sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			if login != "" {
				printSuccess("Logged in as @%s", login)
			} else {
				printSuccess("Token stored")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withToken, "with-token", false, "read the token from standard input")
	return cmd
}

// authStatusCommand creates the status subcommand.
func (c *CLI) authStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current authentication state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			for _, name := range tokenEnvVars {
				if os.Getenv(name) != "" {
					printSuccess("Authenticated via the %s environment variable", name)
					return nil
				}
			}

			store, err := c.sessionStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := store.GetSession(ctx)
			if err != nil {
				return err
			}
			if sess == nil {
				printError("Not logged in")
				printDetail("Run 'hubkit auth login --with-token' or set HUBKIT_TOKEN")
				return nil
			}

			printSuccess("Logged in")
			if sess.Login != "" {
				printKeyValue("Account", "@"+sess.Login)
			}
			printKeyValue("Since", sess.CreatedAt.Format("Jan 2, 2006"))
			printKeyValue("Backend", c.Config.SessionBackend)
			return nil
		},
	}
}

// authLogoutCommand creates the logout subcommand.
func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteSession(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}
