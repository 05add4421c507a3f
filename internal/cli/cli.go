// Package cli implements the hubkit command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/buildinfo"
	"github.com/hubkit-cli/hubkit/pkg/config"
	"github.com/hubkit-cli/hubkit/pkg/gh"
	"github.com/hubkit-cli/hubkit/pkg/rest"
	"github.com/hubkit-cli/hubkit/pkg/telemetry"
)

// appName is the application name used for directories and display.
const appName = "hubkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and the
// configuration loaded from its default path. A missing config file is
// not an error; defaults apply.
func New(w io.Writer, level log.Level) *CLI {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	cfg, err := config.Load("")
	if err != nil {
		logger.Warn("could not load configuration, using defaults", "error", err)
		cfg = config.Default()
	}

	telemetry.SetRecorder(telemetry.NewLogRecorder(logger))

	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hubkit",
		Short:        "Hubkit is a scriptable client for the GitHub REST API",
		Long:         `Hubkit lets scripts and interactive users query and mutate GitHub resources (issues, pull requests, labels, repositories) without hand-rolling HTTP calls. Pagination, retry-after-not-ready, and authentication are handled by the request engine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.issueCommand())
	root.AddCommand(c.prCommand())
	root.AddCommand(c.labelCommand())
	root.AddCommand(c.repoCommand())
	root.AddCommand(c.apiCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient creates the request client shared by resource commands. The
// progress display is attached only on an interactive stderr, and never
// when status output is disabled by configuration.
func (c *CLI) newClient() *rest.Client {
	client := rest.NewClient(c.Config, c.tokenChain(), c.Logger)
	if !c.Config.NoStatus {
		client.SetDisplay(rest.NewTermDisplay(os.Stderr))
	}
	return client
}

// newService creates the resource service used by resource commands.
func (c *CLI) newService() *gh.Service {
	return gh.NewService(c.newClient())
}

// newServiceWithToken creates a service bound to one explicit token,
// bypassing the provider chain. Used to verify a token before storing it.
func (c *CLI) newServiceWithToken(token string) *gh.Service {
	return gh.NewService(rest.NewClient(c.Config, rest.StaticToken(token), c.Logger))
}

// newResolver creates the owner/repo resolver defaulting from config.
func (c *CLI) newResolver() *gh.Resolver {
	return gh.NewResolver(c.Config)
}
