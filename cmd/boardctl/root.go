package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/projectboard/internal/adapters/clients/boardapi"
	"github.com/jsamuelsen11/projectboard/internal/cli"
	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	serverEnv      = "BOARDCTL_SERVER"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	server  string
	output  string
	timeout time.Duration
	color   string
	verbose bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	server := os.Getenv(serverEnv)
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:   "boardctl",
		Short: "boardctl - manage projects on a project board",
		Long: `boardctl talks to a project board service. Projects are added to the
active column and moved between the active and finished columns.

The server address defaults to $` + serverEnv + `, then ` + defaultServer + `.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("boardctl version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.server, "server", "s", server, "board service base URL")
	flags.StringVarP(&opts.output, "output", "o", string(cli.FormatText), "output format: text, json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "per-request timeout")
	flags.StringVar(&opts.color, "color", "auto", "colorize text output: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newAddCmd(opts),
		newMoveCmd(opts),
		newDropCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newBoardCmd(opts),
	)
	return root
}

func (o *options) logger() *slog.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logging.New(level, "text", o.stderr)
}

// client builds the API client from the flags.
func (o *options) client() *boardapi.Client {
	logger := o.logger()

	cfg := &config.ClientConfig{
		BaseURL: o.server,
		Timeout: o.timeout,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}
	return boardapi.New(httpclient.New(cfg, boardapi.ServiceName, nil, logger), logger)
}

// renderer builds the output renderer from the flags.
func (o *options) renderer() (*cli.Renderer, error) {
	format, err := cli.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}

	var color bool
	switch o.color {
	case "auto":
		color = cli.IsTerminal(o.stdout)
	case "always":
		color = true
	case "never":
		color = false
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto, always or never)", o.color)
	}
	return cli.NewRenderer(o.stdout, format, color), nil
}

// context returns the command context carrying the logger and bounded by
// the request timeout.
func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := logging.WithLogger(cmd.Context(), o.logger())
	return context.WithTimeout(ctx, o.timeout)
}
