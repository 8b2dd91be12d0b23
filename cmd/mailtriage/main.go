// Command mailtriage classifies e-mails as productive or unproductive and
// suggests a reply, using a remote classification server.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/mailtriage/internal/classifier"
	"github.com/csheth/mailtriage/internal/config"
	"github.com/csheth/mailtriage/internal/logger"
	"github.com/csheth/mailtriage/internal/tui"
)

// errClassifyFailed marks a cycle that settled in the error region. The
// message has already been printed.
var errClassifyFailed = errors.New("classification failed")

type options struct {
	envFile     string
	endpoint    string
	timeout     time.Duration
	logLevel    string
	noAltScreen bool
}

type app struct {
	cfg    config.Config
	log    *zap.Logger
	client classifier.Client
	close  func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errClassifyFailed) {
			fmt.Fprintln(os.Stderr, "mailtriage:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "mailtriage",
		Short:         "Classify e-mails and draft a suggested reply",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "load settings from this .env file (default .env when present)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "classification server base URL (overrides MAILTRIAGE_ENDPOINT)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout, 0 waits indefinitely (overrides MAILTRIAGE_TIMEOUT)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides MAILTRIAGE_LOG_LEVEL)")
	root.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	root.AddCommand(newClassifyCmd(opts), newHealthCmd(opts))
	return root
}

// setup loads config, applies flag overrides and builds the logger and
// classifier client.
func (o *options) setup(cmd *cobra.Command) (*app, error) {
	var files []string
	if o.envFile != "" {
		files = append(files, o.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if o.endpoint != "" {
		cfg.Endpoint = o.endpoint
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	client, err := classifier.New(cfg.Classifier())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("classifier: %w", err)
	}
	log.Info("mailtriage starting",
		zap.String("command", cmd.Name()),
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("timeout", cfg.Timeout),
	)
	return &app{cfg: cfg, log: log, client: client, close: closeLog}, nil
}

func runTUI(cmd *cobra.Command, opts *options) error {
	a, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Classifier: a.client,
			Logger:     a.log,
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		a.log.Error("program error", zap.Error(err))
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
