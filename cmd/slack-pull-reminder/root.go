package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	githubadapter "github.com/GoshPosh/slack-pull-reminder/internal/adapter/driven/github"
	slackadapter "github.com/GoshPosh/slack-pull-reminder/internal/adapter/driven/slack"
	"github.com/GoshPosh/slack-pull-reminder/internal/application"
	"github.com/GoshPosh/slack-pull-reminder/internal/config"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/port/driven"
	"github.com/GoshPosh/slack-pull-reminder/internal/logging"
)

const defaultEnvFile = ".env"

// options stores the command-line flags.
type options struct {
	send     bool
	logLevel string
	envFile  string
}

// newRootCommand constructs the root cobra.Command. The reminder text is
// written to out; logs go to stderr.
func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "slack-pull-reminder",
		Short:         "Remind a Slack channel about open pull requests",
		Long:          "slack-pull-reminder lists the open pull requests of a GitHub organization, groups them by author and approval status, prints the summary and optionally posts it to Slack.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logging.ParseLevel(opts.logLevel)
			slog.SetDefault(logging.NewLogger(cmd.ErrOrStderr(), level))
			slog.Debug("logger initialized", "level", level)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remind(cmd, opts, out)
		},
	}

	cmd.Flags().BoolVar(&opts.send, "send", false, "Post the reminder to Slack (overrides SEND_TO_SLACK)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.envFile, "env-file", defaultEnvFile, "Optional .env file loaded before reading the environment")

	return cmd
}

func remind(cmd *cobra.Command, opts *options, out io.Writer) error {
	// 1. Load .env (existing variables win).
	if err := loadEnvFile(opts.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	// 2. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("send") {
		cfg.SendToSlack = opts.send
	}
	slog.Info("config loaded",
		"organization", cfg.Organization,
		"channel", cfg.SlackChannel,
		"send_to_slack", cfg.SendToSlack,
		"repositories", cfg.Repositories,
		"usernames", cfg.Usernames,
		"ignore_words", cfg.IgnoreWords,
	)

	// 3. Wire adapters.
	ghClient, err := githubadapter.NewClient(cfg.GitHubAPIToken, cfg.GitHubAPIURL)
	if err != nil {
		return err
	}

	var notifier driven.ChatNotifier
	if cfg.SendToSlack {
		notifier = slackadapter.NewNotifier(cfg.SlackAPIURL, cfg.SlackAPIToken, cfg.SlackChannel)
	}

	// 4. Run a single reminder pass.
	svc := application.NewReminderService(ghClient, notifier, cfg.Organization, application.Filters{
		IgnoreWords:  cfg.IgnoreWords,
		Repositories: cfg.Repositories,
		Usernames:    cfg.Usernames,
	})

	return svc.Run(cmd.Context(), out)
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is only an error when the
// path was given explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	slog.Debug("env file loaded", "path", path)
	return nil
}
