package main

import (
	"fmt"
	"time"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/aleister1102/seatwatch/internal/datastore"
	"github.com/aleister1102/seatwatch/internal/differ"
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/aleister1102/seatwatch/internal/httpclient"
	"github.com/aleister1102/seatwatch/internal/logger"
	"github.com/aleister1102/seatwatch/internal/monitor"
	"github.com/aleister1102/seatwatch/internal/notifier"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath    string
	statePath     string
	initialNotify bool
	dryRun        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "seatwatch",
		Short: "Check course seat availability once and report changes",
		Long: "seatwatch fetches the course registration pages, compares the seat counts " +
			"against the last saved baseline, reports changes on stdout and Discord, and saves the new baseline.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	persistent.StringVar(&opts.statePath, "state", "", "Path of the baseline file or database, overrides the configured one")

	rootCmd.Flags().BoolVar(&opts.initialNotify, "initial-notify", false, "Report every course on the first run instead of saving silently")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Diff and print changes without posting to Discord or saving the baseline")

	rootCmd.AddCommand(newStateCmd(opts))

	return rootCmd
}

// loadConfig resolves the configuration: defaults, file, environment, then flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.GlobalConfig, error) {
	cfg, err := config.LoadGlobalConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(cfg)

	if cmd.Flags().Changed("initial-notify") {
		cfg.DiffConfig.InitialNotify = opts.initialNotify
	}
	cfg.Normalize()
	if opts.statePath != "" {
		if cfg.StorageConfig.Backend == config.StorageBackendSQLite {
			cfg.StorageConfig.SQLitePath = opts.statePath
		} else {
			cfg.StorageConfig.StatePath = opts.statePath
		}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return common.WrapError(err, "failed to load configuration")
	}

	appLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		return common.WrapError(err, "failed to initialize logger")
	}
	defer appLogger.Close()
	zLogger := *appLogger.GetZerolog()

	client, err := newPortalClient(cfg.PortalConfig, zLogger)
	if err != nil {
		return err
	}

	store, err := datastore.NewStateStore(cfg.StorageConfig, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to open state store")
		return err
	}
	defer store.Close()

	notifications, err := newNotificationHelper(cmd, cfg.NotificationConfig, opts.dryRun, zLogger)
	if err != nil {
		return err
	}

	service, err := monitor.NewMonitoringService(monitor.ServiceOptions{
		URLs:    cfg.PortalConfig.URLs,
		Fetcher: monitor.NewPageFetcher(client, zLogger),
		Rule:    filter.NewRule(cfg.FilterConfig.CourseCodes, cfg.FilterConfig.CodePrefixes),
		DifferConfig: differ.CourseDifferConfig{
			InitialNotify:       cfg.DiffConfig.InitialNotify,
			ResetGoneOnReappear: cfg.DiffConfig.ResetGoneOnReappear,
		},
		Store:         store,
		Notifications: notifications,
		DryRun:        opts.dryRun,
	}, zLogger)
	if err != nil {
		return err
	}

	summary, err := service.Run(cmd.Context())
	if err != nil {
		zLogger.Error().Err(err).Msg("Check failed")
		return err
	}

	if msg := summary.Message(); msg != "" {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return nil
}

func newPortalClient(cfg config.PortalConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	timeoutSecs := cfg.RequestTimeoutSecs
	if timeoutSecs <= 0 {
		timeoutSecs = config.DefaultPortalRequestTimeoutSecs
	}
	maxContentMB := cfg.MaxContentSizeMB
	if maxContentMB <= 0 {
		maxContentMB = config.DefaultPortalMaxContentSizeMB
	}

	builder := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(time.Duration(timeoutSecs) * time.Second).
		WithMaxContentSize(maxContentMB * 1024 * 1024).
		WithInsecureSkipVerify(cfg.InsecureSkipTLSVerify)
	if cfg.UserAgent != "" {
		builder = builder.WithUserAgent(cfg.UserAgent)
	}

	client, err := builder.Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create portal HTTP client")
	}
	return client, nil
}

// newNotificationHelper always prints to stdout; Discord is added when a
// webhook is configured and this is not a dry run.
func newNotificationHelper(cmd *cobra.Command, cfg config.NotificationConfig, dryRun bool, logger zerolog.Logger) (*notifier.NotificationHelper, error) {
	notifiers := []notifier.Notifier{notifier.NewConsoleNotifier(cmd.OutOrStdout())}

	switch {
	case cfg.DiscordWebhookURL == "":
		logger.Info().Msg("Discord webhook not configured, printing to stdout only")
	case dryRun:
		logger.Info().Msg("Dry run, Discord notifications disabled")
	default:
		discord, err := notifier.NewDiscordNotifier(cfg, nil, logger)
		if err != nil {
			return nil, common.WrapError(err, "failed to initialize Discord notifier")
		}
		notifiers = append(notifiers, discord)
	}

	return notifier.NewNotificationHelper(logger, notifiers...), nil
}
