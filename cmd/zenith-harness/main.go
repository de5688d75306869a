// zenith-harness is the CLI in front of the e2e data tooling: environment
// bootstrap, direct seeding, database resets, and stack readiness waiting.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/backend"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/bootstrap"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/config"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/seed"
)

func main() {
	// .env is the base, .env.dev overrides it; both optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.dev")

	var (
		cfgPath string
		cfg     *config.Config
	)

	root := &cobra.Command{
		Use:   "zenith-harness",
		Short: "Test-data seeding and environment bootstrap for the storefront e2e suite",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.App.LogLevel,
				ServiceName: "zenith-harness",
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/harness.yaml", "optional YAML config (env vars override)")

	root.AddCommand(&cobra.Command{
		Use:   "bootstrap",
		Short: "Reset, register, seed and reconcile the full e2e environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			// always exits 0: a partial environment is logged, and the
			// suite itself fails loudly on anything that is missing
			bootstrap.New(cfg).Run(cmd.Context())
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Seed the full fixture catalog straight into the database (no backend needed; run after reset)",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			return runSeed(cmd.Context(), cfg)
		},
	})

	var collection string
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop e2e collections (preserve-list aware), or one collection with --collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			return runReset(cmd.Context(), cfg, collection)
		},
	}
	resetCmd.Flags().StringVar(&collection, "collection", "", "drop only this collection")
	root.AddCommand(resetCmd)

	var (
		timeout  time.Duration
		interval time.Duration
	)
	waitCmd := &cobra.Command{
		Use:   "wait",
		Short: "Poll backend and frontend until both respond or the timeout elapses",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			if timeout == 0 {
				timeout = cfg.Wait.Timeout
			}
			if interval == 0 {
				interval = cfg.Wait.Interval
			}
			return backend.WaitForStack(cmd.Context(), cfg.Backend.URL, cfg.Frontend.URL, timeout, interval)
		},
	}
	waitCmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline (default from config/WAIT_TIMEOUT)")
	waitCmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config/WAIT_INTERVAL)")
	root.AddCommand(waitCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	s := seed.New(cfg.Mongo.URI, cfg.Mongo.Database)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = s.Disconnect(context.Background()) }()

	if err := s.SeedAll(ctx, seed.Fixtures{
		Users:           fixtures.RegisterableUsers(),
		Products:        fixtures.Products(),
		Coupons:         fixtures.Coupons(),
		Orders:          fixtures.Orders(),
		BitcoinPayments: fixtures.BitcoinPayments(),
	}); err != nil {
		return err
	}
	return s.SeedSpecialTestUsers(ctx, fixtures.SpecialUsers())
}

func runReset(ctx context.Context, cfg *config.Config, collection string) error {
	s := seed.New(cfg.Mongo.URI, cfg.Mongo.Database)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = s.Disconnect(context.Background()) }()

	if collection != "" {
		return s.ResetCollection(ctx, collection)
	}
	return s.ResetDatabase(ctx)
}
