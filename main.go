/* main.go
 * The entry point of the sports results service. For details see `readme.md`
 * Usage: sports-results serve | bot | extract <sport> <file> | import <sport> <file>
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sports-results/api/api"
	"sports-results/api/external"
	"sports-results/api/logic"
	"sports-results/api/store"
	"sports-results/bot"
	"sports-results/config"
	"sports-results/logging"
	"sports-results/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchTimeout bounds a single outbound page fetch
const fetchTimeout = 20 * time.Second

var (
	cfg    config.Config
	rules  logic.Rules
	logger *zap.Logger

	// Global flags
	country  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "sports-results",
	Short:         "Extracts, stores and reports a country's results from sports result feeds",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if country != "" {
			cfg.Country = country
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		rules, err = config.LoadRules(cfg.RoundsFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API (and the discord bot when ENABLE_BOT is true)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		apiPtr, err := connectAPI(ctx)
		if err != nil {
			return err
		}
		defer disconnect(apiPtr)

		b, err := serveBot(apiPtr)
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return web.Start(ctx, web.Config{
				Addr:        cfg.HTTPAddr,
				API:         apiPtr,
				Logger:      logger.Named("web"),
				CORSOrigins: cfg.CORSOrigins,
			})
		})
		if b != nil {
			g.Go(func() error { return b.Run(ctx) })
		}
		return g.Wait()
	},
}

// serveBot builds the bot serve runs alongside the web server, before anything is started
// Preconditions: Receives the connected API
// Postconditions: Returns nil when the bot is disabled, or an error if it is enabled without a token
func serveBot(apiPtr *api.API) (*bot.Bot, error) {
	if !cfg.EnableBot {
		return nil, nil
	}
	return bot.NewBot(cfg.DiscordToken, apiPtr, logger.Named("bot"))
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the discord bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		apiPtr, err := connectAPI(ctx)
		if err != nil {
			return err
		}
		defer disconnect(apiPtr)

		b, err := bot.NewBot(cfg.DiscordToken, apiPtr, logger.Named("bot"))
		if err != nil {
			return err
		}
		return b.Run(ctx)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <sport> <file>",
	Short: "Run the extractor of a sport over a local payload (use - for stdin) and print the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := api.ParseSport(args[0])
		if err != nil {
			return err
		}
		payload, err := readPayload(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}

		// Extraction is pure, no store is needed
		apiPtr := &api.API{Country: cfg.Country, Rules: rules, Logger: logger}
		result, err := apiPtr.Extract(sport, payload)
		if err != nil {
			return fmt.Errorf("%s: %w", api.UserMessage(err), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <sport> <file>",
	Short: "Load structured match records (use - for stdin) into the result store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := api.ParseSport(args[0])
		if err != nil {
			return err
		}
		payload, err := readPayload(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}

		apiPtr, err := connectAPI(cmd.Context())
		if err != nil {
			return err
		}
		defer disconnect(apiPtr)

		written, err := apiPtr.ImportRecords(cmd.Context(), sport, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s records\n", written, sport)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&country, "country", "", "Target country code (overrides TARGET_COUNTRY)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, botCmd, extractCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// connectAPI creates the API backed by mongo and makes sure the indexes exist
func connectAPI(ctx context.Context) (*api.API, error) {
	apiPtr, err := api.NewAPI(api.Config{
		DBName:   cfg.DBName,
		MongoURI: cfg.MongoURI,
		Country:  cfg.Country,
		Rules:    rules,
		Fetcher:  external.NewFetcher(cfg.FetchRatePerSec, fetchTimeout),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API: %w", err)
	}
	if s, ok := apiPtr.Store.(*store.Store); ok {
		if err := s.EnsureIndexes(ctx); err != nil {
			logger.Warn("could not ensure indexes", zap.Error(err))
		}
	}
	return apiPtr, nil
}

func disconnect(apiPtr *api.API) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiPtr.Store.GetClient().Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect from mongo", zap.Error(err))
	}
}
