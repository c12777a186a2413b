package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rbxkit/rbxkit/catalog"
	"github.com/rbxkit/rbxkit/config"
	"github.com/rbxkit/rbxkit/economy"
	"github.com/rbxkit/rbxkit/presence"
	"github.com/rbxkit/rbxkit/roblox"
	"github.com/rbxkit/rbxkit/trades"
	"github.com/rbxkit/rbxkit/users"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	rbxClient      *roblox.Client
	usersClient    *users.Client
	economyClient  *economy.Client
	catalogClient  *catalog.Client
	presenceClient *presence.Client
	tradesClient   *trades.Client

	// Shared command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rbxkit",
	Short: "A CLI for inspecting a Roblox account and the catalog",
	Long: `rbxkit is a CLI around a typed Roblox web API client. It can inspect
the authenticated account (robux, sales, trades), look up catalog items
and resale listings, and check user presence, with expr-based filters
for narrowing down listings client-side.

The session cookie comes from the config file or the ROBLOSECURITY
environment variable. All requests can be routed through an HTTP(S)
proxy configured under roblox.proxy.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []roblox.Option{roblox.WithTimeout(cfg.Roblox.Timeout)}
	if cfg.Roblox.Cookie != "" {
		opts = append(opts, roblox.WithCookie(cfg.Roblox.Cookie))
	}
	if cfg.Roblox.Proxy != "" {
		opts = append(opts, roblox.WithProxy(cfg.Roblox.Proxy))
		logger.Info().Msg("Routing requests through configured proxy")
	}
	if cfg.Roblox.UserAgent != "" {
		opts = append(opts, roblox.WithUserAgent(cfg.Roblox.UserAgent))
	}

	rbxClient, err = roblox.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Roblox client: %w", err)
	}

	usersClient = users.NewClient(rbxClient, logger)
	economyClient = economy.NewClient(rbxClient, usersClient, logger)
	catalogClient = catalog.NewClient(rbxClient, logger)
	presenceClient = presence.NewClient(rbxClient, logger)
	tradesClient = trades.NewClient(rbxClient, logger)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; colors only make sense on a real terminal.
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter expression to use. Priority:
// command line filter > preset > config default. An empty result means
// no filtering.
func getFilterExpression() (string, error) {
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}
