// kazi is a terminal client for the Kazi HR platform: sign in, manage
// attendance and leave, run payroll and provision new tenants from the
// comfort of a shell.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kazi/internal/api"
	"kazi/internal/config"
	"kazi/internal/logging"
	"kazi/internal/session"
)

var (
	cfgPath        string
	serverOverride string
	verbose        bool

	logger *zap.Logger
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	sess   *session.Manager
)

var rootCmd = &cobra.Command{
	Use:   "kazi",
	Short: "Terminal client for the Kazi HR platform",
	Long: `kazi talks to a Kazi HR deployment: attendance, leave, tasks,
payroll, the employee directory and tenant onboarding.

Run without arguments for the interactive shell, or use the subcommands
for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func initApp() error {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	var err error
	logger, err = zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	path := cfgPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if cfg, err = config.Load(path); err != nil {
		return err
	}
	if serverOverride != "" {
		cfg.Server.BaseURL = serverOverride
	}

	logOpts := logging.Options{
		Debug:      cfg.Logging.Debug || verbose,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}
	if err := logging.Initialize(filepath.Join(filepath.Dir(path), "logs"), logOpts); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("kazi starting, server %s", cfg.Server.BaseURL)

	credPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	store = session.NewStore(credPath)
	if err := store.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read stored credentials", zap.Error(err))
	}

	client = api.NewClient(cfg.Server.BaseURL,
		api.WithTokenSource(store),
		api.WithTimeout(cfg.RequestTimeout()),
	)
	sess = session.NewManager(store, client)
	return nil
}

// requireSession restores a persisted session before an authenticated
// command runs. Stale tokens are discarded and the user is told to sign
// in again; there is no automatic retry.
func requireSession(ctx context.Context) error {
	if !store.HasTokens() {
		return fmt.Errorf("not signed in, run: kazi login")
	}
	if err := sess.Restore(ctx); err != nil {
		return fmt.Errorf("session expired, run: kazi login")
	}
	return nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.kazi/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "override the server base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
