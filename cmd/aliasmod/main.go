// Command aliasmod moderates alias records: official aliases,
// suggestions and the blacklist of forbidden names.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/domonda/go-retree/alias"
	"github.com/domonda/go-retree/internal/config"
)

var (
	// BuildTag is set during build
	BuildTag = "dev"
	// BuildDate is set during build
	BuildDate = "unknown"
)

var (
	configFile string
	backend    string
)

// app is set up before every command that needs the stores
var app struct {
	cfg        config.Config
	log        *logrus.Logger
	mod        *alias.Moderation
	closeStore func() error
}

var rootCmd = &cobra.Command{
	Use:   "aliasmod",
	Short: "Moderate alias records",
	Long: `aliasmod - moderate alias records

Aliases map names to locations. They are kept in three collections:

  - Officials: approved aliases
  - Suggestions: aliases suggested by users, waiting for approval
  - Blacklist: names that must not be used as alias

All destructive or approving actions are staged as changes
and performed when the changes are committed.

Environment Variables:
  ALIASMOD_BACKEND        memory, redis or postgres (default: memory)
  ALIASMOD_REDIS_URL      Redis URL for the redis backend
  ALIASMOD_DATABASE_URL   Postgres URL for the postgres backend
  ALIASMOD_LOG_LEVEL      logrus level (default: info)
  ALIASMOD_LOG_FORMAT     text or json (default: text)
  ALIASMOD_SEED_DIR       directory with CSV files imported into the memory backend
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Store backend, overrides the config (memory, redis, postgres)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aliasmod version %s (built %s)\n", BuildTag, BuildDate)
		},
	})
}

// setup loads the config, connects to the stores
// and seeds empty memory stores.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	log, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	stores, closeStore, err := cfg.OpenStores(cmd.Context())
	if err != nil {
		return fmt.Errorf("open %s stores: %w", cfg.Backend, err)
	}
	app.cfg = cfg
	app.log = log
	app.mod = alias.NewModeration(stores, log)
	app.closeStore = closeStore

	if cfg.Backend == config.BackendMemory && cfg.SeedDir != "" {
		if err := seed(cmd.Context()); err != nil {
			return err
		}
	}
	return app.mod.Refresh(cmd.Context())
}

func teardown(*cobra.Command, []string) error {
	if app.closeStore == nil {
		return nil
	}
	return app.closeStore()
}

func seed(ctx context.Context) error {
	for _, collection := range []string{alias.OfficialsName, alias.SuggestionsName, alias.BlacklistName} {
		file := app.cfg.SeedFile(collection)
		if !file.Exists() {
			continue
		}
		n, err := importFile(ctx, collection, string(file))
		if err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
		app.log.WithFields(logrus.Fields{"collection": collection, "rows": n}).Debug("seeded")
	}
	return nil
}

func withStores(cmd *cobra.Command) *cobra.Command {
	cmd.PreRunE = setup
	cmd.PostRunE = teardown
	return cmd
}

func tableNames() []string {
	var names []string
	for _, info := range app.mod.Tables() {
		names = append(names, info.TableTitle)
	}
	return names
}
