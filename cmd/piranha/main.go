// Command piranha manages a Piranha content database.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/store/postgres"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "piranha",
		Short:         "Piranha content database management",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newPingCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func loadConfig(path string) (piranha.Config, error) {
	if path == "" {
		return piranha.DefaultConfig(), nil
	}
	return piranha.LoadConfig(path)
}

// newMigrateCmd builds the `migrate` command: connect to PostgreSQL and
// bring the schema up to date.
func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			st, err := postgres.New(cmd.Context(), cfg.DatabaseURL, postgres.WithLogger(logger))
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck // pool close never fails

			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

// newPingCmd builds the `ping` command: check database connectivity.
func newPingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			st, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck // pool close never fails

			if err := st.Ping(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("ok")
			return nil
		},
	}
}

// newVersionCmd builds the `version` command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("piranha " + version)
		},
	}
}
