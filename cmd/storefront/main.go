// Command storefront runs the e-commerce API and its maintenance tasks.
//
//	storefront serve              # HTTP (+ gRPC health) server
//	storefront migrate            # run pending migrations
//	storefront migrate:rollback   # undo the last batch
//	storefront migrate:status
//	storefront seed               # demo catalogue
//	storefront route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"

	// Register migrations and seeders via their init() funcs.
	_ "github.com/shashiranjanraj/storefront/database/migrations"
	_ "github.com/shashiranjanraj/storefront/database/seeders"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, configFile string

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront: customers, products and orders over HTTP/JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Reset()
			if err := config.LoadFrom(configFile, envFile); err != nil {
				return err
			}
			logger.Configure(config.AppEnv(), config.LogLevel())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvPath, "dotenv file to load")
	root.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigPath, "JSON config file to load")

	root.AddCommand(
		serveCmd(),
		routeListCmd(),
		migrateCmd(),
		migrateRollbackCmd(),
		migrateStatusCmd(),
		seedCmd(),
	)
	return root
}
