package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// storefront serve
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if uri := config.LogMongoURI(); uri != "" {
				flush, err := logger.ShipToMongo(ctx, uri, config.LogMongoDatabase(), config.LogMongoCollection(), config.LogLevel())
				if err != nil {
					logger.Warn("log shipping disabled", "error", err)
				} else {
					defer flush()
				}
			}

			db, err := database.Connect()
			if err != nil {
				return err
			}

			if config.DatabaseAutoMigrate() {
				if _, err := migration.NewDefault(db, io.Discard).Run(); err != nil {
					_ = database.Close(db)
					return err
				}
			}

			r, err := routes.New(db)
			if err != nil {
				_ = database.Close(db)
				return err
			}
			return server.Run(ctx, r.Handler(), db, server.OptionsFromConfig())
		},
	}
}

// storefront route:list
func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := routes.New(nil)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range r.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
