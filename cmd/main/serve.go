package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-steen/todo-client/pkg/config"
	"github.com/matt-steen/todo-client/pkg/fakeapi"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves a local stand-in for the todo api, backed by sqlite",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		configureLogger(os.Stderr, cfg.Debug)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		database, err := fakeapi.NewDatabase(ctx, cfg.DBFile)
		if err != nil {
			return err
		}
		defer database.Close()

		log.Info().Str("db", cfg.DBFile).Msg("opened database")

		return fakeapi.NewServer(database).ListenAndServe(ctx, cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	flags.String(config.KeyAddr, v.GetString(config.KeyAddr), "address to listen on")
	flags.String(config.KeyDB, v.GetString(config.KeyDB), "sqlite file backing the service")

	bindFlags(v, flags, config.KeyAddr, config.KeyDB)
}
