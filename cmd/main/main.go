package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matt-steen/todo-client/pkg/api"
	"github.com/matt-steen/todo-client/pkg/config"
	"github.com/matt-steen/todo-client/pkg/tui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const filePerms = 0o666

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:           "todo-client",
	Short:         "terminal client for a remote todo list",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		logFile, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer logFile.Close()

		log.Info().Str("baseURL", cfg.BaseURL).Msg("starting application...")

		client, err := api.NewClient(cfg.BaseURL, nil)
		if err != nil {
			return err
		}

		return tui.NewApp(context.Background(), client).Run()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.String(config.KeyBaseURL, api.DefaultBaseURL, "base url of the todo service")
	flags.String(config.KeyLogFile, v.GetString(config.KeyLogFile), "file to write logs to")
	flags.Bool(config.KeyDebug, false, "log at debug level")

	bindFlags(v, flags, config.KeyBaseURL, config.KeyLogFile, config.KeyDebug)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// setupLogging sends the global logger to the configured file so it doesn't draw over the terminal UI.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return nil, err
	}

	configureLogger(logFile, cfg.Debug)

	return logFile, nil
}

func configureLogger(out io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: out, TimeFormat: "2006-01-02_15:04:05",
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
