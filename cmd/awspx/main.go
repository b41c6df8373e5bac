package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/AkshayJainG/awspx-go/cmd/awspx/internal"
)

var rootCmd = &cobra.Command{
	Use:   "awspx",
	Short: "awspx finds privilege-escalation paths in an AWS account's IAM graph",
	Long: `awspx searches a graph database, already populated with an AWS account's IAM
principals, policies, and resources, for chains of AWS API calls that escalate a
principal's privileges, up to and including full administrator access.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		ctx := context.WithValue(cmd.Context(), ctxVerboseKey{}, viper.GetBool("verbose"))
		cmd.SetContext(ctx)

		return nil
	},
}

type ctxVerboseKey struct{}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().String("neo4j-uri", "bolt://localhost:7687", "Graph database connection uri")
	viper.BindPFlag("neo4j.uri", rootCmd.PersistentFlags().Lookup("neo4j-uri"))

	rootCmd.PersistentFlags().String("neo4j-user", "neo4j", "Graph database username")
	viper.BindPFlag("neo4j.user", rootCmd.PersistentFlags().Lookup("neo4j-user"))

	rootCmd.PersistentFlags().String("neo4j-password", "", "Graph database password")
	viper.BindPFlag("neo4j.password", rootCmd.PersistentFlags().Lookup("neo4j-password"))

	rootCmd.PersistentFlags().String("neo4j-database", "neo4j", "Graph database name")
	viper.BindPFlag("neo4j.database", rootCmd.PersistentFlags().Lookup("neo4j-database"))

	setupConfig()

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	if err := os.MkdirAll(internal.DataDir(), 0755); err != nil {
		slog.Error("could not create data directory", "error", err)
		return
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	var logger *slog.Logger

	verbose := viper.GetBool("verbose")

	if term.IsTerminal(int(os.Stdout.Fd())) {
		charmLogger := log.New(os.Stderr)
		if verbose {
			charmLogger.SetLevel(log.DebugLevel)
		} else {
			charmLogger.SetLevel(log.InfoLevel)
		}
		logger = slog.New(charmLogger)
	} else {
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		if verbose {
			opts.Level = slog.LevelDebug
		}
		logger = slog.New(internal.NewCliOutputHandler(os.Stderr, opts))
	}

	slog.SetDefault(logger)
}

func setupConfig() {
	viper.SetConfigName("awspxconfig")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(internal.ConfigDir())
	viper.AddConfigPath(internal.DataDir())
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetEnvPrefix("AWSPX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("config file not found, using defaults and environment variables")
		} else {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("using config file", "file", viper.ConfigFileUsed())
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config file changed, reloading", "file", e.Name)
	})
	viper.WatchConfig()
}
