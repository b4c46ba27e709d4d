package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/shelfsort/internal/cli"
	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "shelf",
		Short: "🥤 Beverage catalog categorization engine",
		Long: `shelf learns brands, flavors and packaging from labeled beverage catalogs
and uses them to categorize new products from their free-text names.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/shelf/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("brands-db", "", "brand vocabulary file")
	rootCmd.PersistentFlags().String("flavors-db", "", "flavor vocabulary file")
	rootCmd.PersistentFlags().String("knowledge-base", "", "knowledge base file")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("paths.brands_db", rootCmd.PersistentFlags().Lookup("brands-db"))
	_ = viper.BindPFlag("paths.flavors_db", rootCmd.PersistentFlags().Lookup("flavors-db"))
	_ = viper.BindPFlag("paths.knowledge_base", rootCmd.PersistentFlags().Lookup("knowledge-base"))

	rootCmd.AddCommand(trainCmd())
	rootCmd.AddCommand(categorizeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	interrupts.Stop()

	if err != nil {
		if !interrupts.WasInterrupted() {
			fmt.Fprintln(os.Stderr, errorMessage(err))
		}
		os.Exit(1)
	}
}

// errorMessage formats a failed run for the terminal. Input errors get a
// hint since nothing was processed.
func errorMessage(err error) string {
	msg := cli.FormatError(err.Error())
	if common.IsInputError(err) {
		msg += "\n" + cli.FormatWarning("Nothing was processed. Check the input file path and its columns.")
	}
	return msg
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/shelf", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// SHELF_PATHS_BRANDS_DB overrides paths.brands_db
	viper.SetEnvPrefix("SHELF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, viper.GetString("logging.format")); err != nil {
		return err
	}

	slog.SetDefault(slog.Default().With("run_id", uuid.NewString()))

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf %s\n", version)
		},
	}
}
