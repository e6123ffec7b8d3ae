// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the experience-extractor CLI.
// Without a subcommand it starts the interactive menu; extract, batch, and
// history serve scripted use.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/experience-extractor/internal/console"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger receives diagnostics. It is replaced in PersistentPreRunE.
var logger = zap.NewNop()

// rootCmd is the base command for the experience-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "experience-extractor",
	Short: "Extract years-of-experience ranges from job descriptions",
	Long: `experience-extractor reads job descriptions and reports the years of
experience they ask for as a normalized range such as "3 - 5 Years".

Run without a subcommand for the interactive menu. Use extract for single
texts or files, batch for a directory of job descriptions, and history to
list earlier batch results.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: runMenu,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", configUsage())
	flags.Bool("verbose", false, "log diagnostics to stderr")
	flags.String("input-dir", defaults.InputDir, "directory of job descriptions (.txt, .html)")
	flags.String("output-file", defaults.OutputFile, "CSV file results are appended to")
	flags.String("history-db", defaults.HistoryDB, "SQLite run history database (empty disables history)")
	flags.String("segmenter", defaults.Segmenter, "sentence segmenter: punkt or simple")
	flags.Int("workers", defaults.Workers, "documents extracted concurrently")

	for key, flag := range map[string]string{
		"input_dir":   "input-dir",
		"output_file": "output-file",
		"history_db":  "history-db",
		"segmenter":   "segmenter",
		"workers":     "workers",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
		}
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		for _, dir := range configDirs() {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("EXPERIENCE_EXTRACTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configName is the config file name searched for in configDirs.
const configName = "experience-extractor"

// configDirs lists the config search directories in lookup order.
func configDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "experience-extractor"))
	}
	return dirs
}

func configUsage() string {
	file := configName + ".yaml"
	return "config file (default: ./" + file + " or ~/.config/experience-extractor/" + file + ")"
}

// newLogger builds the diagnostics logger: development output when
// verbose, otherwise warnings and errors only.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	session := &console.Session{
		Prompter:   console.NewPrompter(os.Stdin, os.Stdout),
		Out:        os.Stdout,
		Extractor:  ext,
		Options:    batchOptions(cfg),
		InputDir:   cfg.InputDir,
		OutputFile: cfg.OutputFile,
		Save: func(ctx context.Context, source string, outcomes []types.Outcome) error {
			_, err := persist(ctx, cfg, source, outcomes)
			return err
		},
	}
	return session.Run(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
