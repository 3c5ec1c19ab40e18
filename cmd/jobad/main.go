// Package main provides the jobad command line tool, which extracts and
// cleans saved jobs.ac.uk advertisement pages.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-parser/internal/cleaning"
	"github.com/jonathan/jobad-parser/internal/config"
	"github.com/jonathan/jobad-parser/internal/matching"
)

var rootCmd = &cobra.Command{
	Use:               "jobad",
	Short:             "Job advertisement parser",
	Long:              "jobad extracts structured fields from saved jobs.ac.uk advertisement pages and cleans them into validated records.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	configPath string
	verbose    bool

	// settings is the merged configuration for the running command.
	settings config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings merges the config file, environment and defaults, and sets
// up logging. Command flags are applied on top by each command.
func loadSettings(cmd *cobra.Command, _ []string) error {
	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fileCfg = loaded
	}
	settings = fileCfg.MergeWithDefaults(config.Defaults())
	if settings.DatabaseURL == "" {
		settings.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if verbose {
		settings.Verbose = true
	}

	level := slog.LevelInfo
	if settings.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	return settings.Validate()
}

// enrichFlags are shared by the commands that clean records.
type enrichFlags struct {
	enrich       bool
	universities string
	postcodes    string
}

func (f *enrichFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enrich, "enrich", false, "Add university, postcode, in_uk and not_student fields")
	cmd.Flags().StringVar(&f.universities, "universities", "", "University list, one name per line")
	cmd.Flags().StringVar(&f.postcodes, "postcodes", "", "PROVIDER_NAME,POSTCODE CSV")
}

// cleaningOptions applies the flags to settings and loads the reference
// data when enrichment is on.
func (f *enrichFlags) cleaningOptions() (cleaning.Options, error) {
	if f.enrich {
		settings.Enrich = true
	}
	if f.universities != "" {
		settings.Universities = f.universities
	}
	if f.postcodes != "" {
		settings.Postcodes = f.postcodes
	}

	opts := cleaning.Options{
		Enrich:              settings.Enrich,
		UniversityThreshold: settings.UniversityThreshold,
		PostcodeThreshold:   settings.PostcodeThreshold,
	}
	if !opts.Enrich {
		return opts, nil
	}
	dir, err := matching.LoadDirectory(settings.Universities, settings.Postcodes)
	if err != nil {
		return cleaning.Options{}, fmt.Errorf("failed to load reference data: %w", err)
	}
	slog.Debug("loaded reference data", "universities", len(dir.Names()))
	opts.Directory = dir
	return opts, nil
}
