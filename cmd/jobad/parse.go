package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-parser/internal/ingestion"
	"github.com/jonathan/jobad-parser/internal/observability"
	"github.com/jonathan/jobad-parser/internal/pipeline"
	"github.com/jonathan/jobad-parser/internal/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and clean one advertisement page",
	Long:  "Parse extracts the fields of one saved advertisement page, cleans them and prints the record JSON, or writes it to <out>/<jobid>.json.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseJobID  string
	parseOutDir string
	parseEnrich enrichFlags
)

func init() {
	parseCmd.Flags().StringVar(&parseJobID, "jobid", "", "Job ID (defaults to the file name)")
	parseCmd.Flags().StringVarP(&parseOutDir, "out", "o", "", "Directory to write the record to instead of stdout")
	parseEnrich.register(parseCmd)

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := parseEnrich.cleaningOptions()
	if err != nil {
		return err
	}

	doc, err := ingestion.LoadFile(args[0])
	if err != nil {
		return err
	}
	jobID := doc.JobID
	if parseJobID != "" {
		jobID = parseJobID
	}

	rec, err := pipeline.ParseDocument(jobID, doc.Markup, opts)
	if err != nil {
		return err
	}
	if err := schemas.ValidateRecord(rec); err != nil {
		return fmt.Errorf("record does not validate against schema: %w", err)
	}

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecord(rec)
	}

	if parseOutDir != "" {
		path, err := ingestion.WriteRecord(parseOutDir, rec)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", path)
		return nil
	}

	jsonBytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}
