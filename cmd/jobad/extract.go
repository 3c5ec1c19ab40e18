package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-parser/internal/ingestion"
	"github.com/jonathan/jobad-parser/internal/observability"
	"github.com/jonathan/jobad-parser/internal/parsing"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the raw fields found in an advertisement page",
	Long:  "Extract reads one saved advertisement page and prints the uncleaned field mapping as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc, err := ingestion.LoadFile(args[0])
	if err != nil {
		return err
	}

	mapping, err := parsing.Extract(doc.Markup)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", doc.JobID, err)
	}

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintFieldMapping(doc.JobID, mapping)
	}

	jsonBytes, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}
