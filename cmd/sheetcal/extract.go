package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/output"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		outputPath string
		pretty     bool
		sheet      string
		label      string
		sheetsDir  string
	)
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx|input.csv]",
		Short: "Extract records and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.extractOptions(sheet, label)
			if err != nil {
				return err
			}
			wb, err := extractFile(cmd.Context(), a, args[0], opts)
			if err != nil {
				return err
			}

			jsonData, err := output.ToJSON(wb, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else if sheetsDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			}

			if sheetsDir != "" {
				if err := writeSheetFiles(wb, sheetsDir, pretty); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Only extract this sheet")
	cmd.Flags().StringVar(&label, "label", "", "Facility fallback label (default: sheet name)")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	return cmd
}

// extractFile runs the workbook driver. Sheets that failed are logged;
// the command fails only when nothing could be extracted.
func extractFile(ctx context.Context, a *app, path string, opts sheetcal.Options) (*models.WorkbookData, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	wb, err := sheetcal.ExtractFile(ctx, path, opts)
	if wb == nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	if err != nil {
		a.log.Warn().Err(err).Str("file", path).Msg("some sheets were not extracted")
	}
	return wb, nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
