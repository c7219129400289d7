package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetcal-go/internal/store"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

func newSyncCmd(a *app) *cobra.Command {
	var (
		color string
		sheet string
		label string
	)
	cmd := &cobra.Command{
		Use:   "sync [input.xlsx|input.csv]",
		Short: "Extract records and replace the stored events of every sheet",
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

			source, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			names := make([]string, 0, len(wb.Sheets))
			for name := range wb.Sheets {
				names = append(names, name)
			}
			sort.Strings(names)

			ctx := cmd.Context()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SHEET\tID\tRECORDS\tRUN")
			for _, name := range names {
				sh, err := st.UpsertSheet(ctx, source, name, color)
				if err != nil {
					return err
				}
				records := wb.Sheets[name].Records
				runID, err := st.ReplaceRecords(ctx, sh.ID, records)
				if err != nil {
					return fmt.Errorf("syncing sheet %q: %w", name, err)
				}
				a.log.Info().
					Str("sheet", name).
					Str("sheet_id", sh.ID).
					Str("run_id", runID).
					Int("records", len(records)).
					Msg("sheet synced")
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", name, sh.ID, len(records), runID)
			}

			if sheet == "" {
				if err := clearStaleSheets(ctx, a, st, source, wb, tw); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Calendar color tag for the synced sheets")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Only sync this sheet")
	cmd.Flags().StringVar(&label, "label", "", "Facility fallback label (default: sheet name)")
	return cmd
}

// clearStaleSheets empties the events of registered sheets of source that
// produced no result this run, so skipped or failed sheets do not keep
// records from an earlier sync.
func clearStaleSheets(ctx context.Context, a *app, st store.Store, source string, wb *models.WorkbookData, w io.Writer) error {
	sheets, err := st.ListSheets(ctx)
	if err != nil {
		return err
	}
	for _, sh := range sheets {
		if sh.Source != source {
			continue
		}
		if _, ok := wb.Sheets[sh.Name]; ok {
			continue
		}
		runID, err := st.ReplaceRecords(ctx, sh.ID, nil)
		if err != nil {
			return fmt.Errorf("clearing sheet %q: %w", sh.Name, err)
		}
		a.log.Warn().
			Str("sheet", sh.Name).
			Str("sheet_id", sh.ID).
			Int("cleared", sh.EventCount).
			Msg("sheet produced no records, stored events cleared")
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", sh.Name, sh.ID, 0, runID)
	}
	return nil
}
