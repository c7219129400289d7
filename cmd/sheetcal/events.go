package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sheetcal-go/internal/store"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

// eventView is the JSON shape of a stored event.
type eventView struct {
	ID        int64        `json:"id"`
	SheetID   string       `json:"sheet_id"`
	Title     string       `json:"title"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone,omitempty"`
	Date      models.Date  `json:"date"`
	Time      models.Clock `json:"time"`
	StartsAt  time.Time    `json:"starts_at"`
	Procedure string       `json:"procedure,omitempty"`
	Facility  string       `json:"facility,omitempty"`
	Color     string       `json:"color"`
}

func newEventsCmd(a *app) *cobra.Command {
	var (
		from    string
		to      string
		sheetID string
		limit   int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List stored events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := store.EventFilter{SheetID: sheetID, Limit: limit}
			if err := parseDateFlag(from, "--from", &filter.From); err != nil {
				return err
			}
			if err := parseDateFlag(to, "--to", &filter.To); err != nil {
				return err
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			events, err := st.ListEvents(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if asJSON {
				views := make([]eventView, 0, len(events))
				for _, e := range events {
					views = append(views, eventView{
						ID:        e.ID,
						SheetID:   e.SheetID,
						Title:     e.Title,
						Name:      e.Name,
						Phone:     e.Phone,
						Date:      e.Date,
						Time:      e.Time,
						StartsAt:  startsAt(e, a.loc),
						Procedure: e.Procedure,
						Facility:  e.Facility,
						Color:     e.Color,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTIME\tTITLE\tPHONE\tPROCEDURE")
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Date, e.Time, e.Title, e.Phone, e.Procedure)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date to list (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date to list (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sheetID, "sheet", "", "Only list events of this sheet id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of events (0: no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func parseDateFlag(value, flag string, dst *models.Date) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if err := dst.UnmarshalText([]byte(value)); err != nil {
		return fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", flag, value)
	}
	return nil
}

func startsAt(e store.Event, loc *time.Location) time.Time {
	return models.ExtractedRecord{Date: e.Date, Time: e.Time}.StartsAt(loc)
}
