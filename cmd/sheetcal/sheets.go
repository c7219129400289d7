package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSheetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Manage synced sheets",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List synced sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			sheets, err := st.ListSheets(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEVENTS\tCOLOR\tSOURCE")
			for _, sh := range sheets {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", sh.ID, sh.Name, sh.EventCount, sh.Color, sh.Source)
			}
			return tw.Flush()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [sheet-id]",
		Short: "Delete a synced sheet and its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteSheet(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.log.Info().Str("sheet_id", args[0]).Msg("sheet deleted")
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, deleteCmd)
	return cmd
}
