package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the "history" command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent dispatch cycles, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().Int("limit", 20, "Maximum number of records to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	h, err := resolveHost(cmd)
	if err != nil {
		return err
	}

	store, err := h.openHistory()
	if err != nil {
		return exitError(exitRuntime, "opening dispatch history: %v", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return exitError(exitRuntime, "reading dispatch history: %v", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No dispatch history yet.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "WHEN\tUNIT\tOUTCOME\tDURATION_MS\tERROR")
	for _, rec := range records {
		errCol := "-"
		if rec.ErrorKind != "" {
			errCol = fmt.Sprintf("%s: %s", rec.ErrorKind, rec.ErrorMessage)
		}
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%d\t%s\n",
			rec.DispatchedAt.UTC().Format(time.RFC3339),
			orDash(rec.UnitName),
			rec.Outcome,
			rec.DurationMS,
			errCol,
		)
	}
	if err := writer.Flush(); err != nil {
		return exitError(exitRuntime, "writing history: %v", err)
	}
	return nil
}
