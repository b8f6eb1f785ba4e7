package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/schedule"
	"github.com/toolrack/toolrack/unit"
)

// NewListCmd creates the "list" command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered units in dispatch order",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("errors", false, "Also show units that failed to load")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	h, err := resolveHost(cmd)
	if err != nil {
		return err
	}
	reg, err := h.registry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if reg.Len() == 0 {
		fmt.Fprintln(out, dispatch.NoUnitsGuidance)
	} else {
		writer := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
		fmt.Fprintln(writer, "NAME\tID\tPRIORITY\tSCHEDULE\tSOURCE\tDESCRIPTION")
		for _, u := range reg.Units() {
			fmt.Fprintf(
				writer,
				"%s\t%s\t%d\t%s\t%s\t%s\n",
				u.DisplayName,
				formatNumericID(u.NumericID),
				u.Priority,
				orDash(u.Schedule),
				u.Source,
				orDash(u.Description),
			)
		}
		if err := writer.Flush(); err != nil {
			return exitError(exitRuntime, "writing unit list: %v", err)
		}
		_, warnings := schedule.Plan(reg, time.Now().UTC())
		for _, w := range warnings {
			warn("unit %q has an invalid schedule %q: %s", w.UnitName, w.Expression, w.Cause)
		}
	}

	showErrors, _ := cmd.Flags().GetBool("errors")
	if showErrors {
		printLoadErrors(out, reg.Errors())
	}
	return nil
}

func printLoadErrors(out io.Writer, errs []unit.LoadError) {
	if len(errs) == 0 {
		fmt.Fprintln(out, "\nAll candidates loaded cleanly.")
		return
	}
	fmt.Fprintf(out, "\n%d candidate(s) failed to load:\n", len(errs))
	for _, loadErr := range errs {
		fmt.Fprintf(out, "  %s\n", loadErr.String())
	}
}

func formatNumericID(id int) string {
	if id == unit.DefaultNumericID {
		return "-"
	}
	return strconv.Itoa(id)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
