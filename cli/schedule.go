package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/schedule"
)

// NewScheduleCmd creates the "schedule" command.
func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run scheduled dispatch cycles until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
	cmd.Flags().String("otel-endpoint", "", "OTLP/HTTP endpoint for telemetry export (overrides config)")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	h, err := resolveHost(cmd)
	if err != nil {
		return err
	}
	reg, err := h.registry()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := setupTelemetry(ctx, cmd, h)
	if err != nil {
		warn("telemetry disabled: %v", err)
	}
	defer shutdownTelemetry(provider)

	out := cmd.OutOrStdout()
	entries, warnings := schedule.Plan(reg, time.Now().UTC())
	for _, w := range warnings {
		warn("unit %q has an invalid schedule %q: %s", w.UnitName, w.Expression, w.Cause)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No units declare a schedule; nothing to do.")
		return nil
	}
	fmt.Fprintf(out, "Scheduling %d unit(s); press Ctrl-C to stop.\n", len(entries))

	scheduler := schedule.New(h.cache, h.dispatcher, func(report dispatch.Report) {
		recordHistory(ctx, h, report)
		printReport(cmd, report)
	})
	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return exitError(exitRuntime, "scheduler stopped: %v", err)
	}
	return nil
}
