package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/history"
	"github.com/toolrack/toolrack/telemetry"
)

// NewRunCmd creates the "run" command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <unit-name>",
		Short: "Dispatch one unit by display name",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().Bool("json", false, "Emit the dispatch report as JSON")
	cmd.Flags().String("otel-endpoint", "", "OTLP/HTTP endpoint for telemetry export (overrides config)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	h, err := resolveHost(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, err := setupTelemetry(ctx, cmd, h)
	if err != nil {
		warn("telemetry disabled: %v", err)
	}
	defer shutdownTelemetry(provider)

	report, err := h.dispatcher.Dispatch(ctx, args[0])
	if err != nil {
		return exitError(exitDiscovery, "%v", err)
	}
	recordHistory(ctx, h, report)

	if report.Outcome == dispatch.OutcomeNotFound {
		return exitError(exitValidation, "%s", report.Guidance)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return exitError(exitRuntime, "encoding dispatch report: %v", err)
		}
	} else {
		printReport(cmd, report)
	}

	if report.Outcome == dispatch.OutcomeFailed {
		return exitError(exitDispatch, "unit %q failed: %s", report.UnitName, report.Failure.Message)
	}
	return nil
}

func printReport(cmd *cobra.Command, report dispatch.Report) {
	out := cmd.OutOrStdout()
	switch report.Outcome {
	case dispatch.OutcomeNoUnits, dispatch.OutcomeNotFound:
		fmt.Fprintln(out, report.Guidance)
	case dispatch.OutcomeOK:
		fmt.Fprintf(out, "Dispatched %s (cycle %s) in %dms\n", report.UnitName, report.CycleID, report.DurationMS)
		for _, line := range outputLines(report.Outputs) {
			fmt.Fprintf(out, "  %s\n", line)
		}
	case dispatch.OutcomeFailed:
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Unit %s failed (cycle %s, kind=%s)\n", report.UnitName, report.CycleID, report.Failure.Kind)
		fmt.Fprintf(errOut, "  %s\n", report.Failure.Message)
		if report.Failure.Trace != "" {
			fmt.Fprintln(errOut, report.Failure.Trace)
		}
		fmt.Fprintf(errOut, "hint: %s\n", report.Failure.Hint)
	}
}

func outputLines(outputs map[string]any) []string {
	if len(outputs) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(outputs, "  ", "  ")
	if err != nil {
		return []string{fmt.Sprintf("%v", outputs)}
	}
	return []string{string(data)}
}

// recordHistory appends the report to the dispatch log. Best-effort: failures
// are reported as warnings and never fail the command.
func recordHistory(ctx context.Context, h *host, report dispatch.Report) {
	store, err := h.openHistory()
	if err != nil {
		warn("dispatch history unavailable: %v", err)
		return
	}
	defer store.Close()

	rec := history.Record{
		CycleID:      report.CycleID,
		UnitName:     report.UnitName,
		Outcome:      string(report.Outcome),
		DurationMS:   report.DurationMS,
		DispatchedAt: time.Now().UTC(),
	}
	if report.Failure != nil {
		rec.ErrorKind = report.Failure.Kind
		rec.ErrorMessage = report.Failure.Message
	}
	if err := store.Append(ctx, rec); err != nil {
		warn("recording dispatch history: %v", err)
	}
}

func setupTelemetry(ctx context.Context, cmd *cobra.Command, h *host) (*telemetry.Provider, error) {
	endpoint, _ := cmd.Flags().GetString("otel-endpoint")
	if endpoint == "" {
		endpoint = h.cfg.OTLPEndpoint
	}
	return telemetry.Setup(ctx, endpoint)
}

func shutdownTelemetry(provider *telemetry.Provider) {
	if provider == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(shutdownCtx); err != nil {
		warn("telemetry shutdown: %v", err)
	}
}
