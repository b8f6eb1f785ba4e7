package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/unit"
)

// NewInspectCmd creates the "inspect" command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <unit-name>",
		Short: "Show one unit's resolved metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

// inspectView is the operator-facing shape of one registry entry.
type inspectView struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
	NumericID   int    `json:"numeric_id,omitempty"`
	Source      string `json:"source"`
	Schedule    string `json:"schedule,omitempty"`
	Transport   string `json:"transport"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	h, err := resolveHost(cmd)
	if err != nil {
		return err
	}
	reg, err := h.registry()
	if err != nil {
		return err
	}

	selected, ok := reg.Get(args[0])
	if !ok {
		return exitError(exitValidation, "unit %q is not in the registry; run the list command for available units", args[0])
	}

	view := inspectView{
		DisplayName: selected.DisplayName,
		Description: selected.Description,
		Priority:    selected.Priority,
		Source:      selected.Source,
		Schedule:    selected.Schedule,
		Transport:   string(selected.Runner.Kind()),
	}
	if selected.NumericID != unit.DefaultNumericID {
		view.NumericID = selected.NumericID
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(view); err != nil {
		return exitError(exitRuntime, "encoding unit view: %v", err)
	}
	return nil
}
