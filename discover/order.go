package discover

import (
	"slices"
	"strings"

	"github.com/toolrack/toolrack/unit"
)

// OrderUnits sorts units into the canonical presentation order: ascending by
// (numeric id, priority, display name). The numeric id extracted from the
// source file name dominates, so the file-naming convention controls order
// regardless of declared priority; the display-name key makes the order a
// strict total order (names are unique after registry insertion).
func OrderUnits(units []unit.Unit) {
	slices.SortFunc(units, func(a, b unit.Unit) int {
		if a.NumericID != b.NumericID {
			return a.NumericID - b.NumericID
		}
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
}
