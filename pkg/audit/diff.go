// Package audit explains what changed on an object between two points
// in time by diffing two of its audit trail snapshots.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
)

// Change is one field-level difference between two snapshots.
type Change struct {
	Field  string
	Before any
	After  any
}

// Diff returns the field-level changes from a to b, flattening nested
// objects into dotted paths. Fields only present on one side diff
// against nil.
func Diff(a, b *mpt.AuditRecord) []Change {
	before := flatten("", a.State)
	after := flatten("", b.State)

	fields := map[string]bool{}
	for f := range before {
		fields[f] = true
	}
	for f := range after {
		fields[f] = true
	}

	var changes []Change
	for field := range fields {
		oldVal, newVal := before[field], after[field]
		if fmt.Sprintf("%v", oldVal) != fmt.Sprintf("%v", newVal) {
			changes = append(changes, Change{Field: field, Before: oldVal, After: newVal})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func flatten(prefix string, state map[string]any) map[string]any {
	flat := map[string]any{}
	for key, value := range state {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(path, nested) {
				flat[k] = v
			}
			continue
		}
		flat[path] = value
	}
	return flat
}

var (
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// Render formats changes as one removed and one added line per
// changed field.
func Render(changes []Change) string {
	if len(changes) == 0 {
		return "No differences\n"
	}
	var b strings.Builder
	for _, c := range changes {
		if c.Before != nil {
			b.WriteString(removedStyle.Render(fmt.Sprintf("- %s = %v", c.Field, c.Before)))
			b.WriteString("\n")
		}
		if c.After != nil {
			b.WriteString(addedStyle.Render(fmt.Sprintf("+ %s = %v", c.Field, c.After)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Compare fetches two snapshots of an object and diffs them.
func Compare(ctx context.Context, api *mpt.AuditAPI, objectID, recordA, recordB string) ([]Change, error) {
	a, err := api.Record(ctx, objectID, recordA)
	if err != nil {
		return nil, fmt.Errorf("audit record %s: %w", recordA, err)
	}
	b, err := api.Record(ctx, objectID, recordB)
	if err != nil {
		return nil, fmt.Errorf("audit record %s: %w", recordB, err)
	}
	return Diff(a, b), nil
}
