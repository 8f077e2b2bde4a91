// Package stats tallies sync outcomes per file and renders the
// end-of-run summary table.
package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Outcome is the terminal state of one synced record.
type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// Warning kinds recorded alongside the tallies.
const (
	WarnStaleID         = "stale_id"
	WarnDuplicateRemote = "duplicate_remote"
	WarnWriteBack       = "write_back"
)

// FileStats holds the tallies for one workbook.
type FileStats struct {
	File     string
	Created  int
	Updated  int
	Skipped  int
	Failed   int
	Warnings []string
}

func (s *FileStats) Record(outcome Outcome) {
	switch outcome {
	case Created:
		s.Created++
	case Updated:
		s.Updated++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

func (s *FileStats) Warn(kind string) {
	s.Warnings = append(s.Warnings, kind)
}

// Collector aggregates per-file tallies over a run.
type Collector struct {
	files []*FileStats
}

func New() *Collector {
	return &Collector{}
}

// File opens (or returns) the tally bucket for a workbook path.
func (c *Collector) File(path string) *FileStats {
	for _, fs := range c.files {
		if fs.File == path {
			return fs
		}
	}
	fs := &FileStats{File: path}
	c.files = append(c.files, fs)
	return fs
}

func (c *Collector) Files() []*FileStats { return c.files }

// HasFailures reports whether any file recorded a failed outcome.
func (c *Collector) HasFailures() bool {
	for _, fs := range c.files {
		if fs.Failed > 0 {
			return true
		}
	}
	return false
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// Render returns the human-readable end-of-run summary.
func (c *Collector) Render() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-40s %8s %8s %8s %8s", "File", "Created", "Updated", "Skipped", "Failed")))
	b.WriteString("\n")
	for _, fs := range c.files {
		line := fmt.Sprintf("%-40s %8d %8d %8d %8d", fs.File, fs.Created, fs.Updated, fs.Skipped, fs.Failed)
		if fs.Failed > 0 {
			b.WriteString(failStyle.Render(line))
		} else if fs.Created+fs.Updated > 0 {
			b.WriteString(okStyle.Render(line))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
		for _, warning := range fs.Warnings {
			b.WriteString(warnStyle.Render("  warning: " + warning))
			b.WriteString("\n")
		}
	}
	return b.String()
}
