// Package controller provides output adapters for displaying audit results.
package controller

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

// UI defines how audit results are presented. Implementations can render a
// plain table or an interactive browser.
type UI interface {
	// DisplaySummary shows the per-owner match counts for a run.
	DisplaySummary(manifest m.RunManifest, reports []m.OwnerReport) error
}

// NewUI picks the interactive browser on a terminal and the plain table
// otherwise, so piped output stays machine-friendly.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
