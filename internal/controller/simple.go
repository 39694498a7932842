package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySummary prints the owner/count summary table.
func (s *SimpleUI) DisplaySummary(manifest m.RunManifest, reports []m.OwnerReport) error {
	if len(reports) == 0 {
		s.cmd.Printf("no owned matches for %q (%d files matched)\n", manifest.Query, manifest.FilesMatched)
		return nil
	}

	s.cmd.Printf("\n%s", renderSummaryTable(manifest, reports))

	return nil
}

func renderSummaryTable(manifest m.RunManifest, reports []m.OwnerReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Owner", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, report := range reports {
		table.Append([]string{report.Owner, fmt.Sprintf("%d", report.Count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Owners %d", len(reports)),
		fmt.Sprintf("%d", manifest.TotalCount),
	})

	table.Render()

	return tableBuffer.String()
}
