package controller

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

var (
	tuiBaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// TUI implements UI using Bubble Tea for interactive browsing of a results
// directory: a summary table of owners, with a per-owner detail table behind
// enter.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplaySummary runs the interactive browser until the user quits.
func (t *TUI) DisplaySummary(manifest m.RunManifest, reports []m.OwnerReport) error {
	model := newBrowserModel(manifest, reports)

	if f, ok := t.output.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			model = model.resize(width, height)
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// browserModel is the Bubble Tea model for the report browser. It holds one
// table per owner plus the summary table and toggles between them.
type browserModel struct {
	manifest m.RunManifest
	reports  []m.OwnerReport

	summary table.Model
	detail  table.Model

	// showingDetail is true while a per-owner table is on screen.
	showingDetail bool
	selectedOwner string

	width  int
	height int
}

func newBrowserModel(manifest m.RunManifest, reports []m.OwnerReport) browserModel {
	rows := make([]table.Row, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, table.Row{
			report.Owner,
			strconv.Itoa(report.Count),
			strconv.Itoa(len(report.Files)),
		})
	}

	summary := table.New(
		table.WithColumns([]table.Column{
			{Title: "Owner", Width: 32},
			{Title: "Matches", Width: 8},
			{Title: "Files", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(len(rows))),
	)
	summary.SetStyles(browserTableStyles())

	return browserModel{
		manifest: manifest,
		reports:  reports,
		summary:  summary,
	}
}

func browserTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return styles
}

func tableHeight(rows int) int {
	const maxHeight = 20

	if rows < 1 {
		return 1
	}

	if rows > maxHeight {
		return maxHeight
	}

	return rows
}

// Init implements tea.Model.
func (b browserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return b.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return b, tea.Quit

		case "enter":
			if !b.showingDetail {
				return b.enterDetail(), nil
			}

		case "esc", "backspace":
			if b.showingDetail {
				b.showingDetail = false
				return b, nil
			}

			return b, tea.Quit
		}
	}

	var cmd tea.Cmd

	if b.showingDetail {
		b.detail, cmd = b.detail.Update(msg)
	} else {
		b.summary, cmd = b.summary.Update(msg)
	}

	return b, cmd
}

func (b browserModel) resize(width, height int) browserModel {
	b.width = width
	b.height = height

	return b
}

// enterDetail swaps the summary table for the selected owner's occurrence
// table.
func (b browserModel) enterDetail() browserModel {
	cursor := b.summary.Cursor()
	if cursor < 0 || cursor >= len(b.reports) {
		return b
	}

	report := b.reports[cursor]

	rows := make([]table.Row, 0, len(report.Files))
	for _, occurrence := range report.Files {
		rows = append(rows, table.Row{
			string(occurrence.File),
			joinLineNumbers(occurrence.Lines),
		})
	}

	detail := table.New(
		table.WithColumns([]table.Column{
			{Title: "File", Width: 48},
			{Title: "Lines", Width: 24},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(len(rows))),
	)
	detail.SetStyles(browserTableStyles())

	b.detail = detail
	b.selectedOwner = report.Owner
	b.showingDetail = true

	return b
}

// View implements tea.Model.
func (b browserModel) View() string {
	var view strings.Builder

	if b.showingDetail {
		view.WriteString(tuiTitleStyle.Render(fmt.Sprintf("%s - %s", b.selectedOwner, b.manifest.Query)))
		view.WriteString("\n")
		view.WriteString(tuiBaseStyle.Render(b.detail.View()))
		view.WriteString("\n")
		view.WriteString(tuiHelpStyle.Render("esc: back • q: quit"))
	} else {
		view.WriteString(tuiTitleStyle.Render(fmt.Sprintf("owngrep results - query %q", b.manifest.Query)))
		view.WriteString("\n")
		view.WriteString(tuiBaseStyle.Render(b.summary.View()))
		view.WriteString("\n")
		view.WriteString(tuiHelpStyle.Render("enter: owner detail • q: quit"))
	}

	view.WriteString("\n")

	return view.String()
}

func joinLineNumbers(lines []int) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strconv.Itoa(line))
	}

	return strings.Join(parts, ", ")
}
