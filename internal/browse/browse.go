// Package browse implements the full-screen paginated address book viewer.
package browse

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	emptyStyle = lipgloss.NewStyle().Italic(true)
)

// Model pages through pre-rendered address book pages. Pages come from
// book.Pages, so each one is already a block of "name: record" lines.
type Model struct {
	pages     []string
	paginator paginator.Model
}

// NewModel creates a pager over the given pages.
func NewModel(pages []string) Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = "●"
	p.InactiveDot = "○"
	p.SetTotalPages(len(pages))
	return Model{pages: pages, paginator: p}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles quit keys itself and delegates paging to the paginator.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.paginator, cmd = m.paginator.Update(msg)
	return m, cmd
}

// View renders the current page with a dot indicator and key help.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Address book"))
	b.WriteString("\n\n")
	if len(m.pages) == 0 {
		b.WriteString(emptyStyle.Render("The address book is empty."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.pages[m.paginator.Page])
		b.WriteString("\n")
		b.WriteString(m.paginator.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("left/right: page  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// Page returns the current page index.
func (m Model) Page() int { return m.paginator.Page }

// Run launches the pager in the alternate screen. It refuses to start when
// stdout is not a terminal.
func Run(pages []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := tea.NewProgram(NewModel(pages), tea.WithAltScreen()).Run()
	return err
}
