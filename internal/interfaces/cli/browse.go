package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kw3c.dev/cli/internal/application/services"
)

func newMessagesBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the message catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := a.load(cmd)
			if err != nil {
				return err
			}

			svc := container.CatalogService
			model := newBrowseModel(svc.Bundle(), svc.Locale().String(), svc.List())
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithContext(cmd.Context()),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}

// browseModel lists catalog entries with a type-to-filter search
type browseModel struct {
	bundle  string
	locale  string
	entries []services.MessageEntry
	visible []services.MessageEntry

	filter    string
	filtering bool
	selected  int
	offset    int

	windowWidth  int
	windowHeight int
}

func newBrowseModel(bundle, locale string, entries []services.MessageEntry) browseModel {
	m := browseModel{
		bundle:       bundle,
		locale:       locale,
		entries:      entries,
		windowHeight: 24,
		windowWidth:  100,
	}
	m.applyFilter()
	return m
}

// Init implements the Bubble Tea init method
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "/":
			m.filtering = true
			return m, nil

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "home", "g":
			m.selected = 0

		case "end", "G":
			m.selected = max(len(m.visible)-1, 0)
		}
		m.clampScroll()
	}

	return m, nil
}

func (m browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.applyFilter()
	case tea.KeyBackspace:
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

func (m *browseModel) applyFilter() {
	needle := strings.ToLower(m.filter)
	m.visible = m.visible[:0:0]
	for _, e := range m.entries {
		if needle == "" ||
			strings.Contains(strings.ToLower(string(e.Key)), needle) ||
			strings.Contains(strings.ToLower(e.Text), needle) {
			m.visible = append(m.visible, e)
		}
	}
	m.selected = 0
	m.offset = 0
}

func (m browseModel) pageSize() int {
	return max(m.windowHeight-6, 1)
}

func (m *browseModel) clampScroll() {
	page := m.pageSize()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+page {
		m.offset = m.selected - page + 1
	}
}

// View implements the Bubble Tea view method
func (m browseModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("Messages %s (%s)", m.bundle, m.locale)) +
		mutedStyle.Render(fmt.Sprintf("  %d of %d", len(m.visible), len(m.entries)))

	filter := mutedStyle.Render("Press / to filter")
	if m.filtering || m.filter != "" {
		filter = "Filter: " + m.filter
		if m.filtering {
			filter += "_"
		}
	}

	rows := []string{header, filter, ""}
	if len(m.visible) == 0 {
		rows = append(rows, mutedStyle.Render("  No messages match."))
	}
	end := min(m.offset+m.pageSize(), len(m.visible))
	for i := m.offset; i < end; i++ {
		e := m.visible[i]
		row := fmt.Sprintf("%-45s %s", e.Key, truncateString(e.Text, max(m.windowWidth-48, 10)))
		switch {
		case i == m.selected:
			row = selectedStyle.Render(row)
		case e.Missing:
			row = warningStyle.Render(row)
		}
		rows = append(rows, row)
	}

	footer := mutedStyle.Render("Controls: [↑↓] Navigate | [/] Filter | [q] Quit")
	rows = append(rows, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Selected returns the highlighted entry, if any
func (m browseModel) Selected() (services.MessageEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return services.MessageEntry{}, false
	}
	return m.visible[m.selected], true
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
