package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

// =============================================================================
// PortfolioListModel - Interactive portfolio selection
// =============================================================================

// PortfolioListModel is the bubbletea model for picking a ranked portfolio.
type PortfolioListModel struct {
	Entries  []portfolio.Entry
	Cursor   int
	Offset   int
	Height   int
	Selected *portfolio.Portfolio
}

// NewPortfolioListModel creates a list over ranked portfolios.
func NewPortfolioListModel(entries []portfolio.Entry) PortfolioListModel {
	return PortfolioListModel{Entries: entries, Height: 15}
}

func (m PortfolioListModel) Init() tea.Cmd {
	return nil
}

func (m PortfolioListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Entries); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			m.Selected = m.Entries[m.Cursor].Portfolio
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m PortfolioListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Portfolio"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(styleDim.Render("  no portfolios match"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		names, addrs := len(e.Portfolio.RankNames()), len(e.Portfolio.RankBizAddrs())
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), e.Portfolio.Name(), strconv.Itoa(e.Buildings), strconv.Itoa(names), strconv.Itoa(addrs)})
	}

	headers := []string{"", "#", "Portfolio", "Buildings", "Names", "Addresses"}
	b.WriteString(portfolioTable(headers, rows, 2, m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
