package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	alertStyle  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Padding(0, 2)
)

const defaultWidth = 80

func (w *Widget) View() string {
	width := w.width
	if width <= 0 {
		width = defaultWidth
	}

	sections := []string{headerStyle.Render("Last.fm top tags")}

	if len(w.alerts) > 0 {
		sections = append(sections, w.alertView(width))
	}

	sections = append(sections,
		w.inputs[fieldArtist].View(),
		w.inputs[fieldTitle].View(),
		w.statusView(),
		w.help.View(w.keys),
	)

	for _, card := range w.cards {
		sections = append(sections, card.View(width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (w *Widget) statusView() string {
	var parts []string
	if w.state == Loading {
		parts = append(parts, fmt.Sprintf("%s looking up %d track(s)", w.spinner.View(), w.inFlight))
	}
	if w.importing {
		parts = append(parts, "importing")
	}
	return statusStyle.Render(strings.Join(parts, " · "))
}

func (w *Widget) alertView(width int) string {
	body := w.alerts[0].String()
	if more := len(w.alerts) - 1; more > 0 {
		body += fmt.Sprintf("\n(%d more)", more)
	}
	body += "\n\n" + statusStyle.Render("press enter to dismiss")
	return alertStyle.Width(max(1, min(width-2, 76))).Render(body)
}
