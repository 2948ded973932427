package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/csmith/tagview/lastfm"
	"github.com/csmith/tagview/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	artistStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	chipStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#F7B801")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

// Card is one rendered lookup result
type Card struct {
	Artist string
	Title  string
	Tags   []string

	// Requested is what was submitted; Corrected is set when last.fm's
	// autocorrect answered for something else.
	Requested model.LookupRequest
	Corrected bool
}

// NewCard builds a card with one chip per tag, in result order
func NewCard(result model.TagResult) Card {
	return Card{
		Artist: result.Artist,
		Title:  result.Title,
		Tags:   append([]string{}, result.Tags...),
	}
}

// RenderResult turns a track.gettoptags payload into a card. The error wraps
// lastfm.ErrMalformedResponse when the payload lacks the expected fields.
func RenderResult(payload []byte) (Card, error) {
	result, err := lastfm.ParseTopTags(payload)
	if err != nil {
		return Card{}, err
	}
	return NewCard(result), nil
}

// View renders the card for a terminal of the given width
func (c Card) View(width int) string {
	lines := []string{artistStyle.Render(c.Artist) + titleStyle.Render(" · "+c.Title)}

	if c.Corrected {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("autocorrected from %q / %q", c.Requested.Artist, c.Requested.Title)))
	}

	// Border and padding take two columns either side
	lines = append(lines, c.chips(width-4))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// chips lays the tags out left to right, wrapping rows at width
func (c Card) chips(width int) string {
	if len(c.Tags) == 0 {
		return mutedStyle.Render("no tags")
	}

	var rows []string
	var row []string
	rowWidth := 0

	for _, tag := range c.Tags {
		chip := chipStyle.Render(tag)
		chipWidth := lipgloss.Width(chip)

		if len(row) > 0 && width > 0 && rowWidth+1+chipWidth > width {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}

		if len(row) > 0 {
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += chipWidth
	}

	rows = append(rows, strings.Join(row, " "))
	return strings.Join(rows, "\n")
}
