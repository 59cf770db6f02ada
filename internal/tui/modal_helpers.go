package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ModalConfig describes a centered modal box
type ModalConfig struct {
	Title       string
	Body        string
	Footer      string
	BorderColor lipgloss.AdaptiveColor
	// Width of the box; zero means the narrow standard width
	Width int
	// Height of the box; zero lets the content decide
	Height int
}

// renderModal renders a bordered modal centered in the terminal
func renderModal(cfg ModalConfig, totalWidth, totalHeight int) string {
	width := cfg.Width
	if width <= 0 {
		width = min(totalWidth-ModalWidthMarginNarrow, ModalMaxWidth)
	}

	content := styleTitle.Render(cfg.Title) + "\n\n" + cfg.Body
	if cfg.Footer != "" {
		content += "\n\n" + styleSubtle.Render(cfg.Footer)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cfg.BorderColor).
		Width(width).
		Padding(1, 2)
	if cfg.Height > 0 {
		style = style.Height(cfg.Height)
	}

	return lipgloss.Place(
		totalWidth,
		totalHeight,
		lipgloss.Center,
		lipgloss.Center,
		style.Render(content),
	)
}
