package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starfall/internal/core"
)

// Painter converts Screen buffers to styled strings. Styles are cached per
// foreground colour since scenes use few distinct colours.
type Painter struct {
	background core.Color
	styles     map[core.Color]lipgloss.Style
}

// NewPainter creates a painter drawing over background. ColorDefault keeps
// the terminal's own background.
func NewPainter(background core.Color) *Painter {
	return &Painter{background: background, styles: make(map[core.Color]lipgloss.Style)}
}

// SetBackground changes the backdrop and drops cached styles.
func (p *Painter) SetBackground(c core.Color) {
	if c == p.background {
		return
	}
	p.background = c
	clear(p.styles)
}

func hexColor(c core.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", c.Hex()))
}

func (p *Painter) style(fg core.Color) lipgloss.Style {
	if s, ok := p.styles[fg]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if !fg.IsDefault() {
		s = s.Foreground(hexColor(fg))
	}
	if !p.background.IsDefault() {
		s = s.Background(hexColor(p.background))
	}
	p.styles[fg] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
