package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/ease"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	spritePad = lipgloss.NewStyle().Padding(0, 1)
	titleBase = lipgloss.NewStyle().Bold(true)
	panelBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	statusBase = lipgloss.NewStyle().Italic(true)
)

// GradientLines colours each line with a blend between from and to. Blend
// positions follow an in-out quadratic curve so the middle rows change
// fastest. Invalid hex colours leave the text unstyled.
func GradientLines(text, from, to string) string {
	start, err := colorful.Hex(from)
	if err != nil {
		return text
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return text
	}

	lines := strings.Split(text, "\n")
	n := len(lines)
	for i, line := range lines {
		t := 0.0
		if n > 1 {
			t = ease.InOutQuad(float64(i) / float64(n-1))
		}
		c := start.BlendLab(end, t).Clamped()
		lines[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(line)
	}
	return strings.Join(lines, "\n")
}

// Paint styles a sprite frame with the theme.
func Paint(frame string, th Theme, gradient bool) string {
	if gradient {
		return spritePad.Render(GradientLines(frame, th.SpriteFrom, th.SpriteTo))
	}
	return spritePad.Foreground(th.Primary).Render(frame)
}

// KeyHint renders "key desc" pairs as a help line.
func KeyHint(th Theme, pairs ...string) string {
	key := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	desc := lipgloss.NewStyle().Foreground(th.Muted)
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(desc.Render("  "))
		}
		b.WriteString(key.Render(pairs[i]))
		b.WriteString(desc.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// PopulationChart plots the number of lit dots per pose over one loop.
func PopulationChart(counts []int, caption string) string {
	if len(counts) == 0 {
		return ""
	}
	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(max(len(data)*2, 20)),
		asciigraph.Caption(caption),
	)
}
