package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/punterlabs/bankroll/internal/currency"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

const defaultWidth = 60

// RenderLine draws a series as a line of block characters scaled
// between the series extremes, with currency-formatted bounds.
func RenderLine(s Series, cur currency.Currency, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if len(s.Points) == 0 {
		return titleStyle.Render(s.Title) + "\n(no data)"
	}

	minV, maxV := s.Extremes()
	span := maxV - minV
	levels := []rune("▁▂▃▄▅▆▇█")

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")

	step := 1
	if len(s.Points) > width {
		step = (len(s.Points) + width - 1) / width
	}
	for i := 0; i < len(s.Points); i += step {
		value := s.Points[i].Value
		idx := 0
		if span > 0 {
			idx = int((value - minV) / span * float64(len(levels)-1))
		}
		b.WriteRune(levels[idx])
	}
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("low %s · high %s · %d points",
		currency.Format(minV, cur), currency.Format(maxV, cur), len(s.Points))))
	return b.String()
}

// RenderDistribution draws a proportional single-row bar with a legend,
// one segment per point.
func RenderDistribution(s Series, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	total := s.Total()

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")

	styles := []lipgloss.Style{gainStyle, lossStyle, pendingStyle}
	if total > 0 {
		for i, p := range s.Points {
			segment := int(p.Value / total * float64(width))
			if p.Value > 0 && segment == 0 {
				segment = 1
			}
			b.WriteString(styles[i%len(styles)].Render(strings.Repeat("█", segment)))
		}
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(s.Points))
	for i, p := range s.Points {
		legend = append(legend, styles[i%len(styles)].Render(
			fmt.Sprintf("%s %d (%s)", p.Label, int(p.Value), percentLabel(p.Value, total))))
	}
	b.WriteString(strings.Join(legend, axisStyle.Render(" · ")))
	return b.String()
}

// RenderBars draws a horizontal bar chart with signed values: gains
// grow right in green, losses in red. Labels are currency-formatted.
func RenderBars(s Series, cur currency.Currency, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if len(s.Points) == 0 {
		return titleStyle.Render(s.Title) + "\n(no data)"
	}

	maxAbs := 0.0
	for _, p := range s.Points {
		if abs := p.Value; abs < 0 {
			if -abs > maxAbs {
				maxAbs = -abs
			}
		} else if abs > maxAbs {
			maxAbs = abs
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	for _, p := range s.Points {
		length := int(p.Value / maxAbs * float64(barWidth))
		style := gainStyle
		if length < 0 {
			length = -length
			style = lossStyle
		}
		if length == 0 && p.Value != 0 {
			length = 1
		}
		b.WriteString(fmt.Sprintf("\n%-12s %s %s",
			p.Label,
			style.Render(strings.Repeat("▇", length)),
			axisStyle.Render(currency.Format(p.Value, cur))))
	}
	return b.String()
}
