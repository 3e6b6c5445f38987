package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	styles "github.com/charmbracelet/lipgloss"
	"github.com/keilerkonzept/topk/heap"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	greenColor    = styles.AdaptiveColor{Light: "2", Dark: "10"}
	yellowColor   = styles.AdaptiveColor{Light: "3", Dark: "11"}
	redColor      = styles.AdaptiveColor{Light: "1", Dark: "9"}

	selectedFg = styles.NewStyle().Foreground(selectedColor)
	borderFg   = styles.NewStyle().Foreground(borderColor)
	heroStyle  = styles.NewStyle().Bold(true).Foreground(selectedColor)
	chipStyle  = styles.NewStyle().
			Border(styles.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	panelStyle = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			BorderForeground(borderColor)
	factStyle = styles.NewStyle().
			Border(styles.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	errStyle = styles.NewStyle().Foreground(redColor)
)

func barColor(c contextscale.BarColor) styles.TerminalColor {
	switch c {
	case contextscale.Green:
		return greenColor
	case contextscale.Yellow:
		return yellowColor
	default:
		return redColor
	}
}

// renderHero shows the budget and the chips revealed so far.
func renderHero(v contextscale.HeroView, elapsed time.Duration, width int) string {
	title := borderFg.Render("Your context window holds ") + heroStyle.Render(v.Number+" tokens")
	if len(v.Chips) == 0 {
		return styles.JoinVertical(styles.Left, title, borderFg.Render("Not even a tweet fits. Slide right."))
	}
	var chips []string
	used := 0
	for _, c := range v.Chips {
		if c.Delay > elapsed {
			break
		}
		text := c.Icon + " "
		if c.Count != "" {
			text += selectedFg.Render(c.Count) + " "
		}
		chip := chipStyle.Render(text + c.Name)
		w := styles.Width(chip)
		if used+w > width && len(chips) > 0 {
			break
		}
		used += w
		chips = append(chips, chip)
	}
	return styles.JoinVertical(styles.Left, title, styles.JoinHorizontal(styles.Top, chips...))
}

// renderSlider draws the track and its labels.
func renderSlider(l contextscale.SliderLabels, width int, flash bool) string {
	label := " " + l.Short
	cells := max(2, width-runewidth.StringWidth(label)-2)
	knob := int(math.Round(min(100, max(0, l.Position)) / 100 * float64(cells-1)))

	knobStyle := selectedFg
	if flash {
		knobStyle = knobStyle.Reverse(true)
	}
	track := selectedFg.Render(strings.Repeat("━", knob)) +
		knobStyle.Render("●") +
		borderFg.Render(strings.Repeat("─", cells-1-knob))

	scale := contextscale.ShortForm(contextscale.MinTokens)
	end := contextscale.ShortForm(contextscale.MaxTokens)
	info := heroStyle.Render(l.Value) + "  " + borderFg.Render(l.Words)
	gap := max(1, width-runewidth.StringWidth(l.Value)-runewidth.StringWidth(l.Words)-len(scale)-len(end)-6)
	labels := borderFg.Render(scale) + "  " + info + strings.Repeat(" ", gap) + borderFg.Render(end)
	return styles.JoinVertical(styles.Left, " "+track+label, labels)
}

// renderFits lists every comparison with its fit status and a fill bar.
func renderFits(v contextscale.FitsView, width int) string {
	const (
		statusWidth = 8
		barCells    = 12
	)
	nameWidth := max(8, width-statusWidth-barCells-20)
	var sb strings.Builder
	for i, row := range v.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := runewidth.FillRight(runewidth.Truncate(row.Icon+" "+row.Name, nameWidth, "…"), nameWidth)
		size := fmt.Sprintf("%16s", row.Size)

		status := fmt.Sprintf("%*s", statusWidth, row.Label)
		switch row.State {
		case contextscale.FitsMultiple:
			status = styles.NewStyle().Foreground(greenColor).Bold(true).Render(status)
		case contextscale.FitsOnce:
			status = styles.NewStyle().Foreground(greenColor).Render(status)
		default:
			status = styles.NewStyle().Foreground(redColor).Render(status)
		}

		filled := int(math.Round(row.FillPct / 100 * barCells))
		bar := styles.NewStyle().Foreground(barColor(row.Color)).Render(strings.Repeat("▰", filled)) +
			borderFg.Render(strings.Repeat("▱", barCells-filled))

		sb.WriteString(name + " " + borderFg.Render(size) + " " + status + " " + bar)
	}
	return sb.String()
}

// renderEstimate shows the counts for the typed text and a card per model.
func renderEstimate(v contextscale.EstimatorView, words []heap.Item, exact *exactCount, width int) string {
	stats := fmt.Sprintf("Words: %s   Est. Tokens: %s",
		heroStyle.Render(v.WordsLabel), heroStyle.Render(v.TokensLabel))
	if exact != nil {
		stats += fmt.Sprintf("   %s: %s", exact.encoding, heroStyle.Render(contextscale.GroupedNumber(exact.tokens)))
	}
	lines := []string{stats}

	if len(words) > 0 {
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = fmt.Sprintf("%s×%d", w.Item, w.Count)
		}
		lines = append(lines, borderFg.Render(runewidth.Truncate("Top words: "+strings.Join(parts, "  "), width, "…")))
	}

	nameWidth := max(8, min(24, width-16))
	for _, c := range v.Cards {
		name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)
		var dot styles.Style
		switch c.State {
		case contextscale.CardFits:
			dot = styles.NewStyle().Foreground(greenColor)
		case contextscale.CardTooLarge:
			dot = styles.NewStyle().Foreground(redColor)
		default:
			dot = borderFg
		}
		lines = append(lines, dot.Render("●")+" "+name+" "+dot.Render(c.Label))
	}
	return strings.Join(lines, "\n")
}

// renderFacts stacks the fact cards, wrapping details to the panel width.
func renderFacts(v contextscale.FactsView, width int) string {
	inner := max(10, width-4)
	cards := make([]string, len(v.Cards))
	for i, f := range v.Cards {
		head := borderFg.Render(f.Model+" · "+contextscale.ShortForm(f.Tokens)) + "\n" +
			heroStyle.Render(f.Number) + " " + selectedFg.Render(f.Unit)
		cards[i] = factStyle.Width(inner).Render(head + "\n" + wordwrap.String(f.Detail, inner-2))
	}
	return styles.JoinVertical(styles.Left, cards...)
}

func renderTabs(active panel, width int) string {
	tabs := make([]string, 0, len(panels))
	for _, p := range panels {
		name := " " + p.String() + " "
		if p == active {
			tabs = append(tabs, selectedFg.Reverse(true).Render(name))
			continue
		}
		tabs = append(tabs, borderFg.Render(name))
	}
	return styles.NewStyle().MaxWidth(width).Render(strings.Join(tabs, " "))
}
