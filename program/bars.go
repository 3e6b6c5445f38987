package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

// barAnimator eases bar widths towards their targets with a spring.
type barAnimator struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	target []float64
}

func newBarAnimator(fps int) *barAnimator {
	return &barAnimator{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// setTargets starts every bar from zero width.
func (a *barAnimator) setTargets(targets []float64) {
	a.target = append(a.target[:0], targets...)
	a.pos = make([]float64, len(targets))
	a.vel = make([]float64, len(targets))
}

// step advances one frame and reports whether any bar is still moving.
func (a *barAnimator) step() bool {
	moving := false
	for i := range a.target {
		a.pos[i], a.vel[i] = a.spring.Update(a.pos[i], a.vel[i], a.target[i])
		if math.Abs(a.pos[i]-a.target[i]) < 0.01 && math.Abs(a.vel[i]) < 0.01 {
			a.pos[i], a.vel[i] = a.target[i], 0
			continue
		}
		moving = true
	}
	return moving
}

func (a *barAnimator) settle() {
	copy(a.pos, a.target)
	for i := range a.vel {
		a.vel[i] = 0
	}
}

func (a *barAnimator) width(i int) float64 {
	if i < 0 || i >= len(a.pos) {
		return 0
	}
	return a.pos[i]
}

type modelItem struct {
	contextscale.ModelBar
	index int // position in the dataset
}

func (i modelItem) Title() string       { return i.Name }
func (i modelItem) Description() string { return i.Provider + " · " + i.Label }
func (i modelItem) FilterValue() string { return i.Name + " " + i.Provider }

func modelItems(v contextscale.BarChartView) []list.Item {
	items := make([]list.Item, len(v.Rows))
	for i, row := range v.Rows {
		items[i] = modelItem{ModelBar: row, index: i}
	}
	return items
}

// barDelegate draws each model as a one-line log-scale bar.
type barDelegate struct {
	bars *barAnimator
}

func (d *barDelegate) Height() int                         { return 1 }
func (d *barDelegate) Spacing() int                        { return 0 }
func (d *barDelegate) Update(tui.Msg, *list.Model) tui.Cmd { return nil }

func (d *barDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(modelItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderBarRow(it, d.bars.width(it.index), m.Width(), index == m.Index()))
}

func renderBarRow(it modelItem, pct float64, width int, selected bool) string {
	const valueWidth = 7
	labelWidth := min(28, max(8, width/3))
	cells := width - labelWidth - valueWidth - 3
	if cells < 1 {
		cells = 1
	}

	label := runewidth.FillRight(runewidth.Truncate(it.Name, labelWidth-1, "…"), labelWidth)
	filled := int(math.Round(min(100, max(0, pct)) / 100 * float64(cells)))
	fill := barFill(it.Color).Render(strings.Repeat("█", filled))
	rest := borderFg.Render(strings.Repeat("░", cells-filled))
	value := fmt.Sprintf("%*s", valueWidth, it.Label)

	marker := " "
	if selected {
		marker = selectedFg.Render("▌")
		label = selectedFg.Render(label)
		value = selectedFg.Render(value)
	}
	return marker + label + " " + fill + rest + " " + value
}

func barFill(color string) styles.Style {
	if color == "" {
		return styles.NewStyle().Foreground(selectedColor)
	}
	return styles.NewStyle().Foreground(styles.Color(color))
}
