package main

import (
	"math"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

// curvePoints samples the slider at every whole position.
const curvePoints = 101

func newCurveCanvas(w, h int) *plot.Canvas {
	p := plot.NewCanvas(w, h)
	p.NumDataPoints = curvePoints
	p.ShowAxis = false
	p.LineColors = make([]plot.Color, 2)
	return &p
}

func (m *model) resizePlot(w int, h int) {
	p := plot.NewCanvas(w, h)
	p.NumDataPoints = m.plot.NumDataPoints
	p.ShowAxis = m.plot.ShowAxis
	p.LineColors = m.plot.LineColors
	m.plot = &p
	m.updatePlot()
}

// curveSeries returns the slider-to-tokens curve and a flat line at the current budget.
func curveSeries(tokens int, logScale bool) [][]float64 {
	value := func(t int) float64 {
		if logScale {
			return math.Log10(float64(max(1, t)))
		}
		return float64(t)
	}
	curve := make([]float64, curvePoints)
	budget := make([]float64, curvePoints)
	for i := range curve {
		curve[i] = value(contextscale.ToTokens(float64(i) * 100 / float64(curvePoints-1)))
		budget[i] = value(tokens)
	}
	return [][]float64{curve, budget}
}

func (m *model) updatePlot() {
	if m.ctrl == nil {
		return
	}
	var highlight, dim plot.Color
	if styles.DefaultRenderer().HasDarkBackground() {
		highlight, dim = plot.Red, plot.DimGray
	} else {
		highlight, dim = plot.Black, plot.LightGray
	}
	m.plot.LineColors[0] = dim
	m.plot.LineColors[1] = highlight
	m.plot.Fill(curveSeries(m.state.Tokens, m.logScale))
}
