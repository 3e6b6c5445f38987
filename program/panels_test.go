package main

import (
	"strings"
	"testing"
	"time"

	"github.com/keilerkonzept/topk/heap"
	"github.com/stretchr/testify/assert"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

func TestRenderHeroRevealsChipsOverTime(t *testing.T) {
	v := contextscale.RenderHero(defaultDataset(t), 128_000)
	if !assert.GreaterOrEqual(t, len(v.Chips), 2) {
		return
	}

	first := renderHero(v, 0, 200)
	assert.Contains(t, first, "128,000 tokens")
	assert.Contains(t, first, v.Chips[0].Name)
	assert.NotContains(t, first, v.Chips[1].Name)

	all := renderHero(v, time.Minute, 400)
	for _, c := range v.Chips {
		assert.Contains(t, all, c.Name)
	}
}

func TestRenderHeroNothingFits(t *testing.T) {
	out := renderHero(contextscale.HeroView{Tokens: 10, Number: "10"}, time.Minute, 80)
	assert.Contains(t, out, "Not even a tweet fits")
}

func TestRenderSlider(t *testing.T) {
	l := contextscale.RenderSliderLabels(50, contextscale.ToTokens(50))
	out := renderSlider(l, 80, false)
	assert.Contains(t, out, l.Value)
	assert.Contains(t, out, l.Words)
	assert.Contains(t, out, "●")
	assert.Len(t, strings.Split(out, "\n"), 2)
}

func TestRenderFitsOneLinePerComparison(t *testing.T) {
	v := contextscale.RenderFits(defaultDataset(t), 128_000)
	out := renderFits(v, 80)
	assert.Len(t, strings.Split(out, "\n"), len(v.Rows))
	assert.Contains(t, out, "0%")
}

func TestRenderEstimate(t *testing.T) {
	v := contextscale.RenderEstimator(defaultDataset(t), "one two three")
	words := []heap.Item{{Item: "one", Count: 1}}

	out := renderEstimate(v, words, nil, 80)
	assert.Contains(t, out, "Words:")
	assert.Contains(t, out, "one×1")
	assert.NotContains(t, out, "cl100k_base")
	for _, c := range v.Cards {
		assert.Contains(t, out, c.Label)
	}

	out = renderEstimate(v, nil, &exactCount{encoding: "cl100k_base", tokens: 3}, 80)
	assert.Contains(t, out, "cl100k_base")
	assert.NotContains(t, out, "Top words")
}

func TestRenderFacts(t *testing.T) {
	v := contextscale.RenderFacts()
	out := renderFacts(v, 60)
	for _, f := range v.Cards {
		assert.Contains(t, out, f.Model)
	}
}

func TestRenderTabs(t *testing.T) {
	out := renderTabs(panelText, 200)
	for _, p := range panels {
		assert.Contains(t, out, p.String())
	}
}

func TestPanelCycle(t *testing.T) {
	assert.Equal(t, panelText, panelFits.next())
	assert.Equal(t, panelFits, panelCurve.next())
	assert.Equal(t, panelCurve, panelFits.prev())
}
