package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

func TestDurationRingWraps(t *testing.T) {
	r := newDurationRing(3)
	assert.Equal(t, durationStats{}, r.snapshot())

	for _, ms := range []int{1, 2, 3, 4} {
		r.add(time.Duration(ms) * time.Millisecond)
	}
	s := r.snapshot()
	assert.Equal(t, 4*time.Millisecond, s.last)
	assert.Equal(t, 4*time.Millisecond, s.max)
	assert.Equal(t, 3*time.Millisecond, s.avg)
	assert.Equal(t, 3, s.n)
}

func TestDurationRingMinimumSize(t *testing.T) {
	r := newDurationRing(0)
	r.add(time.Second)
	r.add(2 * time.Second)
	s := r.snapshot()
	assert.Equal(t, 2*time.Second, s.last)
	assert.Equal(t, 1, s.n)
}

func TestRenderMetrics(t *testing.T) {
	m := newRenderMetrics(16, true)
	m.observeDispatch(contextscale.EventSliderStep, time.Millisecond, nil)
	m.observeDispatch(contextscale.EventSliderInput, 3*time.Millisecond, nil)
	m.observeDispatch(contextscale.EventTextEdit, 2*time.Millisecond, nil)
	m.observeDispatch(contextscale.EventModelSelect, 0, errors.New("boom"))
	m.observeFrame()

	snap := m.snapshot()
	assert.EqualValues(t, 2, snap.slider)
	assert.EqualValues(t, 1, snap.text)
	assert.EqualValues(t, 0, snap.selects)
	assert.EqualValues(t, 1, snap.failures)
	assert.EqualValues(t, 1, snap.frames)
	assert.Equal(t, 3*time.Millisecond, snap.latency.max)
	assert.Equal(t, 2*time.Millisecond, snap.latency.avg)
}

func TestRenderMetricsDisabled(t *testing.T) {
	m := newRenderMetrics(16, false)
	m.observeDispatch(contextscale.EventSliderStep, time.Millisecond, nil)
	m.observeFrame()
	assert.Equal(t, snapshot{}, m.snapshot())
}

func TestFormatMetricDuration(t *testing.T) {
	assert.Equal(t, "0.000ms", formatMetricDuration(0))
	assert.Equal(t, "1.500ms", formatMetricDuration(1500*time.Microsecond))
}
