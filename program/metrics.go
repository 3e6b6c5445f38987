package main

import (
	"fmt"
	"time"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	if len(r.buf) == 0 {
		return
	}
	r.buf[r.idx] = d
	r.idx++
	if r.idx >= len(r.buf) {
		r.idx = 0
	}
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum, longest time.Duration
	for i := 0; i < r.count; i++ {
		d := r.buf[i]
		sum += d
		longest = max(longest, d)
	}

	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	return durationStats{
		last: r.buf[lastIdx],
		max:  longest,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// renderMetrics tracks how long each input takes to turn into fresh views.
// Everything runs on the UI goroutine, so no locking.
type renderMetrics struct {
	enabled bool
	started time.Time

	events   map[contextscale.EventKind]uint64
	failures uint64
	latency  *durationRing
	frames   uint64
}

func newRenderMetrics(window int, enabled bool) *renderMetrics {
	return &renderMetrics{
		enabled: enabled,
		started: time.Now(),
		events:  make(map[contextscale.EventKind]uint64),
		latency: newDurationRing(window),
	}
}

func (m *renderMetrics) observeDispatch(kind contextscale.EventKind, d time.Duration, err error) {
	if !m.enabled {
		return
	}
	if err != nil {
		m.failures++
		return
	}
	m.events[kind]++
	m.latency.add(d)
}

func (m *renderMetrics) observeFrame() {
	if !m.enabled {
		return
	}
	m.frames++
}

type snapshot struct {
	started  time.Time
	slider   uint64
	text     uint64
	selects  uint64
	failures uint64
	frames   uint64
	latency  durationStats
}

func (m *renderMetrics) snapshot() snapshot {
	if !m.enabled {
		return snapshot{}
	}
	return snapshot{
		started:  m.started,
		slider:   m.events[contextscale.EventSliderInput] + m.events[contextscale.EventSliderStep],
		text:     m.events[contextscale.EventTextEdit],
		selects:  m.events[contextscale.EventModelSelect],
		failures: m.failures,
		frames:   m.frames,
		latency:  m.latency.snapshot(),
	}
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
