package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"github.com/keilerkonzept/topk/heap"

	"github.com/keilerkonzept/contextscale-tui-demo/contextscale"
)

type panel int

const (
	panelFits panel = iota
	panelText
	panelFacts
	panelCurve
)

var panels = []panel{panelFits, panelText, panelFacts, panelCurve}

func (p panel) String() string {
	switch p {
	case panelFits:
		return "What fits"
	case panelText:
		return "Your text"
	case panelFacts:
		return "Facts"
	case panelCurve:
		return "Scale"
	default:
		return "?"
	}
}

func (p panel) next() panel { return panels[(int(p)+1)%len(panels)] }
func (p panel) prev() panel { return panels[(int(p)+len(panels)-1)%len(panels)] }

const (
	// hero title + chip row (3 lines with border) + slider track + slider labels
	topLines      = 6
	helpLines     = 1
	statsLines    = 4
	errLines      = 1
	flashDuration = 600 * time.Millisecond
)

type exactCount struct {
	encoding string
	tokens   int
}

type AnimTickMsg time.Time

func doAnimTick() tui.Cmd {
	return tui.Tick(time.Second/time.Duration(config.AnimFPS), func(t time.Time) tui.Msg {
		return AnimTickMsg(t)
	})
}

type model struct {
	width, height  int
	leftPaneWidth  int
	rightPaneWidth int
	contentHeight  int

	ready   bool
	loadErr error
	err     error

	ctrl  *contextscale.Controller
	state contextscale.State
	views contextscale.Views

	panel    panel
	editing  bool
	logScale bool

	list      list.Model
	listStyle styles.Style
	bars      *barAnimator
	text      textarea.Model
	fits      viewport.Model
	facts     viewport.Model
	help      help.Model
	spinner   spinner.Model
	plot      *plot.Canvas

	counter tokenCounter
	exact   *exactCount
	words   []heap.Item

	heroSince  time.Time
	flashUntil time.Time
	animating  bool
	now        func() time.Time

	metrics *renderMetrics
}

func newModel() *model {
	const (
		defaultWidth  = 80
		defaultHeight = 24
	)

	bars := newBarAnimator(config.AnimFPS)
	l := list.New(make([]list.Item, 0), &barDelegate{bars: bars}, defaultWidth/2-2, defaultHeight)
	l.Styles.NoItems = l.Styles.NoItems.
		Padding(0, 2)
	l.SetFilteringEnabled(config.SearchEnabled)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	ta := textarea.New()
	ta.Placeholder = "Paste or type some text to see how big it is…"
	ta.CharLimit = 0
	ta.MaxHeight = 10_000
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultWidth / 2)
	ta.SetHeight(5)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = selectedFg

	m := &model{
		width:    defaultWidth,
		height:   defaultHeight,
		logScale: config.LogScale,
		list:     l,
		bars:     bars,
		text:     ta,
		fits:     viewport.New(defaultWidth/2, defaultHeight),
		facts:    viewport.New(defaultWidth/2, defaultHeight),
		help:     help.New(),
		spinner:  s,
		plot:     newCurveCanvas(defaultWidth/2, defaultHeight),
		now:      time.Now,
		metrics:  newRenderMetrics(config.StatsWindow, config.StatsEnabled),
	}
	m.layout()
	return m
}

func (m *model) leftWidth() int {
	if m.leftPaneWidth > 0 {
		return m.leftPaneWidth
	}
	left, _ := computePaneWidths(m.width, config.ViewSplit)
	return left
}

func (m *model) rightWidth() int {
	if m.rightPaneWidth > 0 {
		return m.rightPaneWidth
	}
	_, right := computePaneWidths(m.width, config.ViewSplit)
	return right
}

func (m *model) Init() tui.Cmd {
	return tui.Batch(m.spinner.Tick, loadDataset(config.DataPath))
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case datasetMsg:
		return m, m.onDataset(msg.ds)
	case loadFailedMsg:
		m.loadErr = msg.err
		return m, tui.Quit
	case inputTextMsg:
		m.text.SetValue(msg.text)
		return m, m.dispatch(contextscale.TextEdit{Text: msg.text})
	case counterMsg:
		m.counter = msg.counter
		m.refreshExact()
		return m, nil
	case errMsg:
		log.Printf("error: %v", msg.err)
		m.err = msg.err
		return m, nil
	case AnimTickMsg:
		return m, m.animate(time.Time(msg))
	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tui.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tui.KeyMsg:
		return m, m.handleKey(msg)
	}
	if m.editing {
		var cmd tui.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) onDataset(ds *contextscale.Dataset) tui.Cmd {
	for _, skipped := range ds.Skipped {
		log.Printf("skipping invalid record: %v", skipped)
	}
	log.Printf("dataset loaded: %d models, %d comparisons", len(ds.Models), len(ds.Comparisons))

	m.ctrl = contextscale.NewController(ds)
	m.state = contextscale.InitialState(config.Tokens)
	m.views = m.ctrl.Render(m.state)
	m.ready = true
	m.heroSince = m.now()

	targets := make([]float64, len(m.views.Bars.Rows))
	for i, row := range m.views.Bars.Rows {
		targets[i] = row.WidthPct
	}
	m.bars.setTargets(targets)
	if !config.Animate {
		m.bars.settle()
	}
	set := m.list.SetItems(modelItems(m.views.Bars))
	m.layout()
	return tui.Batch(set, readInputText(), loadCounter(config.Encoding), m.startAnimation())
}

// layout sizes every component from the terminal size.
func (m *model) layout() {
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, config.ViewSplit)
	bottom := helpLines + errLines
	if config.StatsEnabled {
		bottom += statsLines
	}
	available := max(1, m.height-topLines-bottom)

	leftW := max(1, m.leftWidth())
	rightW := max(1, m.rightWidth())
	m.list.SetSize(leftW, available)
	m.listStyle = styles.NewStyle().Width(leftW).Height(available)

	// Right side is: tab row + panel wrapped in a border (adds 2 lines).
	innerW := max(1, rightW-2)
	innerH := max(1, available-3)
	m.contentHeight = innerH
	m.fits.Width, m.fits.Height = innerW, innerH
	m.facts.Width, m.facts.Height = innerW, innerH
	m.text.SetWidth(innerW)
	m.text.SetHeight(max(3, innerH/3))
	m.resizePlot(innerW, max(1, innerH-1))
	m.refreshFits()
	m.refreshFacts()
}

func (m *model) handleKey(msg tui.KeyMsg) tui.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return tui.Quit
	}
	if !m.ready {
		if key.Matches(msg, keys.Quit) {
			return tui.Quit
		}
		return nil
	}

	if m.editing {
		if key.Matches(msg, keys.Done) {
			m.setEditing(false)
			return nil
		}
		var cmd tui.Cmd
		m.text, cmd = m.text.Update(msg)
		if v := m.text.Value(); v != m.state.Text {
			return tui.Batch(cmd, m.dispatch(contextscale.TextEdit{Text: v}))
		}
		return cmd
	}

	if m.list.FilterState() == list.Filtering {
		var cmd tui.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tui.Quit
	case key.Matches(msg, keys.Left):
		return m.dispatch(contextscale.SliderStep{Delta: -config.Step})
	case key.Matches(msg, keys.Right):
		return m.dispatch(contextscale.SliderStep{Delta: config.Step})
	case key.Matches(msg, keys.FastLeft):
		return m.dispatch(contextscale.SliderStep{Delta: -config.BigStep})
	case key.Matches(msg, keys.FastRight):
		return m.dispatch(contextscale.SliderStep{Delta: config.BigStep})
	case key.Matches(msg, keys.Home):
		return m.dispatch(contextscale.SliderInput{Position: 0})
	case key.Matches(msg, keys.End):
		return m.dispatch(contextscale.SliderInput{Position: 100})
	case key.Matches(msg, keys.Up):
		m.list.CursorUp()
		return nil
	case key.Matches(msg, keys.Down):
		m.list.CursorDown()
		return nil
	case key.Matches(msg, keys.Select):
		if it, ok := m.list.SelectedItem().(modelItem); ok {
			return m.dispatch(contextscale.ModelSelect{Index: it.index})
		}
		return nil
	case key.Matches(msg, keys.NextPanel):
		m.setPanel(m.panel.next())
		return nil
	case key.Matches(msg, keys.PrevPanel):
		m.setPanel(m.panel.prev())
		return nil
	case key.Matches(msg, keys.Edit):
		m.setPanel(panelText)
		return m.setEditing(true)
	case key.Matches(msg, keys.Scale):
		m.logScale = !m.logScale
		m.updatePlot()
		return nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, keys.Filter), key.Matches(msg, keys.ClearFilter):
		var cmd tui.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}

	var cmd tui.Cmd
	switch m.panel {
	case panelFits:
		m.fits, cmd = m.fits.Update(msg)
	case panelFacts:
		m.facts, cmd = m.facts.Update(msg)
	}
	return cmd
}

// dispatch runs one input through the controller and redraws what it invalidated.
func (m *model) dispatch(ev contextscale.Event) tui.Cmd {
	if m.ctrl == nil {
		return nil
	}
	start := time.Now()
	next, fx, err := m.ctrl.Dispatch(m.state, ev)
	if err != nil {
		log.Printf("%s: %v", ev.Kind(), err)
		m.metrics.observeDispatch(ev.Kind(), 0, err)
		m.err = err
		return nil
	}
	m.state = next
	ds := m.ctrl.Dataset()

	if fx.Has(contextscale.RegionSliderLabels) {
		m.views.Slider = contextscale.RenderSliderLabels(next.Position, next.Tokens)
		m.updatePlot()
	}
	if fx.Has(contextscale.RegionHero) {
		m.views.Hero = contextscale.RenderHero(ds, next.Tokens)
		m.heroSince = m.now()
	}
	if fx.Has(contextscale.RegionFits) {
		m.views.Fits = contextscale.RenderFits(ds, next.Tokens)
		m.refreshFits()
	}
	if fx.Has(contextscale.RegionEstimator) {
		m.views.Estimator = contextscale.RenderEstimator(ds, next.Text)
		m.words = topWords(next.Text, config.TopWords)
		m.refreshExact()
	}
	if fx.ScrollToSlider {
		m.setPanel(panelFits)
		m.fits.GotoTop()
		if config.Animate {
			m.flashUntil = m.now().Add(flashDuration)
		}
	}
	m.metrics.observeDispatch(ev.Kind(), time.Since(start), nil)
	return m.startAnimation()
}

func (m *model) setPanel(p panel) {
	if p != panelText && m.editing {
		m.setEditing(false)
	}
	m.panel = p
}

func (m *model) setEditing(on bool) tui.Cmd {
	m.editing = on
	if on {
		return m.text.Focus()
	}
	m.text.Blur()
	return nil
}

func (m *model) refreshFits() {
	m.fits.SetContent(renderFits(m.views.Fits, m.fits.Width))
}

func (m *model) refreshFacts() {
	m.facts.SetContent(renderFacts(m.views.Facts, m.facts.Width))
}

func (m *model) refreshExact() {
	if m.counter == nil {
		m.exact = nil
		return
	}
	m.exact = &exactCount{encoding: m.counter.Name(), tokens: m.counter.Count(m.state.Text)}
}

func (m *model) startAnimation() tui.Cmd {
	if !config.Animate || m.animating {
		return nil
	}
	m.animating = true
	return doAnimTick()
}

// animate advances one frame and keeps ticking while anything is still moving.
func (m *model) animate(now time.Time) tui.Cmd {
	moving := m.bars.step()
	m.metrics.observeFrame()
	if moving || m.chipsPending(now) || now.Before(m.flashUntil) {
		return doAnimTick()
	}
	m.animating = false
	return nil
}

func (m *model) chipsPending(now time.Time) bool {
	chips := m.views.Hero.Chips
	return len(chips) > 0 && now.Sub(m.heroSince) < chips[len(chips)-1].Delay
}

func (m *model) View() string {
	if m.loadErr != nil {
		return errStyle.Render("ERROR: "+m.loadErr.Error()) + "\n"
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading dataset…\n", m.spinner.View())
	}

	now := m.now()
	elapsed := now.Sub(m.heroSince)
	if !config.Animate {
		elapsed = time.Duration(math.MaxInt64)
	}
	top := styles.JoinVertical(styles.Left,
		renderHero(m.views.Hero, elapsed, m.width),
		renderSlider(m.views.Slider, m.width, now.Before(m.flashUntil)),
	)
	left := m.listStyle.Render(m.list.View())
	right := styles.JoinVertical(styles.Left,
		renderTabs(m.panel, m.rightWidth()),
		panelStyle.Render(m.panelView()),
	)
	blocks := []string{top, styles.JoinHorizontal(styles.Top, left, right)}

	if m.err != nil {
		blocks = append(blocks, errStyle.Render("ERROR: "+m.err.Error()))
	}
	if config.StatsEnabled {
		blocks = append(blocks, borderFg.Render(m.statsView()))
	}
	blocks = append(blocks, m.help.View(keys))
	return styles.JoinVertical(styles.Left, blocks...)
}

func (m *model) panelView() string {
	w, h := max(1, m.rightWidth()-2), max(1, m.contentHeight)
	box := styles.NewStyle().Width(w).Height(h).MaxHeight(h)
	switch m.panel {
	case panelText:
		return box.Render(styles.JoinVertical(styles.Left,
			m.text.View(),
			renderEstimate(m.views.Estimator, m.words, m.exact, w),
		))
	case panelFacts:
		return box.Render(m.facts.View())
	case panelCurve:
		return box.Render(styles.JoinVertical(styles.Left, m.plot.String(), m.curveLabels(w)))
	default:
		return box.Render(m.fits.View())
	}
}

// curveLabels puts the slider's range at both ends and the LIN/LOG hint in the middle.
func (m *model) curveLabels(w int) string {
	linColor := borderFg
	logColor := borderFg
	if m.logScale {
		logColor = selectedFg
	} else {
		linColor = selectedFg
	}
	linLog := linColor.Render("LIN") + " " + logColor.Render("LOG")

	leftLabel := "0 → " + contextscale.ShortForm(contextscale.MinTokens)
	rightLabel := "100 → " + contextscale.ShortForm(contextscale.MaxTokens)
	minWidth := len(leftLabel) + len(rightLabel) + len("LIN LOG") + 4
	// If too narrow, show only the scale hint to avoid wrapping.
	if w < minWidth {
		return " " + linLog
	}
	spaceTotal := max(2, w-(len(leftLabel)+len(rightLabel)+len("LIN LOG")))
	leftGap := spaceTotal / 2
	rightGap := spaceTotal - leftGap
	return borderFg.Render(leftLabel) +
		strings.Repeat(" ", leftGap) +
		linLog +
		strings.Repeat(" ", rightGap) +
		borderFg.Render(rightLabel)
}

func (m *model) statsView() string {
	snap := m.metrics.snapshot()
	return strings.Join([]string{
		"RENDER STATS",
		fmt.Sprintf("events: slider %d, text %d, select %d, failed %d", snap.slider, snap.text, snap.selects, snap.failures),
		fmt.Sprintf("render: last %s, avg %s, max %s", formatMetricDuration(snap.latency.last), formatMetricDuration(snap.latency.avg), formatMetricDuration(snap.latency.max)),
		fmt.Sprintf("animation frames: %d, uptime %s", snap.frames, time.Since(snap.started).Truncate(time.Second)),
	}, "\n")
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	if left < 1 {
		left = 1
	}
	if left > totalWidth-1 {
		left = totalWidth - 1
	}
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 18
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	if left < 1 {
		left = 1
	}
	if right < 1 {
		right = 1
	}
	return left, right
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.NextPanel, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.FastLeft, k.FastRight, k.Home, k.End},
		{k.Up, k.Down, k.Select, k.Filter, k.ClearFilter},
		{k.NextPanel, k.PrevPanel, k.Edit, k.Done, k.Scale},
		{k.Help, k.Quit},
	}
}

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	FastLeft    key.Binding
	FastRight   key.Binding
	Home        key.Binding
	End         key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	NextPanel   key.Binding
	PrevPanel   key.Binding
	Edit        key.Binding
	Done        key.Binding
	Scale       key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "fewer tokens"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "more tokens"),
	),
	FastLeft: key.NewBinding(
		key.WithKeys("shift+left", "H"),
		key.WithHelp("H", "much fewer"),
	),
	FastRight: key.NewBinding(
		key.WithKeys("shift+right", "L"),
		key.WithHelp("L", "much more"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "min"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "max"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "use model"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	PrevPanel: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev panel"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit text"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop editing"),
	),
	Scale: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "log/lin"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
