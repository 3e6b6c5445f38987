package contextscale

import (
	"errors"
	"fmt"
)

// DefaultTokens is the budget shown before any input.
const DefaultTokens = 128_000

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrUnknownEvent = errors.New("unknown event")
)

// State is the full input state of the page. Transitions return a new State.
type State struct {
	Position float64
	Tokens   int
	Text     string
}

// InitialState starts at the given budget with no estimator text.
func InitialState(tokens int) State {
	tokens = ClampTokens(tokens)
	return State{Position: ToPosition(tokens), Tokens: tokens}
}

// Region names a part of the screen that a transition invalidates.
type Region int

const (
	RegionHero Region = 1 << iota
	RegionFits
	RegionSliderLabels
	RegionEstimator
)

// Effects tells the caller what to redraw after a transition.
type Effects struct {
	Regions        Region
	ScrollToSlider bool
}

// Has reports whether r needs redrawing.
func (e Effects) Has(r Region) bool { return e.Regions&r != 0 }

type EventKind int

const (
	EventSliderInput EventKind = iota
	EventSliderStep
	EventTextEdit
	EventModelSelect
)

func (k EventKind) String() string {
	switch k {
	case EventSliderInput:
		return "slider-input"
	case EventSliderStep:
		return "slider-step"
	case EventTextEdit:
		return "text-edit"
	case EventModelSelect:
		return "model-select"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a user input.
type Event interface {
	Kind() EventKind
}

// SliderInput moves the slider to an absolute position in [0,100].
type SliderInput struct{ Position float64 }

// SliderStep nudges the slider by Delta positions.
type SliderStep struct{ Delta float64 }

// TextEdit replaces the estimator text.
type TextEdit struct{ Text string }

// ModelSelect jumps the budget to the model at Index in dataset order.
type ModelSelect struct{ Index int }

func (SliderInput) Kind() EventKind { return EventSliderInput }
func (SliderStep) Kind() EventKind  { return EventSliderStep }
func (TextEdit) Kind() EventKind    { return EventTextEdit }
func (ModelSelect) Kind() EventKind { return EventModelSelect }

// Transition computes the next state for one event.
type Transition func(ds *Dataset, s State, ev Event) (State, Effects, error)

// Controller dispatches events to transitions over a fixed dataset.
type Controller struct {
	ds    *Dataset
	table map[EventKind]Transition
}

// NewController returns a controller with the default dispatch table.
func NewController(ds *Dataset) *Controller {
	return &Controller{
		ds: ds,
		table: map[EventKind]Transition{
			EventSliderInput: sliderInput,
			EventSliderStep:  sliderStep,
			EventTextEdit:    textEdit,
			EventModelSelect: modelSelect,
		},
	}
}

// Dataset returns the controller's dataset.
func (c *Controller) Dataset() *Dataset { return c.ds }

// Dispatch applies ev to s. On error s is returned unchanged.
func (c *Controller) Dispatch(s State, ev Event) (State, Effects, error) {
	if ev == nil {
		return s, Effects{}, ErrUnknownEvent
	}
	t, ok := c.table[ev.Kind()]
	if !ok {
		return s, Effects{}, fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind())
	}
	next, fx, err := t(c.ds, s, ev)
	if err != nil {
		return s, Effects{}, err
	}
	return next, fx, nil
}

// Render projects s into every view.
func (c *Controller) Render(s State) Views {
	return Render(c.ds, s)
}

const sliderRegions = RegionHero | RegionFits | RegionSliderLabels

func sliderInput(_ *Dataset, s State, ev Event) (State, Effects, error) {
	in := ev.(SliderInput)
	p := clampPosition(in.Position)
	s.Position = p
	s.Tokens = ToTokens(p)
	return s, Effects{Regions: sliderRegions}, nil
}

func sliderStep(ds *Dataset, s State, ev Event) (State, Effects, error) {
	step := ev.(SliderStep)
	return sliderInput(ds, s, SliderInput{Position: s.Position + step.Delta})
}

func textEdit(_ *Dataset, s State, ev Event) (State, Effects, error) {
	s.Text = ev.(TextEdit).Text
	return s, Effects{Regions: RegionEstimator}, nil
}

func modelSelect(ds *Dataset, s State, ev Event) (State, Effects, error) {
	sel := ev.(ModelSelect)
	if sel.Index < 0 || sel.Index >= len(ds.Models) {
		return s, Effects{}, fmt.Errorf("%w: index %d", ErrUnknownModel, sel.Index)
	}
	tokens := ClampTokens(ds.Models[sel.Index].Tokens)
	s.Position = ToPosition(tokens)
	s.Tokens = tokens
	return s, Effects{Regions: sliderRegions, ScrollToSlider: true}, nil
}
