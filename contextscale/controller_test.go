package contextscale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	s := InitialState(DefaultTokens)
	assert.Equal(t, 128_000, s.Tokens)
	assert.InDelta(t, ToPosition(128_000), s.Position, 1e-12)
	assert.Empty(t, s.Text)

	assert.Equal(t, MinTokens, InitialState(10).Tokens)
}

func TestDispatchSliderInput(t *testing.T) {
	c := NewController(testDataset(t))
	s, fx, err := c.Dispatch(InitialState(DefaultTokens), SliderInput{Position: 100})
	require.NoError(t, err)
	assert.Equal(t, MaxTokens, s.Tokens)
	assert.Equal(t, 100.0, s.Position)
	assert.True(t, fx.Has(RegionHero))
	assert.True(t, fx.Has(RegionFits))
	assert.True(t, fx.Has(RegionSliderLabels))
	assert.False(t, fx.Has(RegionEstimator))
	assert.False(t, fx.ScrollToSlider)

	s, _, err = c.Dispatch(s, SliderInput{Position: 140})
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Position)
}

func TestDispatchSliderStep(t *testing.T) {
	c := NewController(testDataset(t))
	s, _, err := c.Dispatch(State{Position: 0, Tokens: MinTokens}, SliderStep{Delta: -1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Position)
	assert.Equal(t, MinTokens, s.Tokens)

	s, _, err = c.Dispatch(s, SliderStep{Delta: 50})
	require.NoError(t, err)
	assert.Equal(t, 50.0, s.Position)
	assert.Equal(t, ToTokens(50), s.Tokens)
}

func TestDispatchTextEdit(t *testing.T) {
	c := NewController(testDataset(t))
	start := InitialState(DefaultTokens)
	s, fx, err := c.Dispatch(start, TextEdit{Text: "a b c"})
	require.NoError(t, err)
	assert.Equal(t, "a b c", s.Text)
	assert.Equal(t, start.Tokens, s.Tokens)
	assert.Equal(t, Effects{Regions: RegionEstimator}, fx)
	assert.Equal(t, 4, c.Render(s).Estimator.Tokens)
}

func TestDispatchModelSelect(t *testing.T) {
	ds, err := NewDataset([]Model{
		{Name: "million", Tokens: 1_000_000},
		{Name: "giant", Tokens: 50_000_000},
	}, nil)
	require.NoError(t, err)
	c := NewController(ds)

	// giant sorts first
	s, fx, err := c.Dispatch(InitialState(DefaultTokens), ModelSelect{Index: 1})
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, s.Tokens)
	assert.True(t, fx.ScrollToSlider)
	assert.Equal(t, "1M", c.Render(s).Slider.Short)
	assert.Equal(t, 1_000_000, ToTokens(s.Position))

	s, _, err = c.Dispatch(s, ModelSelect{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, MaxTokens, s.Tokens, "budgets beyond the slider clamp")
	assert.Equal(t, 100.0, s.Position)
}

func TestDispatchErrors(t *testing.T) {
	c := NewController(testDataset(t))
	start := InitialState(DefaultTokens)

	s, _, err := c.Dispatch(start, ModelSelect{Index: 99})
	assert.True(t, errors.Is(err, ErrUnknownModel))
	assert.Equal(t, start, s)

	s, _, err = c.Dispatch(start, nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, start, s)

	s, _, err = c.Dispatch(start, bogusEvent{})
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, start, s)
}

type bogusEvent struct{}

func (bogusEvent) Kind() EventKind { return EventKind(42) }

func TestEndToEndSliderFits(t *testing.T) {
	ds, err := NewDataset(
		[]Model{{Name: "m", Tokens: 128_000}},
		[]Comparison{{Name: "page", Tokens: 1000}},
	)
	require.NoError(t, err)
	c := NewController(ds)

	s, _, err := c.Dispatch(InitialState(MinTokens), SliderInput{Position: ToPosition(128_000)})
	require.NoError(t, err)
	require.Equal(t, 128_000, s.Tokens)

	rows := c.Render(s).Fits.Rows
	require.Len(t, rows, 1)
	assert.Equal(t, FitsMultiple, rows[0].State)
	assert.Equal(t, "128×", rows[0].Label)
}
