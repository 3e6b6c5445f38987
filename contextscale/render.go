package contextscale

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TokensPerWord is the rough English tokens-per-word ratio used for estimates.
const TokensPerWord = 1.33

// ChipRevealStep staggers the reveal of hero chips.
const ChipRevealStep = 80 * time.Millisecond

// Bar widths are percentages in [MinBarPct, 100].
const MinBarPct = 0.5

type HeroChip struct {
	Icon  string
	Count string // "N×" or ""
	Name  string
	Delay time.Duration
}

type HeroView struct {
	Tokens int
	Number string
	Chips  []HeroChip
}

// RenderHero shows the budget and the selected comparisons as chips.
func RenderHero(ds *Dataset, tokens int) HeroView {
	picks := SelectComparisons(tokens, ds.Comparisons)
	v := HeroView{
		Tokens: tokens,
		Number: LongForm(tokens),
		Chips:  make([]HeroChip, len(picks)),
	}
	for i, p := range picks {
		v.Chips[i] = HeroChip{
			Icon:  p.Icon,
			Count: p.MultiplierLabel(),
			Name:  p.Name,
			Delay: time.Duration(i) * ChipRevealStep,
		}
	}
	return v
}

type SliderLabels struct {
	Position float64
	Value    string // "128,000 tokens"
	Words    string // "≈ 96,241 words"
	Short    string // "128K"
}

// RenderSliderLabels derives the text shown around the slider.
func RenderSliderLabels(position float64, tokens int) SliderLabels {
	words := int(roundHalfUp(float64(tokens) / TokensPerWord))
	return SliderLabels{
		Position: position,
		Value:    LongForm(tokens) + " tokens",
		Words:    "≈ " + GroupedNumber(words) + " words",
		Short:    ShortForm(tokens),
	}
}

// FitState classifies a comparison against a budget.
type FitState string

const (
	FitsMultiple FitState = "fits-multiple"
	FitsOnce     FitState = "fits-once"
	DoesNotFit   FitState = "does-not-fit"
)

// BarColor is the fill color of a proportional bar.
type BarColor string

const (
	Green  BarColor = "green"
	Yellow BarColor = "yellow"
	Red    BarColor = "red"
)

type FitRow struct {
	Comparison
	Size    string
	State   FitState
	Label   string
	Ratio   float64
	FillPct float64
	Color   BarColor
}

type FitsView struct {
	Tokens int
	Rows   []FitRow
}

// ClassifyFit places one comparison into exactly one FitState for the budget.
func ClassifyFit(tokens int, c Comparison) FitRow {
	row := FitRow{Comparison: c, Size: LongForm(c.Tokens) + " tokens"}
	if c.Tokens <= 0 {
		row.State, row.Label, row.Color = DoesNotFit, "0%", Red
		return row
	}
	row.Ratio = float64(tokens) / float64(c.Tokens)
	row.FillPct = math.Min(100, row.Ratio*100)
	switch count := int(math.Floor(row.Ratio)); {
	case row.Ratio >= 1 && count > 1:
		row.State, row.Label = FitsMultiple, strconv.Itoa(count)+"×"
	case row.Ratio >= 1:
		row.State, row.Label = FitsOnce, "✓ Fits"
	default:
		row.State, row.Label = DoesNotFit, strconv.Itoa(int(roundHalfUp(row.FillPct)))+"%"
	}
	switch {
	case row.Ratio >= 1:
		row.Color = Green
	case row.FillPct > 50:
		row.Color = Yellow
	default:
		row.Color = Red
	}
	return row
}

// RenderFits classifies every comparison in dataset order.
func RenderFits(ds *Dataset, tokens int) FitsView {
	v := FitsView{Tokens: tokens, Rows: make([]FitRow, len(ds.Comparisons))}
	for i, c := range ds.Comparisons {
		v.Rows[i] = ClassifyFit(tokens, c)
	}
	return v
}

type ModelBar struct {
	Model
	WidthPct float64
	Label    string
}

type BarChartView struct {
	MaxTokens int
	Rows      []ModelBar
}

// LogBarWidth maps tokens onto [MinBarPct, 100] on a log scale over [1, maxTokens].
func LogBarWidth(tokens, maxTokens int) float64 {
	if maxTokens <= 1 {
		return 100
	}
	t := math.Max(1, float64(tokens))
	return MinBarPct + math.Log(t)/math.Log(float64(maxTokens))*(100-MinBarPct)
}

// RenderModelBars lays out one bar per model, largest first.
func RenderModelBars(ds *Dataset) BarChartView {
	maxTokens := ds.MaxModelTokens()
	v := BarChartView{MaxTokens: maxTokens, Rows: make([]ModelBar, len(ds.Models))}
	for i, m := range ds.Models {
		v.Rows[i] = ModelBar{
			Model:    m,
			WidthPct: LogBarWidth(m.Tokens, maxTokens),
			Label:    ShortForm(m.Tokens),
		}
	}
	return v
}

// CardState is the fit of the estimated text in one model.
type CardState string

const (
	CardNeutral  CardState = "neutral"
	CardFits     CardState = "can-fit"
	CardTooLarge CardState = "cannot-fit"
)

type ModelCard struct {
	Model
	State    CardState
	Label    string
	UsagePct float64
}

type EstimatorView struct {
	Words       int
	Tokens      int
	WordsLabel  string
	TokensLabel string
	Cards       []ModelCard
}

// CountWords counts whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// EstimateTokens converts a word count into an approximate token count.
func EstimateTokens(words int) int {
	return int(roundHalfUp(float64(words) * TokensPerWord))
}

// RenderEstimator estimates the size of text and checks it against every model.
func RenderEstimator(ds *Dataset, text string) EstimatorView {
	words := CountWords(text)
	est := EstimateTokens(words)
	v := EstimatorView{
		Words:       words,
		Tokens:      est,
		WordsLabel:  GroupedNumber(words),
		TokensLabel: GroupedNumber(est),
		Cards:       make([]ModelCard, len(ds.Models)),
	}
	for i, m := range ds.Models {
		card := ModelCard{Model: m}
		switch {
		case est == 0:
			card.State, card.Label = CardNeutral, ShortForm(m.Tokens)
		case m.Tokens >= est:
			card.UsagePct = math.Min(100, float64(est)/float64(m.Tokens)*100)
			card.State = CardFits
			card.Label = fixed1(card.UsagePct) + "% used"
		default:
			card.UsagePct = 100
			card.State, card.Label = CardTooLarge, "Too large"
		}
		v.Cards[i] = card
	}
	return v
}

type Fact struct {
	Model  string
	Tokens int
	Number string
	Unit   string
	Detail string
}

type FactsView struct {
	Cards []Fact
}

var facts = []Fact{
	{
		Model:  "Gemini 2.5 Pro",
		Tokens: 1048576,
		Number: "15",
		Unit:   "novels",
		Detail: "1M tokens ≈ 15 full-length novels. You could paste the entire Harry Potter + LOTR series and still have room.",
	},
	{
		Model:  "Llama 4 Scout",
		Tokens: 10000000,
		Number: "7,500",
		Unit:   "research papers",
		Detail: "10M tokens is enough for ~7,500 average research papers. That's an entire PhD program's reading list.",
	},
	{
		Model:  "GPT-4 (Original)",
		Tokens: 8192,
		Number: "6",
		Unit:   "pages",
		Detail: "The original GPT-4 could only handle ~6 single-spaced pages. We've come 1,000× since then.",
	},
	{
		Model:  "Claude 4 Opus",
		Tokens: 200000,
		Number: "1",
		Unit:   "entire codebase",
		Detail: "200K tokens fits a full 50-file project. You can paste your entire startup's code in one message.",
	},
	{
		Model:  "All English Wikipedia",
		Tokens: 5830000000,
		Number: "556",
		Unit:   "Gemini windows",
		Detail: "English Wikipedia has ~5.8B tokens. Even Gemini's 1M context would need 556 windows to hold it all.",
	},
	{
		Model:  "Galactica → GPT-4.1",
		Tokens: 1047576,
		Number: "128×",
		Unit:   "growth in 2 years",
		Detail: "Context windows grew from 8K to 1M+ in just 2 years — a 128× increase. And it's still accelerating.",
	},
}

// RenderFacts returns the fixed fact cards.
func RenderFacts() FactsView {
	out := make([]Fact, len(facts))
	copy(out, facts)
	return FactsView{Cards: out}
}

// Views is everything on screen for one state.
type Views struct {
	Slider    SliderLabels
	Hero      HeroView
	Fits      FitsView
	Bars      BarChartView
	Estimator EstimatorView
	Facts     FactsView
}

// Render projects the dataset and state into every view.
func Render(ds *Dataset, s State) Views {
	return Views{
		Slider:    RenderSliderLabels(s.Position, s.Tokens),
		Hero:      RenderHero(ds, s.Tokens),
		Fits:      RenderFits(ds, s.Tokens),
		Bars:      RenderModelBars(ds),
		Estimator: RenderEstimator(ds, s.Text),
		Facts:     RenderFacts(),
	}
}
