package contextscale

import "math"

// Token range covered by the slider.
const (
	MinTokens = 1000
	MaxTokens = 12_000_000 // covers Llama 4 Scout (10M)
)

var (
	logMinTokens = math.Log10(MinTokens)
	logMaxTokens = math.Log10(MaxTokens)
)

// ToTokens maps a slider position in [0,100] onto the token range on a log scale.
// Positions outside [0,100] are clamped.
func ToTokens(position float64) int {
	position = clampPosition(position)
	logVal := logMinTokens + (position/100)*(logMaxTokens-logMinTokens)
	return int(roundHalfUp(math.Pow(10, logVal)))
}

// ToPosition is the approximate inverse of ToTokens.
// Budgets below MinTokens map to 0, budgets above MaxTokens map to 100.
func ToPosition(tokens int) float64 {
	logVal := math.Log10(float64(ClampTokens(tokens)))
	return (logVal - logMinTokens) / (logMaxTokens - logMinTokens) * 100
}

// ClampTokens limits a budget to the slider's token range.
func ClampTokens(tokens int) int {
	return min(MaxTokens, max(MinTokens, tokens))
}

func clampPosition(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// roundHalfUp rounds .5 towards +Inf, the way a browser's Math.round does.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
