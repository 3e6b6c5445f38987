package contextscale

import (
	"math"
	"strconv"
)

// MaxPicks bounds the number of comparisons shown for a budget.
const MaxPicks = 5

// Pick is a comparison chosen to illustrate a budget.
type Pick struct {
	Comparison
	// Multiplier is how many whole copies of the item fit in the budget.
	Multiplier int
}

// MultiplierLabel returns "N×" when more than one copy fits, otherwise "".
func (p Pick) MultiplierLabel() string {
	if p.Multiplier > 1 {
		return strconv.Itoa(p.Multiplier) + "×"
	}
	return ""
}

// SelectComparisons picks a small, varied set of items that fit in tokens:
// the largest fitting item, the one closest to a fifth of the budget, a small
// one below a twentieth of the budget and a book. Comparisons must be sorted
// ascending by tokens. The result is in selection order.
func SelectComparisons(tokens int, comparisons []Comparison) []Pick {
	fitting := make([]int, 0, len(comparisons))
	for i, c := range comparisons {
		if c.Tokens > 0 && c.Tokens <= tokens {
			fitting = append(fitting, i)
		}
	}
	if len(fitting) == 0 {
		return nil
	}

	chosen := make([]int, 0, MaxPicks)
	taken := func(i int) bool {
		for _, c := range chosen {
			if c == i {
				return true
			}
		}
		return false
	}

	largest := fitting[len(fitting)-1]
	chosen = append(chosen, largest)

	midTarget := float64(tokens) / 5
	mid := -1
	for _, i := range fitting {
		if i == largest {
			continue
		}
		if mid < 0 || math.Abs(float64(comparisons[i].Tokens)-midTarget) < math.Abs(float64(comparisons[mid].Tokens)-midTarget) {
			mid = i
		}
	}
	if mid >= 0 {
		chosen = append(chosen, mid)
	}

	smallLimit := float64(tokens) / 20
	for _, i := range fitting {
		if !taken(i) && float64(comparisons[i].Tokens) < smallLimit {
			chosen = append(chosen, i)
			break
		}
	}

	if len(chosen) < MaxPicks {
		for k := len(fitting) - 1; k >= 0; k-- {
			i := fitting[k]
			if comparisons[i].Category == CategoryBooks && !taken(i) {
				chosen = append(chosen, i)
				break
			}
		}
	}

	if len(chosen) > MaxPicks {
		chosen = chosen[:MaxPicks]
	}
	picks := make([]Pick, len(chosen))
	for k, i := range chosen {
		c := comparisons[i]
		picks[k] = Pick{Comparison: c, Multiplier: tokens / c.Tokens}
	}
	return picks
}

// CategoryBooks is the comparison category the selector always tries to include.
const CategoryBooks = "books"
