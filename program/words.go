package main

import (
	"sort"
	"strings"
	"unicode"

	"github.com/keilerkonzept/topk"
	"github.com/keilerkonzept/topk/heap"
)

const (
	wordSketchWidth = 1024
	wordSketchDepth = 3
)

// topWords returns the k most frequent words of text, most frequent first.
// Words are lower-cased with surrounding punctuation stripped.
func topWords(text string, k int) []heap.Item {
	if k < 1 {
		return nil
	}
	sketch := topk.New(k,
		topk.WithWidth(wordSketchWidth),
		topk.WithDepth(wordSketchDepth),
	)
	for _, w := range strings.Fields(text) {
		if w = normalizeWord(w); w != "" {
			sketch.Incr(w)
		}
	}

	items := cloneItems(sketch.SortedSlice())
	sort.SliceStable(items, func(i, j int) bool {
		li := items[i]
		lj := items[j]
		if li.Count != lj.Count {
			return li.Count > lj.Count
		}
		return li.Item < lj.Item
	})
	if len(items) > k {
		items = items[:k]
	}
	return items
}

func normalizeWord(w string) string {
	w = strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(w)
}

func cloneItems(in []heap.Item) []heap.Item {
	out := make([]heap.Item, len(in))
	copy(out, in)
	return out
}
