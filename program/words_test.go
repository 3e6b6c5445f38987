package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopWords(t *testing.T) {
	items := topWords("b a b c b a", 2)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Item)
	assert.EqualValues(t, 3, items[0].Count)
	assert.Equal(t, "a", items[1].Item)
	assert.EqualValues(t, 2, items[1].Count)
}

func TestTopWordsTiesByWord(t *testing.T) {
	items := topWords("x y y x z", 3)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"x", "y", "z"}, []string{items[0].Item, items[1].Item, items[2].Item})
}

func TestTopWordsNormalizes(t *testing.T) {
	items := topWords("Hello, hello! HELLO -- world.", 1)
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Item)
	assert.EqualValues(t, 3, items[0].Count)
}

func TestTopWordsEmpty(t *testing.T) {
	assert.Nil(t, topWords("anything", 0))
	assert.Empty(t, topWords("   ", 3))
	assert.Empty(t, topWords("... !!", 3))
}

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "don't", normalizeWord("\"Don't\""))
	assert.Equal(t, "gpt-4", normalizeWord("(GPT-4)"))
	assert.Equal(t, "", normalizeWord("--"))
}
