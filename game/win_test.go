package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCard is a fixed banded card laid out row-major; row 0 is
// [3 17 33 48 62], column 0 is [3 1 2 4 5].
func testCard() Card {
	return Card{
		3, 17, 33, 48, 62,
		1, 18, 34, 49, 63,
		2, 19, 35, 50, 64,
		4, 20, 36, 51, 65,
		5, 21, 37, 52, 66,
	}
}

func mark(ns ...int) map[int]bool {
	m := make(map[int]bool, len(ns))
	for _, n := range ns {
		m[n] = true
	}
	return m
}

func TestCheckWinRow(t *testing.T) {
	won, pattern := CheckWin(testCard(), mark(3, 17, 33, 48, 62), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternRow0, pattern)

	won, pattern = CheckWin(testCard(), mark(5, 21, 37, 52, 66), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternRow4, pattern)
}

func TestCheckWinColumn(t *testing.T) {
	won, pattern := CheckWin(testCard(), mark(3, 1, 2, 4, 5), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternCol0, pattern)

	won, pattern = CheckWin(testCard(), mark(62, 63, 64, 65, 66), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternCol4, pattern)
}

func TestCheckWinDiagonals(t *testing.T) {
	won, pattern := CheckWin(testCard(), mark(3, 18, 35, 51, 66), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternDiagonal, pattern)

	won, pattern = CheckWin(testCard(), mark(62, 49, 35, 20, 5), Lines)
	assert.True(t, won)
	assert.Equal(t, PatternAntiDiagonal, pattern)
}

func TestCheckWinRowBeatsColumn(t *testing.T) {
	// Row 0 and column 0 complete at once; the row is reported.
	marked := mark(3, 17, 33, 48, 62, 1, 2, 4, 5)
	won, pattern := CheckWin(testCard(), marked, Lines)
	assert.True(t, won)
	assert.Equal(t, PatternRow0, pattern)
}

func TestCheckWinIncomplete(t *testing.T) {
	won, pattern := CheckWin(testCard(), mark(3, 17, 33, 48), Lines)
	assert.False(t, won)
	assert.Equal(t, PatternNone, pattern)

	won, pattern = CheckWin(testCard(), mark(), Lines)
	assert.False(t, won)
	assert.Equal(t, PatternNone, pattern)
}

func TestCheckWinFullHouse(t *testing.T) {
	card := testCard()

	// A single row is not enough under FullHouse.
	won, pattern := CheckWin(card, mark(3, 17, 33, 48, 62), FullHouse)
	assert.False(t, won)
	assert.Equal(t, PatternNone, pattern)

	all := make(map[int]bool, len(card))
	for _, n := range card {
		all[n] = true
	}
	won, pattern = CheckWin(card, all, FullHouse)
	assert.True(t, won)
	assert.Equal(t, PatternFullHouse, pattern)
}

func TestCheckWinPure(t *testing.T) {
	card := testCard()
	marked := mark(3, 17, 33, 48)

	won1, p1 := CheckWin(card, marked, Lines)
	won2, p2 := CheckWin(card, marked, Lines)
	assert.Equal(t, won1, won2)
	assert.Equal(t, p1, p2)

	require.Len(t, marked, 4)
	assert.Equal(t, testCard(), card)
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "row 0", PatternRow0.String())
	assert.Equal(t, "row 4", PatternRow4.String())
	assert.Equal(t, "column 2", PatternCol2.String())
	assert.Equal(t, "diagonal", PatternDiagonal.String())
	assert.Equal(t, "anti-diagonal", PatternAntiDiagonal.String())
	assert.Equal(t, "full house", PatternFullHouse.String())
	assert.Equal(t, "none", PatternNone.String())
}
