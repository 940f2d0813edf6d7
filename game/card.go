package game

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Variant selects how cards are generated and which number range is drawn.
type Variant int

const (
	// Banded75 is the classic 75-ball game: each column of the card is
	// sampled from its own 15-number band (B 1-15 ... O 61-75).
	Banded75 Variant = iota
	// Open100 samples all 25 card values from 1-100 with no column bands.
	Open100
)

const (
	gridDim  = 5
	cardSize = gridDim * gridDim
	bandSize = 15
)

// Range returns the highest drawable number for the variant.
func (v Variant) Range() int {
	if v == Open100 {
		return 100
	}
	return 75
}

// Label formats a drawn number for display. Banded75 prefixes the column
// letter, e.g. "B-12"; Open100 numbers are bare.
func (v Variant) Label(n int) string {
	if v == Open100 {
		return strconv.Itoa(n)
	}
	letters := [gridDim]string{"B", "I", "N", "G", "O"}
	return letters[(n-1)/bandSize] + "-" + strconv.Itoa(n)
}

// Card is a 5x5 bingo board stored row-major. Immutable once generated.
type Card []int

// Cell returns the value at the given row and column.
func (c Card) Cell(row, col int) int {
	return c[row*gridDim+col]
}

// Contains reports whether n appears on the card.
func (c Card) Contains(n int) bool {
	for _, v := range c {
		if v == n {
			return true
		}
	}
	return false
}

// GenerateCard produces a valid card for the variant from the given random
// source. Banded75 samples 5 distinct values per column band and interleaves
// them row-major; Open100 samples 25 distinct values from 1-100.
func GenerateCard(v Variant, r *rand.Rand) Card {
	card := make(Card, cardSize)
	if v == Open100 {
		perm := r.Perm(v.Range())
		for i := 0; i < cardSize; i++ {
			card[i] = perm[i] + 1
		}
		mustValidCard(v, card)
		return card
	}

	for col := 0; col < gridDim; col++ {
		low := col*bandSize + 1
		perm := r.Perm(bandSize)
		for row := 0; row < gridDim; row++ {
			card[row*gridDim+col] = low + perm[row]
		}
	}
	mustValidCard(v, card)
	return card
}

// mustValidCard panics on a malformed card. A failure here is a generator
// bug, never a runtime condition.
func mustValidCard(v Variant, c Card) {
	if len(c) != cardSize {
		panic(fmt.Sprintf("game: card has %d cells, want %d", len(c), cardSize))
	}
	seen := make(map[int]bool, cardSize)
	for i, n := range c {
		if n < 1 || n > v.Range() {
			panic(fmt.Sprintf("game: card value %d outside range 1-%d", n, v.Range()))
		}
		if seen[n] {
			panic(fmt.Sprintf("game: duplicate card value %d", n))
		}
		seen[n] = true
		if v == Banded75 {
			col := i % gridDim
			low, high := col*bandSize+1, (col+1)*bandSize
			if n < low || n > high {
				panic(fmt.Sprintf("game: value %d in column %d outside band %d-%d", n, col, low, high))
			}
		}
	}
}
