package game

import "fmt"

// PatternVariant selects which completions count as a win.
type PatternVariant int

const (
	// Lines wins on any complete row, column or full diagonal.
	Lines PatternVariant = iota
	// FullHouse wins only when all 25 cells are marked.
	FullHouse
)

// Pattern identifies the completion that won a game.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternRow0
	PatternRow1
	PatternRow2
	PatternRow3
	PatternRow4
	PatternCol0
	PatternCol1
	PatternCol2
	PatternCol3
	PatternCol4
	PatternDiagonal
	PatternAntiDiagonal
	PatternFullHouse
)

func (p Pattern) String() string {
	switch {
	case p >= PatternRow0 && p <= PatternRow4:
		return fmt.Sprintf("row %d", int(p-PatternRow0))
	case p >= PatternCol0 && p <= PatternCol4:
		return fmt.Sprintf("column %d", int(p-PatternCol0))
	case p == PatternDiagonal:
		return "diagonal"
	case p == PatternAntiDiagonal:
		return "anti-diagonal"
	case p == PatternFullHouse:
		return "full house"
	}
	return "none"
}

// CheckWin evaluates a card against a marked set. Patterns are tried in a
// fixed order: rows top to bottom, then columns left to right, then the main
// diagonal, then the anti-diagonal; the first complete one is reported.
// Under FullHouse only a fully marked card wins. The marked set is never
// mutated.
func CheckWin(card Card, marked map[int]bool, v PatternVariant) (bool, Pattern) {
	if v == FullHouse {
		for _, n := range card {
			if !marked[n] {
				return false, PatternNone
			}
		}
		return true, PatternFullHouse
	}

	line := func(cells [gridDim]int) bool {
		for _, i := range cells {
			if !marked[card[i]] {
				return false
			}
		}
		return true
	}

	for row := 0; row < gridDim; row++ {
		var cells [gridDim]int
		for col := 0; col < gridDim; col++ {
			cells[col] = row*gridDim + col
		}
		if line(cells) {
			return true, PatternRow0 + Pattern(row)
		}
	}
	for col := 0; col < gridDim; col++ {
		var cells [gridDim]int
		for row := 0; row < gridDim; row++ {
			cells[row] = row*gridDim + col
		}
		if line(cells) {
			return true, PatternCol0 + Pattern(col)
		}
	}
	if line([gridDim]int{0, 6, 12, 18, 24}) {
		return true, PatternDiagonal
	}
	if line([gridDim]int{4, 8, 12, 16, 20}) {
		return true, PatternAntiDiagonal
	}
	return false, PatternNone
}
