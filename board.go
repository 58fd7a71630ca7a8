package main

import (
	"errors"
	"math/bits"
)

const (
	boardWidth  = 10
	boardHeight = 15
	numFeatures = 13
)

// filledRow has every playfield bit set. Bit c corresponds with column c.
const filledRow = uint64(1<<boardWidth - 1)

// Weights paired positionally with the feature vector. Placements are
// scored by dot product and the minimum wins; the values are only
// meaningful under that convention.
var defaultWeights = []float64{
	148226.044742,
	-235469.293532,
	227818.466659,
	28075.637356,
	-151691.585200,
	168940.778157,
	-924.939634,
	902941.598550,
	-81899.099075,
	229232.505421,
	196865.056503,
	19932.300712,
	185679.872248,
}

// The only two ways a placement can fail.
var (
	errOutOfBounds = errors.New("piece out of bounds")
	errDoesNotFit  = errors.New("piece doesn't fit")
)

const noColor = int8(-1)

// Board is the persistent game state. rows is the occupancy grid, one
// bitmask per row with row 0 at the bottom; colors holds the piece type
// of each filled cell; heights caches, per column, one past the topmost
// filled row.
type Board struct {
	rows    [boardHeight]uint64
	colors  [boardHeight][boardWidth]int8
	heights [boardWidth]int
	score   int
}

func newBoard() *Board {
	b := &Board{}
	for y := range b.colors {
		for x := range b.colors[y] {
			b.colors[y][x] = noColor
		}
	}
	return b
}

func (b *Board) Score() int {
	return b.score
}

func (b *Board) occupied(y, x int) bool {
	return b.rows[y]>>x&1 != 0
}

// placement is the resolved outcome of dropping one piece: where it
// landed, which rows filled up, and the grid after clearing. Both the
// pure and the mutating entry point are built on it.
type placement struct {
	shape    shape
	x, y     int // y = board row the shape's bottom box row lands on
	landing  int // highest row occupied by the piece, pre-clear
	eroded   int // piece cells lying in cleared rows
	cleared  int
	fullMask uint // pre-clear indexes of cleared rows
	rows     [boardHeight]uint64
	heights  [boardWidth]int
}

// resolve computes the resting row by gravity, validates the placement,
// and returns the post-clear grid without touching the board.
func (b *Board) resolve(piece pieceType, x, rotate int) (placement, error) {
	s := rotations[piece][rotate]
	if x+s.leftmost < 0 || x+s.rightmost >= boardWidth {
		return placement{}, errOutOfBounds
	}

	// The piece rests on the highest obstruction across its footprint:
	// for every spanned column and filled row offset i, the box bottom
	// cannot sit below heights[col]-i.
	y := 0
	for j := 0; j < s.width; j++ {
		h := b.heights[x+j]
		for i := 0; i < s.height; i++ {
			if s.cell(i, j) && h-i > y {
				y = h - i
			}
		}
	}

	p := placement{shape: s, x: x, y: y, rows: b.rows}
	for i := 0; i < s.height; i++ {
		if s.mask[i] == 0 {
			continue
		}
		row := y + i
		if row >= boardHeight {
			return placement{}, errDoesNotFit
		}
		bits := s.mask[i] << x
		if p.rows[row]&bits != 0 {
			return placement{}, errDoesNotFit
		}
		p.rows[row] |= bits
		p.landing = row
	}

	for row := 0; row < boardHeight; row++ {
		if p.rows[row] == filledRow {
			p.fullMask |= 1 << row
			p.cleared++
		}
	}
	for i := 0; i < s.height; i++ {
		if s.mask[i] != 0 && p.fullMask>>(y+i)&1 != 0 {
			p.eroded += bits.OnesCount64(s.mask[i])
		}
	}

	if p.cleared > 0 {
		compactRows(&p.rows, p.fullMask)
	}
	p.heights = recomputeHeights(&p.rows)
	return p, nil
}

// compactRows removes the rows flagged in fullMask, shifting survivors
// down without reordering them.
func compactRows(rows *[boardHeight]uint64, fullMask uint) {
	w := 0
	for y := 0; y < boardHeight; y++ {
		if fullMask>>y&1 != 0 {
			continue
		}
		rows[w] = rows[y]
		w++
	}
	for ; w < boardHeight; w++ {
		rows[w] = 0
	}
}

// recomputeHeights scans each column from the top for its highest
// filled cell.
func recomputeHeights(rows *[boardHeight]uint64) [boardWidth]int {
	var heights [boardWidth]int
	for x := 0; x < boardWidth; x++ {
		for y := boardHeight - 1; y >= 0; y-- {
			if rows[y]>>x&1 != 0 {
				heights[x] = y + 1
				break
			}
		}
	}
	return heights
}

// Evaluate computes the rows cleared and feature vector of a placement
// as if it were applied. The board is never mutated; an illegal
// placement reports ok=false.
func (b *Board) Evaluate(piece pieceType, x, rotate int) (int, [numFeatures]float64, bool) {
	p, err := b.resolve(piece, x, rotate)
	if err != nil {
		return 0, [numFeatures]float64{}, false
	}
	return p.cleared, extractFeatures(&p), true
}

// Apply commits a placement: merges the piece, clears full rows, updates
// the height cache and score. The board is untouched when an error is
// returned.
func (b *Board) Apply(piece pieceType, x, rotate int) error {
	p, err := b.resolve(piece, x, rotate)
	if err != nil {
		return err
	}

	color := int8(piece)
	for i := 0; i < p.shape.height; i++ {
		for j := 0; j < p.shape.width; j++ {
			if p.shape.cell(i, j) {
				b.colors[p.y+i][p.x+j] = color
			}
		}
	}
	if p.cleared > 0 {
		w := 0
		for y := 0; y < boardHeight; y++ {
			if p.fullMask>>y&1 != 0 {
				continue
			}
			b.colors[w] = b.colors[y]
			w++
		}
		for ; w < boardHeight; w++ {
			for x := range b.colors[w] {
				b.colors[w][x] = noColor
			}
		}
	}

	b.rows = p.rows
	b.heights = p.heights
	b.score += clearBonus(p.cleared)
	return nil
}

// clearBonus is the score awarded for the rows cleared by one commit.
func clearBonus(cleared int) int {
	switch cleared {
	case 1:
		return 100
	case 2:
		return 300
	case 3:
		return 500
	case 4:
		return 800
	default:
		return 0
	}
}
