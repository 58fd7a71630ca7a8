package main

// The seven standard tetrominoes, indexed in the order the rest of the
// program (and the wire protocol) expects them.
type pieceType int

const (
	pieceI pieceType = iota
	pieceT
	pieceO
	pieceJ
	pieceL
	pieceS
	pieceZ
)

const (
	numPieces = 7
	numForms  = 4 // rotation states per piece
)

var pieceCodes = [numPieces]byte{'I', 'T', 'O', 'J', 'L', 'S', 'Z'}

func (p pieceType) code() byte {
	return pieceCodes[p]
}

// shape is one rotation state of a piece, trimmed to its bounding box.
// mask[i] holds the filled cells of row i, counting rows up from the
// bottom of the box; bit j corresponds with column offset j.
type shape struct {
	mask      [4]uint64
	width     int
	height    int
	leftmost  int
	rightmost int
}

func (s shape) cell(i, j int) bool {
	return s.mask[i]>>j&1 != 0
}

// Base orientations, drawn top row first. The other rotation states are
// derived at init rather than written out by hand.
var baseShapes = [numPieces][]string{
	pieceI: {"XXXX"},
	pieceT: {".X.", "XXX"},
	pieceO: {"XX", "XX"},
	pieceJ: {"X..", "XXX"},
	pieceL: {"..X", "XXX"},
	pieceS: {".XX", "XX."},
	pieceZ: {"XX.", ".XX"},
}

// rotations holds all four rotation states for each piece. Successive
// states are clockwise quarter turns of the base orientation. Pieces with
// fewer distinct states (O, I, S, Z) still carry four entries so a
// rotation index is never out of range.
var rotations = buildRotations()

func buildRotations() [numPieces][numForms]shape {
	var table [numPieces][numForms]shape
	for p := 0; p < numPieces; p++ {
		grid := parseShape(baseShapes[p])
		for form := 0; form < numForms; form++ {
			table[p][form] = gridToShape(grid)
			grid = rotateCW(grid)
		}
	}
	return table
}

// parseShape converts the string art into a cell grid with row 0 at the
// bottom.
func parseShape(art []string) [][]bool {
	h := len(art)
	w := len(art[0])
	grid := make([][]bool, h)
	for i := range grid {
		grid[i] = make([]bool, w)
		for j := 0; j < w; j++ {
			grid[i][j] = art[h-1-i][j] == 'X'
		}
	}
	return grid
}

// rotateCW turns an h×w grid into a w×h grid rotated a quarter turn
// clockwise. With row 0 at the bottom, cell (i, j) maps to (w-1-j, i).
func rotateCW(grid [][]bool) [][]bool {
	h := len(grid)
	w := len(grid[0])
	out := make([][]bool, w)
	for i := range out {
		out[i] = make([]bool, h)
		for j := 0; j < h; j++ {
			out[i][j] = grid[j][w-1-i]
		}
	}
	return out
}

func gridToShape(grid [][]bool) shape {
	s := shape{height: len(grid), width: len(grid[0])}
	s.leftmost = s.width
	for i := 0; i < s.height; i++ {
		for j := 0; j < s.width; j++ {
			if grid[i][j] {
				s.mask[i] |= 1 << j
				if j < s.leftmost {
					s.leftmost = j
				}
				if j > s.rightmost {
					s.rightmost = j
				}
			}
		}
	}
	return s
}
