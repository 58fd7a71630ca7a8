package main

import (
	"math"
	"math/bits"
)

const (
	walledRow     = uint64(1<<(boardWidth+1) | 1) // 100000000001
	leftBorderRow = uint64(3 << boardWidth)       // 110000000000
)

// extractFeatures derives the 13-value feature vector from a resolved
// placement. Everything is measured on the post-clear grid except
// landing height and eroded cells, which describe the piece before its
// rows were removed.
func extractFeatures(p *placement) [numFeatures]float64 {
	rows := &p.rows
	heights := &p.heights
	var f [numFeatures]float64

	// 0: landing height, the topmost row the piece occupied.
	f[0] = float64(p.landing)

	// 1: eroded piece cells, piece cells inside cleared rows scaled by
	// the number of rows cleared.
	f[1] = float64(p.eroded * p.cleared)

	// 2: row transitions, with both walls counting as filled. Shift the
	// row left once, wall both copies, and xor; set bits mark
	// transitions. An empty row contributes 2.
	var rowTrans int
	for y := 0; y < boardHeight; y++ {
		row := rows[y]
		rowTrans += bits.OnesCount64(((row << 1) | walledRow) ^ (row | leftBorderRow))
	}
	f[2] = float64(rowTrans)

	// 3: column transitions, with floor and ceiling counting as filled.
	// Neighboring rows xor to set bits where a column changed state.
	colTrans := bits.OnesCount64(rows[0]^filledRow) + bits.OnesCount64(rows[boardHeight-1]^filledRow)
	for y := 0; y < boardHeight-1; y++ {
		colTrans += bits.OnesCount64(rows[y] ^ rows[y+1])
	}
	f[3] = float64(colTrans)

	// 4: holes. Every cell below a column's height is either filled or a
	// hole, and no filled cell sits above the height, so
	// holes = sum of heights - filled cells.
	var sumHeights, filled int
	for x := 0; x < boardWidth; x++ {
		sumHeights += heights[x]
	}
	for y := 0; y < boardHeight; y++ {
		filled += bits.OnesCount64(rows[y])
	}
	f[4] = float64(sumHeights - filled)

	// 5: well sums. A column strictly lower than both neighbors adds the
	// gap up to the shorter neighbor. Edge columns stand in for their own
	// missing neighbor, so the strict test never fires there.
	var wells int
	for x := 0; x < boardWidth; x++ {
		left, right := heights[x], heights[x]
		if x > 0 {
			left = heights[x-1]
		}
		if x < boardWidth-1 {
			right = heights[x+1]
		}
		if cur := heights[x]; cur < left && cur < right {
			if left < right {
				wells += left - cur
			} else {
				wells += right - cur
			}
		}
	}
	f[5] = float64(wells)

	// 6: hole depth, each hole weighted by its distance below the
	// column's height.
	var holeDepth int
	for x := 0; x < boardWidth; x++ {
		for y := 0; y < heights[x]; y++ {
			if rows[y]>>x&1 == 0 {
				holeDepth += heights[x] - y
			}
		}
	}
	f[6] = float64(holeDepth)

	// 7: rows with holes. cover accumulates every column filled somewhere
	// above the current row; a covered empty cell marks the row.
	var rowsWithHoles int
	var cover uint64
	for y := boardHeight - 1; y >= 0; y-- {
		if cover&^rows[y] != 0 {
			rowsWithHoles++
		}
		cover |= rows[y]
	}
	f[7] = float64(rowsWithHoles)

	// 8: diversity, total height difference between adjacent columns.
	var diversity int
	for x := 1; x < boardWidth; x++ {
		d := heights[x] - heights[x-1]
		if d < 0 {
			d = -d
		}
		diversity += d
	}
	f[8] = float64(diversity)

	// 9-12: RFB terms, Gaussian responses of the mean column height
	// relative to thirds of the board height.
	c := float64(sumHeights) / boardWidth
	h := float64(boardHeight)
	sigma := h / 5
	for k := 0; k < 4; k++ {
		term := c - float64(k)*h/3
		f[9+k] = math.Exp(-term * term / (2 * sigma * sigma))
	}
	return f
}
