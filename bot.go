package main

import (
	"math"
	"math/rand"
)

// action is one candidate placement with its weighted feature score.
type action struct {
	rotate, x int
	score     float64
}

// findBestAction enumerates every rotation and column the piece fits in
// and returns the placement with the minimum weighted score. Ties keep
// the earliest candidate in enumeration order: lowest rotation, then
// lowest column. ok=false means nothing fits and the game is over.
func findBestAction(b *Board, piece pieceType, weights []float64) (action, bool) {
	best := action{score: math.Inf(1)}
	found := false
	for rotate := 0; rotate < numForms; rotate++ {
		s := rotations[piece][rotate]
		for x := 0; x+s.width <= boardWidth; x++ {
			_, features, ok := b.Evaluate(piece, x, rotate)
			if !ok {
				continue
			}
			var score float64
			for i := 0; i < numFeatures; i++ {
				score += features[i] * weights[i]
			}
			if !found || score < best.score {
				best = action{rotate: rotate, x: x, score: score}
				found = true
			}
		}
	}
	return best, found
}

// pieceSource feeds the game loop. Tests swap in fixed sequences.
type pieceSource interface {
	next() pieceType
}

type randomPieces struct {
	r *rand.Rand
}

func newRandomPieces(seed int64) randomPieces {
	return randomPieces{r: rand.New(rand.NewSource(seed))}
}

func (p randomPieces) next() pieceType {
	return pieceType(p.r.Intn(numPieces))
}

// playGame drops up to maxPieces pieces chosen by src onto a fresh
// board and returns the final score. The game ends early when no legal
// placement remains.
func playGame(weights []float64, src pieceSource, maxPieces int) int {
	b := newBoard()
	for n := 0; n < maxPieces; n++ {
		piece := src.next()
		act, ok := findBestAction(b, piece, weights)
		if !ok {
			break
		}
		if err := b.Apply(piece, act.x, act.rotate); err != nil {
			// Evaluate already validated this placement.
			panic(err)
		}
	}
	return b.Score()
}
