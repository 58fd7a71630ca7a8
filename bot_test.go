package main

import "testing"

// fixedPieces replays a predetermined sequence, cycling when exhausted.
type fixedPieces struct {
	seq []pieceType
	i   int
}

func (p *fixedPieces) next() pieceType {
	piece := p.seq[p.i%len(p.seq)]
	p.i++
	return piece
}

func TestTieBreakPrefersLowestRotationThenColumn(t *testing.T) {
	// All-zero weights score every legal placement identically, so the
	// winner must be the first candidate enumerated.
	zero := make([]float64, numFeatures)
	for _, piece := range []pieceType{pieceO, pieceT, pieceI, pieceS} {
		act, ok := findBestAction(newBoard(), piece, zero)
		if !ok {
			t.Fatalf("piece %c: expected a placement", piece.code())
		}
		if act.rotate != 0 || act.x != 0 {
			t.Errorf("piece %c: got rotation %d column %d, want 0 0", piece.code(), act.rotate, act.x)
		}
	}
}

func TestMinimumScoreSelection(t *testing.T) {
	// Weighting only landing height: positive weight favors the flat
	// horizontal I, negative favors the tall vertical one.
	low := make([]float64, numFeatures)
	low[0] = 1
	act, ok := findBestAction(newBoard(), pieceI, low)
	if !ok {
		t.Fatal("expected a placement")
	}
	if act.rotate != 0 || act.x != 0 {
		t.Errorf("got rotation %d column %d, want horizontal at 0 0", act.rotate, act.x)
	}

	high := make([]float64, numFeatures)
	high[0] = -1
	act, ok = findBestAction(newBoard(), pieceI, high)
	if !ok {
		t.Fatal("expected a placement")
	}
	if act.rotate != 1 || act.x != 0 {
		t.Errorf("got rotation %d column %d, want vertical at 0 0", act.rotate, act.x)
	}
}

func TestNoLegalPlacementIsGameOver(t *testing.T) {
	b := newBoard()
	for y := range b.rows {
		b.rows[y] = filledRow
	}
	b.heights = recomputeHeights(&b.rows)
	if _, ok := findBestAction(b, pieceO, defaultWeights); ok {
		t.Error("expected no legal placement on a full board")
	}
}

func TestFindBestActionDoesNotMutate(t *testing.T) {
	b := boardWithRows(map[int]uint64{0: 0b0000001111})
	snapshot := *b
	findBestAction(b, pieceT, defaultWeights)
	if *b != snapshot {
		t.Error("selection mutated the board")
	}
}

func TestPlayGameDeterministicPerSeed(t *testing.T) {
	a := playGame(defaultWeights, newRandomPieces(42), 5000)
	b := playGame(defaultWeights, newRandomPieces(42), 5000)
	if a != b {
		t.Errorf("same seed produced different scores: %d vs %d", a, b)
	}
}

func TestPlayGameWithFixedSequence(t *testing.T) {
	// Flat stacking weights and an endless run of O pieces: the board
	// fills 2x2 blocks left to right and clears pairs of rows.
	low := make([]float64, numFeatures)
	low[0] = 1
	score := playGame(low, &fixedPieces{seq: []pieceType{pieceO}}, 5)
	if score != 300 {
		t.Errorf("expected one double-row clear worth 300, got %d", score)
	}
}
