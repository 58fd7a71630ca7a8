package main

import (
	"math"
	"sync/atomic"
	"testing"
)

func TestNormalize(t *testing.T) {
	w := make([]float64, numFeatures)
	w[0], w[1] = 3, 4
	n := normalize(w)
	if n[0] != 0.6 || n[1] != 0.8 {
		t.Errorf("normalize([3 4 0...]) = [%v %v ...], want [0.6 0.8 ...]", n[0], n[1])
	}
	if w[0] != 3 {
		t.Error("normalize mutated its input")
	}

	zero := make([]float64, numFeatures)
	for i, v := range normalize(zero) {
		if v != 0 {
			t.Errorf("normalized zero vector has %v at %d", v, i)
		}
	}
}

func TestMeanAndVariance(t *testing.T) {
	data := []float64{2, 4, 6}
	m := mean(data)
	if m != 4 {
		t.Errorf("mean = %v, want 4", m)
	}
	if v := variance(data, m); math.Abs(v-8.0/3.0) > 1e-12 {
		t.Errorf("variance = %v, want %v", v, 8.0/3.0)
	}
}

func TestFormatWeights(t *testing.T) {
	got := formatWeights([]float64{1, -0.5})
	if got != "[1.000000, -0.500000]" {
		t.Errorf("formatWeights = %q", got)
	}
}

func TestUpdateRefitsOnEliteAndTracksBest(t *testing.T) {
	ce := newCrossEntropy(10, 1, nil, nil)
	if ce.cutoff != 1 {
		t.Fatalf("cutoff = %d, want 1", ce.cutoff)
	}
	top := make([]float64, numFeatures)
	top[0] = 3
	other := make([]float64, numFeatures)
	other[0] = -100
	ce.update([]ceResult{
		{weights: top, score: 50},
		{weights: other, score: 10},
	})
	if ce.means[0] != 3 {
		t.Errorf("means[0] = %v, want 3", ce.means[0])
	}
	if ce.variances[0] != 0 {
		t.Errorf("variances[0] = %v, want 0 with a single elite", ce.variances[0])
	}
	if ce.bestScore != 50 {
		t.Errorf("bestScore = %v, want 50", ce.bestScore)
	}
	if ce.bestWeights[0] != 1 {
		t.Errorf("bestWeights should be normalized, got %v", ce.bestWeights[0])
	}

	// A worse generation must not displace the best.
	ce.update([]ceResult{{weights: other, score: 20}})
	if ce.bestScore != 50 {
		t.Errorf("bestScore overwritten by worse result: %v", ce.bestScore)
	}
}

func TestRunCompletesGenerations(t *testing.T) {
	ce := newCrossEntropy(4, 1, nil, nil)
	ce.maxPieces = 30
	best, score := ce.run(2, math.Inf(1))
	if best == nil || len(best) != numFeatures {
		t.Fatalf("expected a %d-value best vector, got %v", numFeatures, best)
	}
	if len(ce.history) != 2 {
		t.Errorf("history length %d, want 2", len(ce.history))
	}
	if score < 0 {
		t.Errorf("best average score %v is negative", score)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	var cancel atomic.Bool
	cancel.Store(true)
	ce := newCrossEntropy(4, 1, &cancel, nil)
	ce.maxPieces = 30
	ce.run(100, math.Inf(1))
	if len(ce.history) != 1 {
		t.Errorf("cancelled run completed %d generations, want 1", len(ce.history))
	}
}
