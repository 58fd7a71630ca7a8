package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWritePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	history := []generationStats{
		{generation: 1, best: 100, mean: 40},
		{generation: 2, best: 300, mean: 120},
		{generation: 3, best: 280, mean: 200},
	}
	if err := writePlot(history, path); err != nil {
		t.Fatalf("writePlot failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading plot: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Error("output is not an SVG document")
	}
	if strings.Count(svg, "<polyline") != 2 {
		t.Errorf("expected 2 series, found %d", strings.Count(svg, "<polyline"))
	}
}

func TestWritePlotEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	if err := writePlot(nil, path); err != nil {
		t.Fatalf("writePlot failed on empty history: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
}
