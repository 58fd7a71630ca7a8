package main

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"
)

// The progress plot always lands at this path.
const plotPath = "plot.svg"

// writePlot draws the best and mean fitness of every generation as two
// line series.
func writePlot(history []generationStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const (
		width  = 800
		height = 500
		margin = 60
	)
	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Line(margin, height-margin, width-margin, height-margin, "stroke:black;stroke-width:1")
	canvas.Line(margin, margin, margin, height-margin, "stroke:black;stroke-width:1")
	canvas.Text(width/2, height-margin/3, "generation", "text-anchor:middle;font-size:14px")

	if len(history) > 0 {
		lo, hi := history[0].mean, history[0].best
		for _, g := range history {
			if g.mean < lo {
				lo = g.mean
			}
			if g.best > hi {
				hi = g.best
			}
		}
		if hi == lo {
			hi = lo + 1
		}
		xAt := func(i int) int {
			if len(history) == 1 {
				return margin
			}
			return margin + i*(width-2*margin)/(len(history)-1)
		}
		yAt := func(v float64) int {
			return height - margin - int((v-lo)/(hi-lo)*float64(height-2*margin))
		}
		bestX := make([]int, len(history))
		bestY := make([]int, len(history))
		meanX := make([]int, len(history))
		meanY := make([]int, len(history))
		for i, g := range history {
			bestX[i], bestY[i] = xAt(i), yAt(g.best)
			meanX[i], meanY[i] = xAt(i), yAt(g.mean)
		}
		canvas.Polyline(bestX, bestY, "fill:none;stroke:steelblue;stroke-width:2")
		canvas.Polyline(meanX, meanY, "fill:none;stroke:darkorange;stroke-width:2")
		canvas.Text(margin-8, yAt(lo), fmt.Sprintf("%.0f", lo), "text-anchor:end;font-size:12px")
		canvas.Text(margin-8, yAt(hi), fmt.Sprintf("%.0f", hi), "text-anchor:end;font-size:12px")
		canvas.Text(width-margin, margin, "best", "text-anchor:end;font-size:12px;fill:steelblue")
		canvas.Text(width-margin, margin+16, "mean", "text-anchor:end;font-size:12px;fill:darkorange")
	}
	canvas.End()
	return nil
}
