package main

import (
	"fmt"
	"strings"
)

// ANSI color per piece type.
var pieceColors = [numPieces]string{
	"\x1b[36m", // I cyan
	"\x1b[35m", // T purple
	"\x1b[33m", // O yellow
	"\x1b[34m", // J blue
	"\x1b[31m", // L red
	"\x1b[32m", // S green
	"\x1b[91m", // Z bright red
}

const ansiReset = "\x1b[0m"

// render clears the terminal and draws the board with its score header,
// the placement just made, and the upcoming piece. Debugging aid only.
func (b *Board) render(cur, next pieceType, act action) {
	var sb strings.Builder
	sb.WriteString("\x1b[2J\x1b[1;1H")
	sb.WriteString(fmt.Sprintf("Score: %d\n", b.score))
	sb.WriteString("╔" + strings.Repeat("═", boardWidth) + "╗\n")
	for y := boardHeight - 1; y >= 0; y-- {
		sb.WriteString("║")
		for x := 0; x < boardWidth; x++ {
			if b.occupied(y, x) {
				color := "\x1b[37m"
				if c := b.colors[y][x]; c != noColor {
					color = pieceColors[c]
				}
				sb.WriteString(color + "■" + ansiReset)
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("║\n")
	}
	sb.WriteString("╚" + strings.Repeat("═", boardWidth) + "╝\n")
	sb.WriteString(fmt.Sprintf("current: %s%c%s (rotate %d, column %d)  next: %s%c%s\n",
		pieceColors[cur], cur.code(), ansiReset, act.rotate, act.x,
		pieceColors[next], next.code(), ansiReset))
	fmt.Print(sb.String())
}
