package main

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// checkMaxPieces caps one compliance session; after that many pieces
// the engine sends the terminator line instead of a piece code.
const checkMaxPieces = 500

// runCheck drives an external engine over its stdin/stdout and
// cross-checks every reported score against the local board. Reads and
// writes block with no timeout, so an unresponsive child hangs the
// session. Any protocol error ends the session; score mismatches are
// logged and play continues.
func runCheck(path string) error {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	scanner := bufio.NewScanner(stdout)
	b := newBoard()
	src := newRandomPieces(time.Now().UnixNano())
	cur := src.next()
	next := src.next()
	mismatches := 0

	if _, err := fmt.Fprintf(stdin, "%c %c\n", cur.code(), next.code()); err != nil {
		return fmt.Errorf("write opening line: %w", err)
	}
	for n := 1; ; n++ {
		rotate, x, err := readMove(scanner)
		if err != nil {
			return err
		}
		reported, err := readScore(scanner)
		if err != nil {
			return err
		}
		if rotate < 0 || rotate >= numForms {
			return fmt.Errorf("piece %d: rotation index %d out of range", n, rotate)
		}
		if err := b.Apply(cur, x, rotate); err != nil {
			return fmt.Errorf("piece %d: illegal move %c rotate %d column %d: %w",
				n, cur.code(), rotate, x, err)
		}
		if b.Score() != reported {
			mismatches++
			log.Warn().
				Int("piece", n).
				Int("local", b.Score()).
				Int("reported", reported).
				Msg("score mismatch")
		}
		cur = next
		next = src.next()
		if n == checkMaxPieces {
			if _, err := fmt.Fprintln(stdin, "X"); err != nil {
				return fmt.Errorf("write terminator: %w", err)
			}
			break
		}
		if _, err := fmt.Fprintf(stdin, "%c\n", next.code()); err != nil {
			return fmt.Errorf("write piece %d: %w", n+1, err)
		}
	}
	log.Info().
		Int("pieces", checkMaxPieces).
		Int("mismatches", mismatches).
		Int("score", b.Score()).
		Msg("check session complete")
	return nil
}

// readMove parses a "rotation-degrees column" response line. The degree
// value maps to a rotation index by integer division by 90.
func readMove(scanner *bufio.Scanner) (rotate, x int, err error) {
	if !scanner.Scan() {
		return 0, 0, scanErr(scanner, "move")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed move line %q", scanner.Text())
	}
	return atoiOrZero(fields[0]) / 90, atoiOrZero(fields[1]), nil
}

func readScore(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		return 0, scanErr(scanner, "score")
	}
	return atoiOrZero(strings.TrimSpace(scanner.Text())), nil
}

func scanErr(scanner *bufio.Scanner, what string) error {
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s line: %w", what, err)
	}
	return fmt.Errorf("process exited before sending %s line", what)
}

// atoiOrZero keeps the session alive through minor formatting noise by
// treating unparseable numbers as zero.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Debug().Str("value", s).Msg("unparseable number, using 0")
		return 0
	}
	return n
}
