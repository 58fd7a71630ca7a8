package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("create cpu profile")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		return
	}
	switch args[0] {
	case "preview":
		preview()
	case "train":
		generations := 20
		target := 1_000_000.0
		if len(args) > 1 {
			generations = atoiDefault(args[1], generations)
		}
		if len(args) > 2 {
			if v, err := strconv.ParseFloat(args[2], 64); err == nil {
				target = v
			}
		}
		train(generations, target)
	case "check":
		if len(args) < 2 {
			usage()
			return
		}
		if err := runCheck(args[1]); err != nil {
			log.Error().Err(err).Msg("check session failed")
			os.Exit(1)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: mortis [preview|train <generations> <targetScore>|check <executable>]")
	fmt.Println("  preview: watch the bot play with the built-in weights")
	fmt.Println("  train:   optimize the feature weights")
	fmt.Println("  check:   verify an external engine over the line protocol")
}

// preview plays one unbounded game with the built-in weights, drawing
// the board after every placement.
func preview() {
	b := newBoard()
	src := newRandomPieces(time.Now().UnixNano())
	cur := src.next()
	next := src.next()
	for {
		act, ok := findBestAction(b, cur, defaultWeights)
		if !ok {
			fmt.Printf("Game over, cannot place %c. Final score: %d\n", cur.code(), b.Score())
			return
		}
		if err := b.Apply(cur, act.x, act.rotate); err != nil {
			log.Fatal().Err(err).Msg("apply")
		}
		b.render(cur, next, act)
		cur = next
		next = src.next()
		time.Sleep(10 * time.Millisecond)
	}
}

func train(generations int, target float64) {
	var cancel atomic.Bool
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		log.Info().Msg("interrupt received, finishing current generation")
		cancel.Store(true)
	}()

	var trace *trainLog
	dsn := "train.db"
	if v, ok := os.LookupEnv("TRAIN_DB"); ok {
		dsn = v
	}
	if dsn != "" {
		var err error
		trace, err = openTrainLog(dsn)
		if err != nil {
			log.Warn().Err(err).Str("dsn", dsn).Msg("training log disabled")
			trace = nil
		} else {
			defer trace.Close()
		}
	}

	population := atoiDefault(os.Getenv("TRAIN_POPULATION"), 240)
	numGames := atoiDefault(os.Getenv("TRAIN_GAMES"), 20)
	ce := newCrossEntropy(population, numGames, &cancel, trace)
	log.Info().
		Int("generations", generations).
		Float64("target", target).
		Int("population", population).
		Int("gamesPerCandidate", numGames).
		Msg("starting training")

	best, bestScore := ce.run(generations, target)
	if best == nil {
		log.Error().Msg("no generation completed")
		return
	}
	if err := writePlot(ce.history, plotPath); err != nil {
		log.Warn().Err(err).Str("path", plotPath).Msg("could not write plot")
	}
	fmt.Printf("Best average score: %.2f\n", bestScore)
	fmt.Println(formatWeights(best))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
