package main

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Fitness games stop after this many pieces even if the bot never
// tops out.
const trainMaxPieces = 1_000_000

// generationStats feeds the progress plot and the training log.
type generationStats struct {
	generation int
	best, mean float64
}

// crossEntropy optimizes the feature weights with the noisy cross
// entropy method: sample a population around per-dimension means, refit
// mean and variance on the elite fraction, repeat. Noise added to the
// variance shrinks logarithmically with the iteration count so early
// generations explore and later ones settle. Fitness is the average
// end-of-game score over numGames games, with the candidate vector
// L2-normalized before play.
type crossEntropy struct {
	means, variances []float64
	population       int
	numGames         int
	maxPieces        int
	cutoff           int
	noise            float64
	rho              float64
	iterations       int

	bestScore   float64
	bestWeights []float64
	history     []generationStats

	random *rand.Rand
	cancel *atomic.Bool
	trace  *trainLog
}

func newCrossEntropy(population, numGames int, cancel *atomic.Bool, trace *trainLog) *crossEntropy {
	ce := &crossEntropy{
		means:      make([]float64, numFeatures),
		variances:  make([]float64, numFeatures),
		population: population,
		numGames:   numGames,
		maxPieces:  trainMaxPieces,
		noise:      0.03,
		rho:        0.1, // top fraction of the population to refit on
		bestScore:  math.Inf(-1),
		random:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cancel:     cancel,
		trace:      trace,
	}
	for i := range ce.variances {
		ce.variances[i] = 10
	}
	ce.cutoff = int(ce.rho * float64(population))
	if ce.cutoff < 1 {
		ce.cutoff = 1
	}
	return ce
}

// run iterates up to generations times, stopping early when the best
// average score passes target or the cancel flag is set. Cancellation is
// only polled between generations; an in-flight generation always
// finishes.
func (ce *crossEntropy) run(generations int, target float64) ([]float64, float64) {
	for ce.iterations < generations {
		ce.iterations++
		candidates := make([][]float64, ce.population)
		for i := range candidates {
			candidates[i] = ce.sample()
		}
		results := ce.testCandidates(candidates)
		slices.SortStableFunc(results, func(a, b ceResult) bool {
			return a.score > b.score
		})
		ce.update(results)

		stats := generationStats{
			generation: ce.iterations,
			best:       results[0].score,
			mean:       meanResultScore(results),
		}
		ce.history = append(ce.history, stats)
		log.Info().
			Int("generation", stats.generation).
			Float64("best", stats.best).
			Float64("mean", stats.mean).
			Float64("overallBest", ce.bestScore).
			Msg("generation complete")
		if ce.trace != nil {
			ce.trace.record(stats, ce.bestWeights)
		}

		if ce.bestScore > target {
			log.Info().Float64("target", target).Msg("target score reached")
			break
		}
		if ce.cancel != nil && ce.cancel.Load() {
			log.Info().Msg("training cancelled")
			break
		}
	}
	return ce.bestWeights, ce.bestScore
}

// sample draws one candidate weight vector around the current means.
func (ce *crossEntropy) sample() []float64 {
	noise := ce.noise / math.Log10(1+float64(ce.iterations))
	w := make([]float64, len(ce.means))
	for i := range w {
		// Scale the noise by the mean's magnitude so it matches the
		// weight's scale, then add it to the fitted variance.
		variance := math.Abs(ce.means[i])*noise + ce.variances[i]
		w[i] = ce.random.NormFloat64()*math.Sqrt(variance) + ce.means[i]
	}
	return w
}

type ceResult struct {
	weights []float64
	score   float64
}

// testCandidates plays out every candidate in parallel. Workers share a
// jobs channel; each game owns its board and seeded rand source, so no
// state crosses goroutines.
func (ce *crossEntropy) testCandidates(candidates [][]float64) []ceResult {
	jobs := make(chan int, len(candidates))
	out := make(chan ceResult, len(candidates))
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	base := int64(ce.iterations) * 1_000_003
	for w := 0; w < runtime.NumCPU(); w++ {
		go func() {
			for i := range jobs {
				weights := normalize(candidates[i])
				var total float64
				for g := 0; g < ce.numGames; g++ {
					seed := base + int64(i)*int64(ce.numGames) + int64(g)
					total += float64(playGame(weights, newRandomPieces(seed), ce.maxPieces))
				}
				out <- ceResult{
					weights: candidates[i],
					score:   total / float64(ce.numGames),
				}
			}
		}()
	}
	results := make([]ceResult, 0, len(candidates))
	for range candidates {
		results = append(results, <-out)
	}
	return results
}

// update refits the per-dimension means and variances on the elite
// slice of the sorted results and tracks the best candidate seen.
func (ce *crossEntropy) update(results []ceResult) {
	elite := make([]float64, ce.cutoff)
	for i := range ce.means {
		for j := 0; j < ce.cutoff; j++ {
			elite[j] = results[j].weights[i]
		}
		ce.means[i] = mean(elite)
		ce.variances[i] = variance(elite, ce.means[i])
	}
	if results[0].score > ce.bestScore {
		ce.bestScore = results[0].score
		ce.bestWeights = normalize(results[0].weights)
	}
}

// normalize returns the vector scaled to unit L2 norm. A zero vector is
// returned unchanged.
func normalize(w []float64) []float64 {
	var sum float64
	for _, v := range w {
		sum += v * v
	}
	out := make([]float64, len(w))
	copy(out, w)
	if norm := math.Sqrt(sum); norm > 0 {
		for i := range out {
			out[i] /= norm
		}
	}
	return out
}

func mean(data []float64) float64 {
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func variance(data []float64, mean float64) float64 {
	var squaredDiffs float64
	for _, v := range data {
		d := v - mean
		squaredDiffs += d * d
	}
	return squaredDiffs / float64(len(data))
}

func meanResultScore(results []ceResult) float64 {
	var sum float64
	for _, r := range results {
		sum += r.score
	}
	return sum / float64(len(results))
}

// formatWeights renders a weight vector as a bracketed, comma-separated
// list at 6 decimal places.
func formatWeights(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
