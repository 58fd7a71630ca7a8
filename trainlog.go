package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// trainLog persists per-generation training stats to SQLite so a run
// can be inspected after the fact.
type trainLog struct {
	db *sql.DB
}

func openTrainLog(dsn string) (*trainLog, error) {
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS generations (
		generation   INTEGER NOT NULL,
		best         REAL    NOT NULL,
		mean         REAL    NOT NULL,
		best_weights TEXT    NOT NULL,
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create generations: %w", err)
	}
	return &trainLog{db: db}, nil
}

// record never fails the training loop; a write error is only logged.
func (l *trainLog) record(stats generationStats, bestWeights []float64) {
	_, err := l.db.Exec(
		`INSERT INTO generations (generation, best, mean, best_weights) VALUES (?, ?, ?, ?)`,
		stats.generation, stats.best, stats.mean, formatWeights(bestWeights),
	)
	if err != nil {
		log.Warn().Err(err).Int("generation", stats.generation).Msg("training log write failed")
	}
}

func (l *trainLog) Close() error {
	return l.db.Close()
}
