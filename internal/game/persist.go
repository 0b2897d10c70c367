package game

import (
	"strconv"
	"strings"
	"time"
)

// HighScoreKey is the key under which the high score is stored.
const HighScoreKey = "highScore"

// KV is a text key-value store shared by every session.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	// RaiseInt stores n under key when it is greater than the integer
	// already stored there, as one atomic step, and returns the value
	// stored afterwards. Missing or non-numeric values count as 0.
	RaiseInt(key string, n int) (int, error)
}

// Result describes a finished session.
type Result struct {
	Tier     int
	Score    int
	Outcome  Outcome
	Duration time.Duration
}

// Recorder receives finished sessions.
type Recorder interface {
	Record(r Result) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(r Result) error

// Record calls f(r).
func (f RecorderFunc) Record(r Result) error {
	return f(r)
}

// readHighScore returns the stored high score, or 0 when it is missing or
// unreadable.
func readHighScore(kv KV) (int, error) {
	if kv == nil {
		return 0, nil
	}
	raw, err := kv.Get(HighScoreKey)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

// raiseHighScore offers score as the new high score and returns the best
// score on record afterwards.
func raiseHighScore(kv KV, score int) (int, error) {
	if kv == nil {
		return score, nil
	}
	return kv.RaiseInt(HighScoreKey, score)
}
