// Package strategy loads, validates, saves and generates the defender
// strategies consumed by the transition model.
//
// A strategy file is a JSON object keyed by "[b1,b2,r,ball]" whose values
// are the probabilities of the defender stepping Left, Right, Up and Down.
package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"football/game"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Named strategies
const (
	Greedy = "greedy" // Defender chases the ball carrier
	Park   = "park"   // Defender parks in front of the goal
	Random = "random" // Defender moves uniformly at random
)

var Names = []string{Greedy, Park, Random}

// SumTolerance is the allowed distance of a row sum from one.
const SumTolerance = 1e-6

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrMalformedKey    = errors.New("malformed state key")
	ErrArity           = errors.New("expected 4 direction probabilities")
	ErrNegative        = errors.New("negative probability")
	ErrNotNormalized   = errors.New("probabilities do not sum to 1")
)

// Path returns the file holding the named strategy inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+"_policy.json")
}

// LoadNamed loads one of the named strategies from dir.
func LoadNamed(dir, name string) (game.OpponentPolicy, error) {
	if !slices.Contains(Names, name) {
		return nil, fmt.Errorf("%q (want one of %v): %w", name, Names, ErrUnknownStrategy)
	}
	return Load(Path(dir, name))
}

// Load reads and validates a strategy file.
func Load(path string) (game.OpponentPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates strategy JSON.
func Parse(data []byte) (game.OpponentPolicy, error) {
	var raw map[string][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode strategy: %w", err)
	}

	table := make(game.OpponentPolicy, len(raw))
	for key, probs := range raw {
		state, err := ParseKey(key)
		if err != nil {
			return nil, err
		}
		row, err := validateRow(probs)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", key, err)
		}
		table[state] = row
	}
	return table, nil
}

// ParseKey parses a "[b1,b2,r,ball]" key.
func ParseKey(key string) (game.State, error) {
	trimmed := strings.TrimSpace(key)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return game.State{}, fmt.Errorf("%q: %w", key, ErrMalformedKey)
	}
	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	if len(parts) != 4 {
		return game.State{}, fmt.Errorf("%q has %d fields: %w", key, len(parts), ErrMalformedKey)
	}

	var fields [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return game.State{}, fmt.Errorf("%q: %w", key, errors.Join(ErrMalformedKey, err))
		}
		fields[i] = n
	}
	return game.State{B1: fields[0], B2: fields[1], R: fields[2], Ball: fields[3]}, nil
}

// FormatKey is the inverse of ParseKey.
func FormatKey(s game.State) string {
	return fmt.Sprintf("[%d,%d,%d,%d]", s.B1, s.B2, s.R, s.Ball)
}

func validateRow(probs []float64) ([4]float64, error) {
	var row [4]float64
	if len(probs) != len(row) {
		return row, fmt.Errorf("got %d: %w", len(probs), ErrArity)
	}
	if floats.Min(probs) < 0 {
		return row, ErrNegative
	}
	if sum := floats.Sum(probs); math.Abs(sum-1) > SumTolerance {
		return row, fmt.Errorf("sum %v: %w", sum, ErrNotNormalized)
	}
	copy(row[:], probs)
	return row, nil
}

// Save writes table to path in the strategy file format.
func Save(path string, table game.OpponentPolicy) error {
	raw := make(map[string][]float64, len(table))
	for state, probs := range table {
		raw[FormatKey(state)] = probs[:]
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode strategy: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write strategy file: %w", err)
	}
	return nil
}
