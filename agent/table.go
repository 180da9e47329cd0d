package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"quixo/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type tableKey struct {
	state  string // game.EncodeBoard
	action string // game.EncodeMove
}

// Table plays greedily from learned (board, move) values. Pairs that were
// never learned are worth 0 and ties are broken uniformly at random.
type Table struct {
	mu     sync.Mutex
	values map[tableKey]float64
	rng    *rand.Rand
}

func NewTable(seed uint64) *Table {
	return &Table{
		values: make(map[tableKey]float64),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// LoadTable reads "state action value" lines as written by Save.
func LoadTable(r io.Reader, seed uint64) (*Table, error) {
	t := NewTable(seed)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, errors.Errorf("line %d: expected 3 fields, got %d", line, len(fields))
		}
		if _, err := game.DecodeBoard(fields[0]); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if _, err := game.DecodeMove(fields[1]); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		t.values[tableKey{state: fields[0], action: fields[1]}] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read table")
	}
	return t, nil
}

func LoadTableFile(path string, seed uint64) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open table")
	}
	defer f.Close()

	t, err := LoadTable(f, seed)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load table %s", path)
	}
	return t, nil
}

// Save writes one "state action value" line per learned pair, sorted by key.
func (t *Table) Save(w io.Writer) error {
	t.mu.Lock()
	keys := make([]tableKey, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	values := make([]float64, len(keys))
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].action < keys[j].action
	})
	for i, k := range keys {
		values[i] = t.values[k]
	}
	t.mu.Unlock()

	bw := bufio.NewWriter(w)
	for i, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", k.state, k.action, strconv.FormatFloat(values[i], 'g', -1, 64)); err != nil {
			return errors.Wrap(err, "failed to write table")
		}
	}
	return errors.Wrap(bw.Flush(), "failed to write table")
}

func (t *Table) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create table file")
	}
	if err := t.Save(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close table file")
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.values)
}

func (t *Table) Value(b game.Board, m game.Move) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values[tableKey{state: game.EncodeBoard(b), action: game.EncodeMove(m)}]
}

// update moves the value of (b, m) towards target by rate.
func (t *Table) update(b game.Board, m game.Move, target, rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := tableKey{state: game.EncodeBoard(b), action: game.EncodeMove(m)}
	t.values[k] += rate * (target - t.values[k])
}

func (t *Table) Decide(ctx context.Context, state game.GameState) (game.Move, error) {
	moves, err := legalMoves(ctx, state)
	if err != nil {
		return game.Move{}, err
	}
	return t.greedy(state.Board, moves), nil
}

func (t *Table) greedy(b game.Board, moves []game.Move) game.Move {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := game.EncodeBoard(b)
	var best []game.Move
	bestValue := 0.0
	for i, m := range moves {
		v := t.values[tableKey{state: state, action: game.EncodeMove(m)}]
		switch {
		case i == 0 || v > bestValue:
			bestValue = v
			best = append(best[:0], m)
		case v == bestValue:
			best = append(best, m)
		}
	}
	return best[t.rng.Intn(len(best))]
}
