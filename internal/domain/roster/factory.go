package roster

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/benchcoach/internal/domain/model"
)

// Shuffler permutes names in place.
type Shuffler func(names []string)

// Factory builds fresh rosters. It is not safe for concurrent use.
type Factory struct {
	shuffle Shuffler
	newID   func() string
}

// Option applies a configuration option to the Factory.
type Option func(*Factory)

// WithShuffler replaces the random shuffle, e.g. with a no-op in tests.
func WithShuffler(s Shuffler) Option {
	return func(f *Factory) {
		if s != nil {
			f.shuffle = s
		}
	}
}

// WithSeed makes the default shuffle deterministic. Zero keeps it random.
func WithSeed(seed uint64) Option {
	return func(f *Factory) {
		if seed != 0 {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			f.shuffle = func(names []string) {
				rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
			}
		}
	}
}

// WithIDGenerator replaces the uuid player IDs.
func WithIDGenerator(gen func() string) Option {
	return func(f *Factory) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// NoShuffle keeps names in input order.
func NoShuffle([]string) {}

// NewFactory creates a Factory with a random shuffle and uuid IDs.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		shuffle: func(names []string) {
			rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
		},
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Reset discards any previous roster and builds a bench-only roster from a
// shuffled copy of names. Names are trimmed, empty names are dropped, and a
// repeated name gets a numeric suffix so names stay unique.
func (f *Factory) Reset(names []string) Roster {
	unique := Disambiguate(names)
	f.shuffle(unique)

	players := make([]model.Player, len(unique))
	for i, name := range unique {
		players[i] = model.Player{
			ID:     f.newID(),
			Name:   name,
			Status: model.StatusBench,
		}
	}
	return Roster{players: players}
}

// Disambiguate trims names, drops empty ones, and renames repeats as
// "Name (2)", "Name (3)" in input order. Names that read as a subject
// sentinel in any case are renamed the same way. The input slice is not
// modified.
func Disambiguate(names []string) []string {
	out := make([]string, 0, len(names))
	taken := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		candidate := name
		for n := 2; taken[candidate] || reserved(candidate); n++ {
			candidate = name + " (" + strconv.Itoa(n) + ")"
		}
		taken[candidate] = true
		out = append(out, candidate)
	}
	return out
}

func reserved(name string) bool {
	switch strings.ToLower(name) {
	case model.SubjectUs, model.SubjectThem, model.SubjectTeam:
		return true
	}
	return false
}

// ParseNames splits roster text on newlines.
func ParseNames(text string) []string {
	return Disambiguate(strings.Split(text, "\n"))
}
