package banners

import (
	"errors"
	"math/rand"
)

const (
	// generated draft ids fall in [1, maxGeneratedID)
	maxGeneratedID    = 1_000_000
	maxRandomAttempts = 64
)

var ErrIDSpaceExhausted = errors.New("no free banner id available")

// IDGenerator hands out random identifiers that never collide with the
// records it is shown.
type IDGenerator struct {
	intn func(n int) int
}

// NewIDGenerator builds a generator around intn, which must return a value in
// [0, n). A nil intn uses math/rand/v2.
func NewIDGenerator(intn func(n int) int) *IDGenerator {
	if intn == nil {
		intn = rand.Intn
	}
	return &IDGenerator{intn: intn}
}

// Generate draws random ids until one is free, then falls back to a linear
// probe from a random start.
func (g *IDGenerator) Generate(existing []Banner) (int, error) {
	taken := idSet(existing)
	span := maxGeneratedID - 1

	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		id := 1 + g.intn(span)
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}

	start := g.intn(span)
	for i := 0; i < span; i++ {
		id := 1 + (start+i)%span
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}

// nextSequentialID returns len(existing)+1, or floor when that is higher,
// bumped past any id already taken.
func nextSequentialID(existing []Banner, floor int) int {
	taken := idSet(existing)
	id := max(len(existing)+1, floor)
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

func idSet(list []Banner) map[int]struct{} {
	set := make(map[int]struct{}, len(list))
	for _, b := range list {
		if b.ID != nil {
			set[*b.ID] = struct{}{}
		}
	}
	return set
}
