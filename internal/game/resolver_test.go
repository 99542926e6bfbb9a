package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-testutil"
)

// seqRand replays fixed values. When it runs out it returns values that pick
// the most common outcome.
type seqRand struct {
	floats []float64
	ints   []int
}

func (s *seqRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *seqRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestResolver(t *testing.T, rnd *seqRand) (*Resolver, *testClock) {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultTable())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	clock := &testClock{now: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	if rnd == nil {
		rnd = &seqRand{}
	}
	return NewResolver(cat, catalog.DefaultBalance(), WithRand(rnd), WithClock(clock.Now)), clock
}

func newTestState(inventory map[string]int64) *economy.State {
	st := economy.NewState("u1")
	for item, n := range inventory {
		st.Add(item, n)
	}
	return st
}

func assertUserError(t *testing.T, err error, substr string) {
	t.Helper()
	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected user error, got %v", err)
	}
	testutil.AssertErrorContains(t, err, substr)
}

func TestResolver_DrawWindow(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	tests := map[string]struct {
		skill    int
		expStart int
		expEnd   int
	}{
		"no skill":    {skill: 0, expStart: 0, expEnd: 10},
		"skill one":   {skill: 1, expStart: 0, expEnd: 10},
		"skill two":   {skill: 2, expStart: 1, expEnd: 10},
		"skill three": {skill: 3, expStart: 2, expEnd: 11},
		"skill cap":   {skill: 31, expStart: 30, expEnd: 39},
		"beyond cap":  {skill: 60, expStart: 30, expEnd: 39},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			start, end := r.DrawWindow(tt.skill)
			testutil.AssertEqual(t, "start", start, tt.expStart)
			testutil.AssertEqual(t, "end", end, tt.expEnd)
		})
	}
}

func TestResolver_Fish(t *testing.T) {
	tests := map[string]struct {
		floats  []float64
		skill   int
		expFish string
	}{
		"rare override wins regardless of skill": {floats: []float64{0.001}, skill: 0, expFish: "Starfish"},
		"lowest roll takes first in window":      {floats: []float64{0.5, 0.0}, skill: 0, expFish: "Taco Octopus"},
		"window slides with skill":               {floats: []float64{0.5, 0.0}, skill: 3, expFish: "Dango Carp"},
		"top of roll takes last in window":       {floats: []float64{0.5, 0.999999}, skill: 0, expFish: "Hundred-Year Turtle"},
		"skill two drops only the first fish":    {floats: []float64{0.5, 0.999999}, skill: 2, expFish: "Hundred-Year Turtle"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, _ := newTestResolver(t, &seqRand{floats: tt.floats})
			st := newTestState(nil)
			st.Skill = tt.skill

			out, err := r.Fish(st, "Alice")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "count", st.Count(tt.expFish), int64(1))
			testutil.AssertEqual(t, "mutated", out.Mutated, true)
			testutil.AssertEqual(t, "room lines", len(out.Room), 1)
			testutil.AssertEqual(t, "mentions fish", strings.Contains(out.Room[0], tt.expFish), true)
		})
	}
}

func TestResolver_Fish_Cooldown(t *testing.T) {
	r, clock := newTestResolver(t, nil)
	st := newTestState(nil)

	if _, err := r.Fish(st, "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := st.Snapshot()

	clock.now = clock.now.Add(10*time.Second + 500*time.Millisecond)
	out, err := r.Fish(st, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "mutated", out.Mutated, false)
	testutil.AssertEqual(t, "reply lines", len(out.Reply), 1)
	testutil.AssertEqual(t, "reply", out.Reply[0], "You can fish again in 290 seconds.")
	testutil.AssertEqual(t, "inventory size", len(st.Inventory), len(after.Inventory))
	for item, n := range after.Inventory {
		testutil.AssertEqual(t, item, st.Count(item), n)
	}

	clock.now = clock.now.Add(290 * time.Second)
	out, err = r.Fish(st, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "mutated after cooldown", out.Mutated, true)
}

func TestResolver_DrawCooldown(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	tests := map[string]struct {
		inventory map[string]int64
		exp       time.Duration
	}{
		"no accessory":   {exp: 300 * time.Second},
		"old ring":       {inventory: map[string]int64{"Old Ring": 1}, exp: 285 * time.Second},
		"best accessory": {inventory: map[string]int64{"Old Ring": 1, "Radiant Mana Core": 1}, exp: 90 * time.Second},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			st := newTestState(tt.inventory)
			st.Reequip(r.Catalog())
			testutil.AssertEqual(t, "cooldown", r.DrawCooldown(st), tt.exp)
		})
	}
}
