package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/pixil98/go-fishing/internal/catalog"
)

// Rand is the randomness used by the resolvers.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand uses the goroutine-safe top level functions of math/rand/v2.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Outcome describes who should see what after a resolver ran.
type Outcome struct {
	// Reply goes to the acting connection only.
	Reply []string
	// Room goes to everyone in the actor's room, the actor included.
	Room []string
	// Others goes to everyone in the actor's room except the actor.
	Others []string
	// Mutated is set when the state changed and should be persisted.
	Mutated bool
}

func (o *Outcome) reply(lines ...string) {
	o.Reply = append(o.Reply, lines...)
}

// Resolver implements every game action against an economy.State. Callers
// must run its methods inside economy.Store.Do for the acting identity.
type Resolver struct {
	cat     *catalog.Catalog
	balance catalog.Balance
	rand    Rand
	now     func() time.Time
}

func NewResolver(cat *catalog.Catalog, balance catalog.Balance, opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		cat:     cat,
		balance: balance,
		rand:    globalRand{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) Catalog() *catalog.Catalog {
	return r.cat
}

func (r *Resolver) stamp() string {
	return r.now().Format("15:04:05")
}

// ceilSeconds rounds a positive duration up to whole seconds.
func ceilSeconds(d time.Duration) int64 {
	return int64(math.Ceil(float64(d) / float64(time.Second)))
}
