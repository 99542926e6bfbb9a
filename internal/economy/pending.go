package economy

// Phase names what follow-up, if any, an identity owes.
type Phase int

const (
	Idle Phase = iota
	AwaitingDecompositionChoice
	AwaitingBattleDecision
)

func (p Phase) String() string {
	switch p {
	case AwaitingDecompositionChoice:
		return "awaiting decomposition choice"
	case AwaitingBattleDecision:
		return "awaiting battle decision"
	default:
		return "idle"
	}
}

// Pending is the data carried by a non-idle phase.
type Pending interface {
	Phase() Phase
}

// DecompositionChoice waits for the option of a branching item decomposition.
type DecompositionChoice struct {
	Item     string
	Quantity int64
}

func (*DecompositionChoice) Phase() Phase { return AwaitingDecompositionChoice }

// Battle is an encounter waiting for fight or flee.
type Battle struct {
	Material   string
	Enemy      string
	HP         int64
	InitialHP  int64
	SourceFish string
	SourceRank int
	Multiplier float64
}

func (*Battle) Phase() Phase { return AwaitingBattleDecision }

// Phase reports the current phase of the state machine.
func (s *State) Phase() Phase {
	if s.pending == nil {
		return Idle
	}
	return s.pending.Phase()
}

// AwaitDecomposition replaces any pending interaction with a decomposition choice.
func (s *State) AwaitDecomposition(item string, qty int64) {
	s.pending = &DecompositionChoice{Item: item, Quantity: qty}
}

// AwaitBattle replaces any pending interaction with a battle decision.
func (s *State) AwaitBattle(b *Battle) {
	s.pending = b
}

func (s *State) PendingDecomposition() (*DecompositionChoice, bool) {
	d, ok := s.pending.(*DecompositionChoice)
	return d, ok
}

func (s *State) PendingBattle() (*Battle, bool) {
	b, ok := s.pending.(*Battle)
	return b, ok
}

// ClearPending returns the state machine to Idle.
func (s *State) ClearPending() {
	s.pending = nil
}
