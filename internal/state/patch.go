package state

// Patch is a partial update to the shared document: only non-nil fields are
// applied. Transition functions return patches instead of mutating state so
// the transport can merge and re-broadcast them, and so the state machine
// stays testable in isolation.
type Patch struct {
	GameType       *GameType
	RoundPhase     *RoundPhase
	TurnsTaken     *int
	DeckSeed       *string
	DeckIndex      *int
	SpectrumTarget *int
	Clue           *string
	Guess          *int
	CounterGuess   *Direction

	// Players, when non-nil, replaces the whole mapping.
	Players map[string]Player

	ClueGiver      *string
	LeftScore      *int
	RightScore     *int
	CoopScore      *int
	CoopBonusTurns *int

	// PreviousTurn is applied only when SetPreviousTurn is true, so the
	// snapshot can be explicitly cleared to nil.
	PreviousTurn    *TurnSummary
	SetPreviousTurn bool

	DeckLanguage  *string
	CreatorID     *string
	LeftTeamName  *string
	RightTeamName *string

	LeftRotationIndex  *int
	RightRotationIndex *int

	// Order slices replace the stored ones when non-nil; use an empty
	// non-nil slice to clear.
	LeftTeamOrder  []string
	RightTeamOrder []string

	PointsToWin *int
}

// Apply merges the patch into a deep copy of g. The input state is never
// mutated: players and order arrays are cloned before any field lands.
func (p Patch) Apply(g GameState) GameState {
	next := g
	next.Players = clonePlayers(g.Players)
	next.LeftTeamOrder = append([]string(nil), g.LeftTeamOrder...)
	next.RightTeamOrder = append([]string(nil), g.RightTeamOrder...)
	if g.PreviousTurn != nil {
		prev := *g.PreviousTurn
		next.PreviousTurn = &prev
	}

	if p.GameType != nil {
		next.GameType = *p.GameType
	}
	if p.RoundPhase != nil {
		next.RoundPhase = *p.RoundPhase
	}
	if p.TurnsTaken != nil {
		next.TurnsTaken = *p.TurnsTaken
	}
	if p.DeckSeed != nil {
		next.DeckSeed = *p.DeckSeed
	}
	if p.DeckIndex != nil {
		next.DeckIndex = *p.DeckIndex
	}
	if p.SpectrumTarget != nil {
		next.SpectrumTarget = *p.SpectrumTarget
	}
	if p.Clue != nil {
		next.Clue = *p.Clue
	}
	if p.Guess != nil {
		next.Guess = *p.Guess
	}
	if p.CounterGuess != nil {
		next.CounterGuess = *p.CounterGuess
	}
	if p.Players != nil {
		next.Players = clonePlayers(p.Players)
	}
	if p.ClueGiver != nil {
		next.ClueGiver = *p.ClueGiver
	}
	if p.LeftScore != nil {
		next.LeftScore = *p.LeftScore
	}
	if p.RightScore != nil {
		next.RightScore = *p.RightScore
	}
	if p.CoopScore != nil {
		next.CoopScore = *p.CoopScore
	}
	if p.CoopBonusTurns != nil {
		next.CoopBonusTurns = *p.CoopBonusTurns
	}
	if p.SetPreviousTurn {
		if p.PreviousTurn != nil {
			prev := *p.PreviousTurn
			next.PreviousTurn = &prev
		} else {
			next.PreviousTurn = nil
		}
	}
	if p.DeckLanguage != nil {
		next.DeckLanguage = *p.DeckLanguage
	}
	if p.CreatorID != nil {
		next.CreatorID = *p.CreatorID
	}
	if p.LeftTeamName != nil {
		next.LeftTeamName = *p.LeftTeamName
	}
	if p.RightTeamName != nil {
		next.RightTeamName = *p.RightTeamName
	}
	if p.LeftRotationIndex != nil {
		next.LeftRotationIndex = *p.LeftRotationIndex
	}
	if p.RightRotationIndex != nil {
		next.RightRotationIndex = *p.RightRotationIndex
	}
	if p.LeftTeamOrder != nil {
		next.LeftTeamOrder = append([]string(nil), p.LeftTeamOrder...)
	}
	if p.RightTeamOrder != nil {
		next.RightTeamOrder = append([]string(nil), p.RightTeamOrder...)
	}
	if p.PointsToWin != nil {
		next.PointsToWin = *p.PointsToWin
	}
	return next
}

func clonePlayers(in map[string]Player) map[string]Player {
	out := make(map[string]Player, len(in))
	for pid, p := range in {
		out[pid] = p
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
