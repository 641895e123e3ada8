package state

import "errors"

// NewRound advances the game to the next round: it picks the next
// clue-giver, draws the next card and target, and snapshots the round that
// just ended into previousTurn.
//
// Who picks whom depends on the caller. The creator advances rounds in
// Teams mode (team rotation below); in the other modes a non-creator caller
// simply takes the clue-giver role themselves.
func NewRound(actorID string, g GameState, cards CardLookup) (Patch, error) {
	clueGiver := actorID
	var rotLeft, rotRight *int

	if actorID == g.CreatorID {
		if g.GameType == GameTypeTeams {
			clueGiver, rotLeft, rotRight = nextTeamsClueGiver(g)
		} else {
			clueGiver = firstEligible(g)
		}
	} else if g.GameType == GameTypeTeams {
		return Patch{}, errors.New("only the game master can start the next round")
	}

	p := Patch{
		ClueGiver:          ptr(clueGiver),
		RoundPhase:         ptr(PhaseGiveClue),
		DeckIndex:          ptr(g.DeckIndex + 1),
		TurnsTaken:         ptr(g.TurnsTaken + 1),
		SpectrumTarget:     ptr(RandomSpectrumTarget()),
		Clue:               ptr(""),
		LeftRotationIndex:  rotLeft,
		RightRotationIndex: rotRight,
	}

	// Snapshot the round we are leaving, built from the state before this
	// patch is applied. No snapshot when there was no round yet.
	if prev, ok := g.Players[g.ClueGiver]; ok && g.ClueGiver != "" {
		p.PreviousTurn = &TurnSummary{
			SpectrumCard:   cards(g.DeckSeed, g.DeckIndex, g.DeckLanguage),
			ClueGiverName:  prev.Name,
			Clue:           g.Clue,
			SpectrumTarget: g.SpectrumTarget,
			Guess:          g.Guess,
		}
		p.SetPreviousTurn = true
	}

	return p, nil
}

// nextTeamsClueGiver decides which team gives the next clue and who on that
// team is up, returning the rotation-index update for the chosen team.
//
// The first round of a match picks a starting team at random (when both
// have players). Afterwards teams alternate, except for the catch-up rule:
// a team that lands a perfect round while trailing on score keeps the clue.
func nextTeamsClueGiver(g GameState) (string, *int, *int) {
	prev, hasPrev := g.Players[g.ClueGiver]
	hasPrev = hasPrev && g.ClueGiver != ""

	var team Team
	if !hasPrev {
		left := TeamMembers(g, TeamLeft)
		right := TeamMembers(g, TeamRight)
		switch {
		case len(left) > 0 && len(right) > 0:
			if randomBool() {
				team = TeamLeft
			} else {
				team = TeamRight
			}
		case len(left) > 0:
			team = TeamLeft
		case len(right) > 0:
			team = TeamRight
		default:
			team = TeamUnset
		}
	} else {
		team = TeamReverse(prev.Team)
		if Score(g.SpectrumTarget, g.Guess) == 4 && teamTrailing(g, prev.Team) {
			team = prev.Team
		}
	}

	members := TeamMembers(g, team)
	if team == TeamUnset || len(members) == 0 {
		// Degraded room (empty team): fall back to the first eligible
		// player, which may be nobody at all.
		return firstEligible(g), nil, nil
	}

	idx := 0
	if hasPrev {
		idx = rotationIndex(g, team) % len(members)
	}
	next := (idx + 1) % len(members)
	if team == TeamLeft {
		return members[idx], ptr(next), nil
	}
	return members[idx], nil, ptr(next)
}

func rotationIndex(g GameState, team Team) int {
	if team == TeamLeft {
		return g.LeftRotationIndex
	}
	return g.RightRotationIndex
}

func teamTrailing(g GameState, team Team) bool {
	if team == TeamLeft {
		return g.LeftScore < g.RightScore
	}
	if team == TeamRight {
		return g.RightScore < g.LeftScore
	}
	return false
}

// SkipClueGiver hands the clue to the next player on the same team without
// resolving the round; the card and target are redrawn so the skipped
// player's knowledge is useless.
func SkipClueGiver(actorID string, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can skip the clue giver")
	}
	if g.GameType != GameTypeTeams {
		return Patch{}, errors.New("skipping applies to team games only")
	}
	giver, ok := g.Players[g.ClueGiver]
	if !ok || g.ClueGiver == "" {
		return Patch{}, errors.New("no clue giver to skip")
	}

	nextGiver := g.ClueGiver
	var rotLeft, rotRight *int
	if members := TeamMembers(g, giver.Team); len(members) > 0 {
		idx := rotationIndex(g, giver.Team) % len(members)
		nextGiver = members[idx]
		next := (idx + 1) % len(members)
		if giver.Team == TeamLeft {
			rotLeft = ptr(next)
		} else {
			rotRight = ptr(next)
		}
	}

	return Patch{
		ClueGiver:          ptr(nextGiver),
		RoundPhase:         ptr(PhaseGiveClue),
		DeckIndex:          ptr(g.DeckIndex + 1),
		SpectrumTarget:     ptr(RandomSpectrumTarget()),
		Clue:               ptr(""),
		LeftRotationIndex:  rotLeft,
		RightRotationIndex: rotRight,
	}, nil
}

// RedrawCard discards the current card for a fresh one mid-clue.
func RedrawCard(actorID string, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can redraw the card")
	}
	if g.GameType == GameTypeCooperative {
		return Patch{}, errors.New("cooperative games play the deck as dealt")
	}
	if g.RoundPhase != PhaseGiveClue {
		return Patch{}, errors.New("the card can only be redrawn before the clue is given")
	}
	return Patch{
		DeckIndex:      ptr(g.DeckIndex + 1),
		SpectrumTarget: ptr(RandomSpectrumTarget()),
	}, nil
}
