package state

import (
	"errors"
	"strings"
)

// ChooseGameType leaves the setup screen. Teams games go through team
// picking first; the other modes start their first round immediately.
func ChooseGameType(actorID string, gt GameType, g GameState, cards CardLookup) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can start the game")
	}
	if g.RoundPhase != PhaseSetupGame {
		return Patch{}, errors.New("the game has already started")
	}

	if gt == GameTypeTeams {
		return Patch{
			GameType:   ptr(GameTypeTeams),
			RoundPhase: ptr(PhasePickTeams),
		}, nil
	}

	// NewRound consults g.GameType for eligibility, so decide on the new
	// mode before picking the first clue-giver.
	next := g
	next.GameType = gt
	p, err := NewRound(actorID, next, cards)
	if err != nil {
		return Patch{}, err
	}
	p.GameType = ptr(gt)
	return p, nil
}

// NewTeamGame starts a Teams match from the team-picking screen: a first
// round plus the starting handicap. Whichever team does not give the first
// clue is credited 1 point, compensating the side that guesses second less
// often over the match.
func NewTeamGame(actorID string, g GameState, cards CardLookup) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can start the game")
	}

	p, err := NewRound(actorID, g, cards)
	if err != nil {
		return Patch{}, err
	}

	left, right := 0, 0
	if p.ClueGiver != nil {
		switch teamOf(g, *p.ClueGiver) {
		case TeamLeft:
			right = 1
		case TeamRight:
			left = 1
		}
	}

	p.GameType = ptr(GameTypeTeams)
	p.LeftScore = ptr(left)
	p.RightScore = ptr(right)
	p.PreviousTurn = nil
	p.SetPreviousTurn = true
	return p, nil
}

func teamOf(g GameState, playerID string) Team {
	if p, ok := g.Players[playerID]; ok {
		return p.Team
	}
	return TeamUnset
}

// JoinTeam puts a player on a team and appends them to the bottom of that
// team's order array. Any stale entry in either array is removed first, so
// joining the same team twice in a row is a no-op for rotation order.
func JoinTeam(playerID string, team Team, g GameState) (Patch, error) {
	if team != TeamLeft && team != TeamRight {
		return Patch{}, errors.New("unknown team")
	}
	p, ok := g.Players[playerID]
	if !ok {
		return Patch{}, errors.New("player is not in the room")
	}
	if playerID == g.CreatorID {
		return Patch{}, errors.New("the game master does not play on a team")
	}

	players := clonePlayers(g.Players)
	p.Team = team
	players[playerID] = p

	left := removeID(g.LeftTeamOrder, playerID)
	right := removeID(g.RightTeamOrder, playerID)
	if team == TeamLeft {
		left = append(left, playerID)
	} else {
		right = append(right, playerID)
	}

	return Patch{
		Players:        players,
		LeftTeamOrder:  left,
		RightTeamOrder: right,
	}, nil
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// SetTeamName overrides a team's display name.
func SetTeamName(actorID string, team Team, name string, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can rename teams")
	}
	switch team {
	case TeamLeft:
		return Patch{LeftTeamName: ptr(name)}, nil
	case TeamRight:
		return Patch{RightTeamName: ptr(name)}, nil
	}
	return Patch{}, errors.New("unknown team")
}

// SetPointsToWin changes the match target, clamped to its legal range; a
// zero or negative request persists the minimum, never 0.
func SetPointsToWin(actorID string, points int, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can change the match target")
	}
	if points < MinPointsToWin {
		points = MinPointsToWin
	}
	if points > MaxPointsToWin {
		points = MaxPointsToWin
	}
	return Patch{PointsToWin: ptr(points)}, nil
}

// AdjustScore nudges a team's score by delta (the UI uses ±1), clamped to
// [0, pointsToWin]. Teams mode only. An adjustment that lands on the
// current value yields an empty patch.
func AdjustScore(actorID string, team Team, delta int, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can adjust scores")
	}
	if g.GameType != GameTypeTeams {
		return Patch{}, errors.New("scores can only be adjusted in team games")
	}

	current := g.LeftScore
	if team == TeamRight {
		current = g.RightScore
	} else if team != TeamLeft {
		return Patch{}, errors.New("unknown team")
	}

	next := clampScore(current+delta, g.PointsToWin)
	if next == current {
		return Patch{}, nil
	}
	if team == TeamLeft {
		return Patch{LeftScore: ptr(next)}, nil
	}
	return Patch{RightScore: ptr(next)}, nil
}

// ResetGame replaces the document with a fresh one while deliberately
// keeping room identity: deck position, creator, team names, team order
// arrays and the match target all survive a reset.
func ResetGame(actorID string, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can reset the game")
	}

	fresh := InitialGameState(g.DeckLanguage)
	fresh.DeckSeed = g.DeckSeed
	fresh.DeckIndex = g.DeckIndex
	fresh.CreatorID = g.CreatorID
	fresh.LeftTeamName = g.LeftTeamName
	fresh.RightTeamName = g.RightTeamName
	fresh.LeftTeamOrder = append([]string(nil), g.LeftTeamOrder...)
	fresh.RightTeamOrder = append([]string(nil), g.RightTeamOrder...)
	fresh.PointsToWin = g.PointsToWin

	return replaceAll(fresh), nil
}

// replaceAll builds a patch that sets every field, turning a full document
// into the patch representation the transport expects.
func replaceAll(g GameState) Patch {
	return Patch{
		GameType:           ptr(g.GameType),
		RoundPhase:         ptr(g.RoundPhase),
		TurnsTaken:         ptr(g.TurnsTaken),
		DeckSeed:           ptr(g.DeckSeed),
		DeckIndex:          ptr(g.DeckIndex),
		SpectrumTarget:     ptr(g.SpectrumTarget),
		Clue:               ptr(g.Clue),
		Guess:              ptr(g.Guess),
		CounterGuess:       ptr(g.CounterGuess),
		Players:            clonePlayers(g.Players),
		ClueGiver:          ptr(g.ClueGiver),
		LeftScore:          ptr(g.LeftScore),
		RightScore:         ptr(g.RightScore),
		CoopScore:          ptr(g.CoopScore),
		CoopBonusTurns:     ptr(g.CoopBonusTurns),
		PreviousTurn:       g.PreviousTurn,
		SetPreviousTurn:    true,
		DeckLanguage:       ptr(g.DeckLanguage),
		CreatorID:          ptr(g.CreatorID),
		LeftTeamName:       ptr(g.LeftTeamName),
		RightTeamName:      ptr(g.RightTeamName),
		LeftRotationIndex:  ptr(g.LeftRotationIndex),
		RightRotationIndex: ptr(g.RightRotationIndex),
		LeftTeamOrder:      append([]string(nil), g.LeftTeamOrder...),
		RightTeamOrder:     append([]string(nil), g.RightTeamOrder...),
		PointsToWin:        ptr(g.PointsToWin),
	}
}

// EnsurePlayer adds a joining player to the document, or fixes up their
// name after a rename. Present and unchanged players produce an empty
// patch. Missing fields on a partially replicated document are the
// caller's concern: merge over InitialGameState before calling in.
func EnsurePlayer(playerID, name string, g GameState) Patch {
	existing, ok := g.Players[playerID]
	if ok && (name == "" || existing.Name == name) {
		return Patch{}
	}

	players := clonePlayers(g.Players)
	if !ok {
		players[playerID] = Player{Name: name, Team: TeamUnset}
	} else {
		existing.Name = name
		players[playerID] = existing
	}
	return Patch{Players: players}
}

// SetPlayerName renames the acting player.
func SetPlayerName(playerID, name string, g GameState) (Patch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Patch{}, errors.New("name must not be empty")
	}
	if _, ok := g.Players[playerID]; !ok {
		return Patch{}, errors.New("player is not in the room")
	}
	return EnsurePlayer(playerID, name, g), nil
}

// KickPlayer removes a player from the document and from both order
// arrays. If the clue-giver is kicked the slot is cleared so the next
// round can re-seat it.
func KickPlayer(actorID, targetID string, g GameState) (Patch, error) {
	if actorID != g.CreatorID {
		return Patch{}, errors.New("only the game master can remove players")
	}
	if _, ok := g.Players[targetID]; !ok {
		return Patch{}, errors.New("player is not in the room")
	}
	if targetID == g.CreatorID {
		return Patch{}, errors.New("the game master cannot be removed")
	}

	players := clonePlayers(g.Players)
	delete(players, targetID)

	p := Patch{
		Players:        players,
		LeftTeamOrder:  removeID(g.LeftTeamOrder, targetID),
		RightTeamOrder: removeID(g.RightTeamOrder, targetID),
	}
	if g.ClueGiver == targetID {
		p.ClueGiver = ptr("")
	}
	return p, nil
}
