// Package state is the pure game core: the shared GameState document and the
// transition functions that turn a player action into a Patch. Nothing in
// this package does I/O; the hosting layer owns persistence and fan-out.
package state

import "sort"

type GameType int

const (
	GameTypeTeams GameType = iota
	GameTypeCooperative
	GameTypeFreeplay
)

type RoundPhase int

const (
	PhaseSetupGame RoundPhase = iota
	PhasePickTeams
	PhaseGiveClue
	PhaseMakeGuess
	PhaseCounterGuess
	PhaseViewScore
)

type Team int

const (
	TeamUnset Team = iota
	TeamLeft
	TeamRight
)

// Direction is a counter-guess vote: does the target lie left or right of
// the guess.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func TeamReverse(t Team) Team {
	switch t {
	case TeamLeft:
		return TeamRight
	case TeamRight:
		return TeamLeft
	}
	return TeamUnset
}

type Player struct {
	Name string `json:"name"`
	Team Team   `json:"team"`
}

// TurnSummary is the snapshot of a completed round kept for the
// end-of-round view.
type TurnSummary struct {
	SpectrumCard   [2]string `json:"spectrumCard"`
	ClueGiverName  string    `json:"clueGiverName"`
	Clue           string    `json:"clue"`
	SpectrumTarget int       `json:"spectrumTarget"`
	Guess          int       `json:"guess"`
}

const (
	DefaultPointsToWin = 15
	MinPointsToWin     = 1
	MaxPointsToWin     = 50

	// SpectrumMax is the right edge of the guessing dial; values live in
	// [0, SpectrumMax].
	SpectrumMax = 20

	// CoopBaseTurns bounds a cooperative match: it ends once
	// turnsTaken >= CoopBaseTurns + coopBonusTurns.
	CoopBaseTurns = 7
)

// GameState is the single shared document replicated to every client in a
// room. Any client may overwrite it; last write wins. Field names match the
// wire format stored by the persistence layer.
type GameState struct {
	GameType       GameType          `json:"gameType"`
	RoundPhase     RoundPhase        `json:"roundPhase"`
	TurnsTaken     int               `json:"turnsTaken"`
	DeckSeed       string            `json:"deckSeed"`
	DeckIndex      int               `json:"deckIndex"`
	SpectrumTarget int               `json:"spectrumTarget"`
	Clue           string            `json:"clue"`
	Guess          int               `json:"guess"`
	CounterGuess   Direction         `json:"counterGuess"`
	Players        map[string]Player `json:"players"`
	ClueGiver      string            `json:"clueGiver"`
	LeftScore      int               `json:"leftScore"`
	RightScore     int               `json:"rightScore"`
	CoopScore      int               `json:"coopScore"`
	CoopBonusTurns int               `json:"coopBonusTurns"`
	PreviousTurn   *TurnSummary      `json:"previousTurn"`
	DeckLanguage   string            `json:"deckLanguage"`
	CreatorID      string            `json:"creatorId"`
	LeftTeamName   string            `json:"leftTeamName"`
	RightTeamName  string            `json:"rightTeamName"`

	// Next-position pointers into each team's explicit order, used for
	// round-robin clue-giver selection. Always read modulo team size.
	LeftRotationIndex  int `json:"leftRotationIndex"`
	RightRotationIndex int `json:"rightRotationIndex"`

	// Explicit, stable per-team sequences of player ids. Turn rotation
	// reads these, never the iteration order of Players.
	LeftTeamOrder  []string `json:"leftTeamOrder"`
	RightTeamOrder []string `json:"rightTeamOrder"`

	PointsToWin int `json:"pointsToWin"`
}

// InitialGameState returns the default document for a fresh room.
func InitialGameState(language string) GameState {
	if language == "" {
		language = "en"
	}
	return GameState{
		GameType:       GameTypeTeams,
		RoundPhase:     PhaseSetupGame,
		TurnsTaken:     -1,
		DeckSeed:       RandomFourCharacterString(),
		DeckIndex:      0,
		SpectrumTarget: RandomSpectrumTarget(),
		Clue:           "",
		Guess:          0,
		CounterGuess:   DirectionLeft,
		Players:        map[string]Player{},
		ClueGiver:      "",
		PreviousTurn:   nil,
		DeckLanguage:   language,
		LeftTeamOrder:  []string{},
		RightTeamOrder: []string{},
		PointsToWin:    DefaultPointsToWin,
	}
}

// CardLookup resolves the current spectrum card. Same seed+index+language
// must always yield the same pair so every player sees an identical card.
type CardLookup func(seed string, index int, language string) [2]string

// TeamMembers returns the team's player ids in rotation order: the explicit
// order array filtered to current members, then any member the array does
// not list yet (sorted by id so the result is stable).
func TeamMembers(g GameState, team Team) []string {
	listed := make(map[string]bool, len(g.Players))
	var members []string
	for _, pid := range teamOrder(g, team) {
		if p, ok := g.Players[pid]; ok && p.Team == team && !listed[pid] {
			listed[pid] = true
			members = append(members, pid)
		}
	}
	var missing []string
	for pid, p := range g.Players {
		if p.Team == team && !listed[pid] {
			missing = append(missing, pid)
		}
	}
	sort.Strings(missing)
	return append(members, missing...)
}

func teamOrder(g GameState, team Team) []string {
	if team == TeamLeft {
		return g.LeftTeamOrder
	}
	if team == TeamRight {
		return g.RightTeamOrder
	}
	return nil
}

// EligiblePlayers lists everyone who may hold the clue-giver role: any
// non-creator player, restricted in Teams mode to players with a team.
// Sorted by id so "first eligible" is deterministic.
func EligiblePlayers(g GameState) []string {
	var ids []string
	for pid, p := range g.Players {
		if pid == g.CreatorID {
			continue
		}
		if g.GameType == GameTypeTeams && p.Team == TeamUnset {
			continue
		}
		ids = append(ids, pid)
	}
	sort.Strings(ids)
	return ids
}

func firstEligible(g GameState) string {
	if ids := EligiblePlayers(g); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// Winner reports the winning team of a Teams match: a team wins once its
// score reaches pointsToWin while strictly exceeding the other team's.
func Winner(g GameState) (Team, bool) {
	if g.GameType != GameTypeTeams {
		return TeamUnset, false
	}
	ptw := g.PointsToWin
	if ptw <= 0 {
		ptw = DefaultPointsToWin
	}
	if g.LeftScore >= ptw && g.LeftScore > g.RightScore {
		return TeamLeft, true
	}
	if g.RightScore >= ptw && g.RightScore > g.LeftScore {
		return TeamRight, true
	}
	return TeamUnset, false
}

// CoopFinished reports whether a cooperative match has used up its
// 7 + coopBonusTurns cards.
func CoopFinished(g GameState) bool {
	return g.GameType == GameTypeCooperative &&
		g.TurnsTaken >= CoopBaseTurns+g.CoopBonusTurns
}

func clampGuess(v int) int {
	if v < 0 {
		return 0
	}
	if v > SpectrumMax {
		return SpectrumMax
	}
	return v
}

func clampScore(v, pointsToWin int) int {
	if v < 0 {
		return 0
	}
	if v > pointsToWin {
		return pointsToWin
	}
	return v
}
