package state

import (
	"errors"
	"strings"
)

// midpoint the dial snaps back to when guessing starts.
const guessMidpoint = 10

// SubmitClue commits the clue-giver's clue and opens the guessing phase.
func SubmitClue(actorID, clue string, g GameState) (Patch, error) {
	if g.RoundPhase != PhaseGiveClue {
		return Patch{}, errors.New("clues can only be given in the clue phase")
	}
	if actorID != g.ClueGiver || actorID == "" {
		return Patch{}, errors.New("only the clue giver can submit the clue")
	}
	clue = strings.TrimSpace(clue)
	if clue == "" {
		return Patch{}, errors.New("clue must not be empty")
	}
	return Patch{
		Clue:       ptr(clue),
		Guess:      ptr(guessMidpoint),
		RoundPhase: ptr(PhaseMakeGuess),
	}, nil
}

// MoveGuess moves the guessing side's dial without committing it.
func MoveGuess(actorID string, guess int, g GameState) (Patch, error) {
	if g.RoundPhase != PhaseMakeGuess {
		return Patch{}, errors.New("the dial can only move in the guessing phase")
	}
	if !canGuess(actorID, g) {
		return Patch{}, errors.New("it is not your turn to guess")
	}
	return Patch{Guess: ptr(clampGuess(guess))}, nil
}

// ConfirmGuess commits the current dial position. Teams games move on to
// the counter-guess; cooperative games score immediately; freeplay reveals
// the result.
func ConfirmGuess(actorID string, g GameState) (Patch, error) {
	if g.RoundPhase != PhaseMakeGuess {
		return Patch{}, errors.New("there is no guess to confirm")
	}
	if !canGuess(actorID, g) {
		return Patch{}, errors.New("it is not your turn to guess")
	}

	switch g.GameType {
	case GameTypeTeams:
		return Patch{RoundPhase: ptr(PhaseCounterGuess)}, nil
	case GameTypeCooperative:
		return scoreCoopRound(g), nil
	default:
		return Patch{RoundPhase: ptr(PhaseViewScore)}, nil
	}
}

// canGuess: the guessing side is everyone on the clue-giver's team except
// the clue-giver; outside Teams mode, everyone except the clue-giver. The
// game master never guesses.
func canGuess(actorID string, g GameState) bool {
	if actorID == g.CreatorID || actorID == g.ClueGiver {
		return false
	}
	actor, ok := g.Players[actorID]
	if !ok {
		return false
	}
	if g.GameType == GameTypeTeams {
		return actor.Team == teamOf(g, g.ClueGiver) && actor.Team != TeamUnset
	}
	return true
}

// WasCounterGuessCorrect reports whether the committed left/right vote
// named the side of the guess the target actually lies on. A target equal
// to the guess makes both votes wrong.
func WasCounterGuessCorrect(g GameState) bool {
	return (g.CounterGuess == DirectionLeft && g.SpectrumTarget < g.Guess) ||
		(g.CounterGuess == DirectionRight && g.SpectrumTarget > g.Guess)
}

// ScoreTeamRound resolves a Teams round from the opposing team's
// counter-guess vote.
//
// Scoring variant preserved from the original: the round's 0/2/3/4 band
// score is computed for display and for the catch-up rule but is never
// added to a team total. Team scores move only through the opposing team's
// +1 for a correct counter-guess, the one-point starting handicap, and
// manual adjustments by the game master.
func ScoreTeamRound(actorID string, dir Direction, g GameState) (Patch, error) {
	if g.GameType != GameTypeTeams {
		return Patch{}, errors.New("counter-guesses apply to team games only")
	}
	if g.RoundPhase != PhaseCounterGuess {
		return Patch{}, errors.New("there is no guess to counter")
	}
	if dir != DirectionLeft && dir != DirectionRight {
		return Patch{}, errors.New("counter-guess must be left or right")
	}
	if !canCounterGuess(actorID, g) {
		return Patch{}, errors.New("it is not your team's counter-guess")
	}

	p := Patch{
		CounterGuess: ptr(dir),
		RoundPhase:   ptr(PhaseViewScore),
	}

	voted := g
	voted.CounterGuess = dir
	if WasCounterGuessCorrect(voted) {
		switch TeamReverse(teamOf(g, g.ClueGiver)) {
		case TeamLeft:
			p.LeftScore = ptr(clampScore(g.LeftScore+1, g.PointsToWin))
		case TeamRight:
			p.RightScore = ptr(clampScore(g.RightScore+1, g.PointsToWin))
		}
	}
	return p, nil
}

// canCounterGuess: any member of the team opposing the clue-giver's team.
func canCounterGuess(actorID string, g GameState) bool {
	if actorID == g.CreatorID {
		return false
	}
	actor, ok := g.Players[actorID]
	if !ok {
		return false
	}
	opposing := TeamReverse(teamOf(g, g.ClueGiver))
	return opposing != TeamUnset && actor.Team == opposing
}

// scoreCoopRound folds the round score into the cooperative total. A
// perfect round banks 3 points and earns a bonus card instead.
func scoreCoopRound(g GameState) Patch {
	p := Patch{RoundPhase: ptr(PhaseViewScore)}
	score := Score(g.SpectrumTarget, g.Guess)
	if score == 4 {
		p.CoopScore = ptr(g.CoopScore + 3)
		p.CoopBonusTurns = ptr(g.CoopBonusTurns + 1)
	} else {
		p.CoopScore = ptr(g.CoopScore + score)
	}
	return p
}
