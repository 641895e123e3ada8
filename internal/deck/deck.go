// Package deck resolves the spectrum card for a round. The deck is a
// seeded shuffle over an embedded card list: the same (seed, index,
// language) always yields the same pair, which is what lets every client in
// a room render an identical card without coordination.
package deck

import (
	"hash/fnv"
	"math/rand/v2"
)

// Card implements the state.CardLookup contract. An unknown language falls
// back to the English deck rather than failing; index wraps around once the
// deck is exhausted.
func Card(seed string, index int, language string) [2]string {
	cards := cardsFor(language)
	order := shuffledOrder(seed, language, len(cards))
	if index < 0 {
		index = 0
	}
	return cards[order[index%len(cards)]]
}

// Size reports how many cards the deck for a language holds before it
// wraps.
func Size(language string) int {
	return len(cardsFor(language))
}

func cardsFor(language string) [][2]string {
	if cards, ok := decks[language]; ok {
		return cards
	}
	return decks["en"]
}

// shuffledOrder derives a permutation of the deck from the room's seed.
// PCG keyed by an FNV-1a digest keeps the shuffle stable across processes
// and platforms.
func shuffledOrder(seed, language string, n int) []int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(language))
	sum := h.Sum64()

	rng := rand.New(rand.NewPCG(sum, sum^0x9e3779b97f4a7c15))
	return rng.Perm(n)
}
