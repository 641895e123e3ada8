package deck

import "testing"

func TestCard_Deterministic(t *testing.T) {
	for i := 0; i < Size("en"); i++ {
		a := Card("bcdf", i, "en")
		b := Card("bcdf", i, "en")
		if a != b {
			t.Fatalf("index %d: %v != %v", i, a, b)
		}
	}
}

func TestCard_SeedIsAPermutation(t *testing.T) {
	seen := make(map[[2]string]int)
	for i := 0; i < Size("en"); i++ {
		c := Card("bcdf", i, "en")
		if prev, dup := seen[c]; dup {
			t.Fatalf("card %v dealt at index %d and %d", c, prev, i)
		}
		seen[c] = i
	}
}

func TestCard_WrapsAroundDeck(t *testing.T) {
	n := Size("en")
	if got, want := Card("bcdf", n, "en"), Card("bcdf", 0, "en"); got != want {
		t.Fatalf("index %d dealt %v, want wrap to %v", n, got, want)
	}
	if got, want := Card("bcdf", -3, "en"), Card("bcdf", 0, "en"); got != want {
		t.Fatalf("negative index dealt %v, want %v", got, want)
	}
}

func TestCard_DifferentSeedsShuffleDifferently(t *testing.T) {
	same := true
	for i := 0; i < 10; i++ {
		if Card("bcdf", i, "en") != Card("ghjk", i, "en") {
			same = false
			break
		}
	}
	if same {
		t.Fatal("two seeds dealt the same first ten cards")
	}
}

func TestCard_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	if Size("fr") != Size("en") {
		t.Fatalf("fallback deck size %d, want %d", Size("fr"), Size("en"))
	}
	for i := 0; i < 5; i++ {
		if Card("bcdf", i, "fr") != Card("bcdf", i, "en") {
			t.Fatalf("index %d differs between fallback and english deck", i)
		}
	}
}

func TestCard_GermanDeckIsSeparate(t *testing.T) {
	if Size("de") == 0 {
		t.Fatal("german deck is empty")
	}
	c := Card("bcdf", 0, "de")
	if c[0] == "" || c[1] == "" {
		t.Fatalf("blank card %v", c)
	}
}
