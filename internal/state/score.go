package state

// Score maps a hidden target and a guessed dial position to a point value.
// The scoring band is 5 slots wide centered on the target: a bullseye is
// worth 4, the adjacent slots 3, the next ones 2, everything further 0.
func Score(target, guess int) int {
	d := target - guess
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return 4
	case d == 1:
		return 3
	case d == 2:
		return 2
	default:
		return 0
	}
}
