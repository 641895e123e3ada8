package game

import "testing"

func TestRoomIDFromWSPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{name: "valid", path: "/ws/bcdf", want: "bcdf", ok: true},
		{name: "valid_digits", path: "/ws/2345", want: "2345", ok: true},
		{name: "missing", path: "/ws/", want: "", ok: false},
		{name: "missing_no_trailing_slash", path: "/ws", want: "", ok: false},
		{name: "wrong_prefix", path: "/wss/bcdf", want: "", ok: false},
		{name: "extra_segment", path: "/ws/bcdf/x", want: "", ok: false},
		{name: "too_short", path: "/ws/bcd", want: "", ok: false},
		{name: "too_long", path: "/ws/bcdfg", want: "", ok: false},
		{name: "vowels", path: "/ws/aeio", want: "", ok: false},
		{name: "uppercase", path: "/ws/BCDF", want: "", ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := roomIDFromWSPath(tc.path)
			if ok != tc.ok {
				t.Fatalf("ok=%v, want %v (got=%q)", ok, tc.ok, got)
			}
			if got != tc.want {
				t.Fatalf("got=%q, want %q", got, tc.want)
			}
		})
	}
}
