package combinator

import "testing"

func TestStateAdvance(t *testing.T) {
	tests := []struct {
		name     string
		consumed string
		want     State
	}{
		{"empty", "", State{}},
		{"plain", "abc", State{Off: 3, Pos: 3, Row: 0, Col: 3}},
		{"newline resets column", "ab\nc", State{Off: 4, Pos: 4, Row: 1, Col: 1}},
		{"several newlines", "\n\n\n", State{Off: 3, Pos: 3, Row: 3, Col: 0}},
		{"multibyte runes", "héllo", State{Off: 6, Pos: 5, Row: 0, Col: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (State{}).advance(tt.consumed); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStateCopySemantics(t *testing.T) {
	saved := State{Off: 2, Pos: 2, Col: 2}
	advanced := saved.advance("xy\nz")
	if saved.Off != 2 || saved.Col != 2 {
		t.Errorf("advance mutated its receiver: %+v", saved)
	}
	if advanced.Off != 6 || advanced.Row != 1 || advanced.Col != 1 {
		t.Errorf("advanced = %+v", advanced)
	}
}

func TestInputPeekPrev(t *testing.T) {
	in := &input{file: "test", text: "aé"}

	r, ok := in.peek(State{})
	if !ok || r != 'a' {
		t.Errorf("peek at 0 = (%q, %v)", r, ok)
	}
	r, ok = in.peek(State{Off: 1})
	if !ok || r != 'é' {
		t.Errorf("peek at 1 = (%q, %v)", r, ok)
	}
	if _, ok := in.peek(State{Off: 3}); ok {
		t.Error("peek past end succeeded")
	}

	if _, ok := in.prev(State{}); ok {
		t.Error("prev at start succeeded")
	}
	r, ok = in.prev(State{Off: 3})
	if !ok || r != 'é' {
		t.Errorf("prev at end = (%q, %v)", r, ok)
	}
}

func TestStateString(t *testing.T) {
	if got := (State{Row: 1, Col: 4}).String(); got != "2:5" {
		t.Errorf("got %q", got)
	}
}
