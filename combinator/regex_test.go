package combinator

import "testing"

func TestRegexp(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		input string
		want  string
		fails bool
	}{
		{"simple", `[a-z]+`, "abc123", "abc", false},
		{"anchored at cursor", `[0-9]+`, "abc123", "", true},
		{"empty match ok", `[0-9]*`, "abc", "", false},
		{"multiline consumption", `[a-z\n]+`, "ab\ncd!", "ab\ncd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, v, err := run(t, tt.input, Regexp(tt.expr))
			if tt.fails {
				if err == nil {
					t.Fatalf("expected failure, got %v", v)
				}
				if st.Off != 0 {
					t.Errorf("failure advanced to %d", st.Off)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := mustText(t, v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegexpInSequence(t *testing.T) {
	p := Seq(Pick(1), Char(':'), Regexp(`[0-9]+`))
	_, v, err := run(t, ":8080/path", p)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustText(t, v); got != "8080" {
		t.Errorf("got %q", got)
	}
}

func TestRegexpRowTracking(t *testing.T) {
	st, _, err := run(t, "ab\ncd", Regexp(`[a-z\n]+`))
	if err != nil {
		t.Fatal(err)
	}
	if st.Row != 1 || st.Col != 2 {
		t.Errorf("state = %+v, want row 1 col 2", st)
	}
}

func TestRegexpInvalidPattern(t *testing.T) {
	_, _, err := run(t, "x", Regexp(`(`))
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T", err)
	}
	if perr.Failure == "" {
		t.Error("invalid pattern should carry a literal failure message")
	}
}
