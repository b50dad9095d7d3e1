package util

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "hybrid sign", input: "Epipremnum × aureum", want: "epipremnum x aureum"},
		{name: "asterisk hybrid", input: "Begonia * rex", want: "begonia x rex"},
		{name: "quotes stripped", input: "Monstera 'Thai Constellation'", want: "monstera thai constellation"},
		{name: "curly quotes", input: "Ficus “Sunny”", want: "ficus sunny"},
		{name: "whitespace collapsed", input: "  Pilea   peperomioides ", want: "pilea peperomioides"},
		{name: "punctuation", input: "Anubias barteri, var. nana!", want: "anubias barteri var. nana"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got := Tokenize("Begonia x rex")
	if len(got) != 2 || got[0] != "begonia" || got[1] != "rex" {
		t.Fatalf("got %v", got)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Ficus pumila 'Quercifolia'", want: "ficus-pumila-quercifolia"},
		{input: "Anubias barteri var. nana", want: "anubias-barteri-var-nana"},
		{input: "Riccia fluitans / floating", want: "riccia-fluitans-floating"},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := Slug(tc.input); got != tc.want {
			t.Fatalf("Slug(%q) = %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestDiceCoefficient(t *testing.T) {
	if got := DiceCoefficient("monstera", "monstera"); got != 1 {
		t.Fatalf("identical strings: got %v", got)
	}
	if got := DiceCoefficient("", "monstera"); got != 0 {
		t.Fatalf("empty string: got %v", got)
	}
	if got := DiceCoefficient("night", "nacht"); got != 0.25 {
		t.Fatalf("night/nacht: got %v want 0.25", got)
	}

	near := DiceCoefficient("anubias barteri", "anubias bartery")
	far := DiceCoefficient("anubias barteri", "ficus pumila")
	if near <= far {
		t.Fatalf("expected near > far, got %v vs %v", near, far)
	}
}
