package util

import (
	"regexp"
	"strings"
)

var (
	reQuotes   = regexp.MustCompile("[\"'`«»‘’“”]")
	reNonAlnum = regexp.MustCompile(`[^a-z0-9x\-/\s.]`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reSlugDrop = regexp.MustCompile(`[^a-z0-9-]`)
)

// Fold lowers a botanical or display name to a plain comparable form: ASCII
// lowercase, hybrid sign unified to "x", quotes and punctuation stripped,
// whitespace collapsed.
func Fold(input string) string {
	s := strings.ToLower(input)
	repl := strings.NewReplacer("×", "x", "*", "x", "_", " ")
	s = repl.Replace(s)
	s = reQuotes.ReplaceAllString(s, " ")
	s = reNonAlnum.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func Tokenize(input string) []string {
	norm := Fold(input)
	parts := strings.Split(norm, " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// Slug derives the backing filename / image folder name for a record.
func Slug(input string) string {
	s := Fold(input)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "/", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
	s = reSlugDrop.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}

func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}

func StringPtr(v string) *string { return &v }

func IntPtr(v int) *int { return &v }
