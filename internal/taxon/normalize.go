// Package taxon derives canonical identity keys from scientific plant names.
// Two names denote the same taxon exactly when their keys are equal; cultivar
// and variegation markers never contribute to the key, hybrid markers always
// do.
package taxon

import (
	"regexp"
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

var (
	reQuotedSegment = regexp.MustCompile(`['‘’"“”][^'‘’"“”]*['‘’"“”]`)
	reVariegated    = regexp.MustCompile(`(?i)\bvariegat\w*`)
)

// rankTokens are infraspecific rank abbreviations that carry no identity.
var rankTokens = map[string]struct{}{
	"var":      {},
	"ssp":      {},
	"subsp":    {},
	"f":        {},
	"form":     {},
	"cv":       {},
	"cultivar": {},
}

// Normalize reduces a scientific name to its canonical key: lowercased
// "genus species", or "genus x species" for hybrids, or a lone genus when
// nothing more is available. Returns "" for empty input.
func Normalize(scientificName string) string {
	s := strings.TrimSpace(scientificName)
	if s == "" {
		return ""
	}

	s = reQuotedSegment.ReplaceAllString(s, " ")
	s = reVariegated.ReplaceAllString(s, " ")
	s = util.Fold(s)
	if s == "" {
		return ""
	}

	tokens := make([]string, 0, 4)
	for _, raw := range strings.Split(s, " ") {
		token := strings.TrimSuffix(raw, ".")
		if token == "" {
			continue
		}
		if _, isRank := rankTokens[token]; isRank {
			continue
		}
		tokens = append(tokens, token)
	}

	switch {
	case len(tokens) == 0:
		return ""
	case len(tokens) == 1:
		// Genus-only identity. Weak, but the only signal left.
		return tokens[0]
	}

	if tokens[1] == "x" && len(tokens) >= 3 {
		return tokens[0] + " x " + tokens[2]
	}
	if tokens[1] == "x" {
		return tokens[0]
	}
	return tokens[0] + " " + tokens[1]
}

// FormatScientificName rewrites a raw scientific name into display form:
// genus capitalized, epithets lowercased, hybrid sign kept as "x", cultivar
// segment re-quoted with single quotes.
func FormatScientificName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	cultivar := ""
	if m := reQuotedName.FindStringSubmatch(s); len(m) > 1 {
		cultivar = strings.TrimSpace(m[1])
	}
	s = reQuotedSegment.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		switch {
		case i == 0:
			words[i] = capitalize(w)
		case w == "×":
			words[i] = "x"
		}
	}
	out := strings.Join(words, " ")

	if cultivar != "" {
		out = strings.TrimSpace(out + " '" + titleWords(cultivar) + "'")
	}
	return out
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}
