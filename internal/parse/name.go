package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	spaceRe     = regexp.MustCompile(`\s+`)
	piecesRe    = regexp.MustCompile(`(?i)\(\s*[x×]\s*(\d+)\s*\)\s*$`)
	qualifierRe = regexp.MustCompile(`\s+[—–-]\s+`)
	tempRe      = regexp.MustCompile(`(\d+)\s*°\s*C\b`)
)

// ParsedName holds the structured data parsed from an item or cycle display name.
type ParsedName struct {
	Base        string
	Qualifier   string // room or program detail after a dash, e.g. "Bad" or "60°C"
	Pieces      int    // "(x5)" suffix; 1 when absent
	Temperature int    // degrees Celsius found in the qualifier; 0 when absent
}

// ParseName splits display names such as "Weiße T-Shirts (x5)",
// "Handtücher — Bad" or "Weißwäsche — 60°C".
func ParseName(raw string) (ParsedName, error) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))

	// 1) optional piece count at the very end
	pieces := 1
	if loc := piecesRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil && n > 0 {
			pieces = n
			s = strings.TrimSpace(s[:loc[0]])
		}
	}

	// 2) split base and qualifier on the first spaced dash; a dash inside a word
	// ("T-Shirts", "Leinen-Tischdecke") is part of the name
	base, qualifier := s, ""
	if loc := qualifierRe.FindStringIndex(s); loc != nil {
		base = strings.TrimSpace(s[:loc[0]])
		qualifier = strings.TrimSpace(s[loc[1]:])
	}

	// 3) temperature lives in the qualifier of cycle names
	temperature := 0
	if m := tempRe.FindStringSubmatch(qualifier); m != nil {
		temperature, _ = strconv.Atoi(m[1])
	}

	if base == "" {
		return ParsedName{}, fmt.Errorf("unable to parse name: %q", raw)
	}
	return ParsedName{Base: base, Qualifier: qualifier, Pieces: pieces, Temperature: temperature}, nil
}
