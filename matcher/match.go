package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/csmith/tagview/model"
)

// Score represents the quality of a match between two tracks
type Score int

const (
	NoMatch    Score = 0
	FuzzyMatch Score = 1
	ExactMatch Score = 2
)

const maxLevenshteinDistance = 3

// Match compares two Tracks and returns a score indicating match quality
func Match(a, b model.Track) Score {
	if a.Artist == "" || b.Artist == "" || a.Title == "" || b.Title == "" {
		return NoMatch
	}

	// Exact artist and title match
	if strings.EqualFold(a.Artist, b.Artist) && strings.EqualFold(a.Title, b.Title) {
		return ExactMatch
	}

	// Fuzzy match on artist + title
	aKey := normalizeForMatching(a.Artist) + "|" + normalizeForMatching(a.Title)
	bKey := normalizeForMatching(b.Artist) + "|" + normalizeForMatching(b.Title)
	if levenshtein.ComputeDistance(aKey, bKey) <= maxLevenshteinDistance {
		return FuzzyMatch
	}

	return NoMatch
}

// Corrected reports whether the service changed what was asked for, i.e.
// the echoed artist/title is anything other than an exact match.
func Corrected(requested model.LookupRequest, echoed model.TagResult) bool {
	return Match(
		model.Track{Artist: requested.Artist, Title: requested.Title},
		model.Track{Artist: echoed.Artist, Title: echoed.Title},
	) != ExactMatch
}

func normalizeForMatching(s string) string {
	s = strings.ToLower(s)

	// Remove anything in parentheses
	for {
		start := strings.Index(s, "(")
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], ")")
		if end == -1 {
			break
		}
		s = s[:start] + s[start+end+1:]
	}

	// Remove anything after feat/ft/featuring
	for _, sep := range []string{" feat.", " feat ", " ft.", " ft ", " featuring "} {
		if idx := strings.Index(s, sep); idx != -1 {
			s = s[:idx]
		}
	}

	// Clean up whitespace
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")

	// Remove "the " from the start
	s = strings.TrimPrefix(s, "the ")

	return s
}
