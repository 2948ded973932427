package matcher

import (
	"sort"

	"github.com/csmith/tagview/model"
)

type SegmentResult struct {
	Matched []model.Track
	Missing []model.Track
	Extra   []model.Track
}

type matchCandidate struct {
	wantedIndex int
	seenIndex   int
	score       Score
}

// Segment splits wanted tracks into those already present in seen and
// those missing from it. Extra holds seen tracks nobody asked for.
func Segment(wanted []model.Track, seen []model.Track) SegmentResult {
	result := SegmentResult{
		Matched: make([]model.Track, 0),
		Missing: make([]model.Track, 0),
		Extra:   make([]model.Track, 0),
	}

	var candidates []matchCandidate
	for i, w := range wanted {
		for j, s := range seen {
			if score := Match(w, s); score != NoMatch {
				candidates = append(candidates, matchCandidate{
					wantedIndex: i,
					seenIndex:   j,
					score:       score,
				})
			}
		}
	}

	// Best scores claim their pair first
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	matchedWanted := make(map[int]bool)
	matchedSeen := make(map[int]bool)

	for _, candidate := range candidates {
		if !matchedWanted[candidate.wantedIndex] && !matchedSeen[candidate.seenIndex] {
			matchedWanted[candidate.wantedIndex] = true
			matchedSeen[candidate.seenIndex] = true
		}
	}

	for i, w := range wanted {
		if matchedWanted[i] {
			result.Matched = append(result.Matched, w)
		} else {
			result.Missing = append(result.Missing, w)
		}
	}

	for j, s := range seen {
		if !matchedSeen[j] {
			result.Extra = append(result.Extra, s)
		}
	}

	return result
}
