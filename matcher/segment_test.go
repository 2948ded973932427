package matcher

import (
	"testing"

	"github.com/csmith/tagview/model"
	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	wanted := []model.Track{
		{Artist: "Radiohead", Title: "Paranoid Android"},
		{Artist: "Slowdive", Title: "Alison"},
		{Artist: "The Cure", Title: "Pictures of You"},
	}
	seen := []model.Track{
		{Artist: "RADIOHEAD", Title: "paranoid android"},
		{Artist: "Cure", Title: "Pictures of You"},
		{Artist: "Low", Title: "Lullaby"},
	}

	result := Segment(wanted, seen)

	assert.Equal(t, []model.Track{wanted[0], wanted[2]}, result.Matched)
	assert.Equal(t, []model.Track{wanted[1]}, result.Missing)
	assert.Equal(t, []model.Track{seen[2]}, result.Extra)
}

func TestSegmentPairsEachTrackOnce(t *testing.T) {
	wanted := []model.Track{
		{Artist: "Low", Title: "Lullaby"},
		{Artist: "Low", Title: "Lullaby"},
	}
	seen := []model.Track{
		{Artist: "Low", Title: "Lullaby"},
	}

	result := Segment(wanted, seen)

	assert.Len(t, result.Matched, 1)
	assert.Len(t, result.Missing, 1)
	assert.Empty(t, result.Extra)
}

func TestSegmentEmpty(t *testing.T) {
	result := Segment(nil, nil)

	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Empty(t, result.Extra)
}
