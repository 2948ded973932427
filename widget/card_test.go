package widget

import (
	"strings"
	"testing"

	"github.com/csmith/tagview/lastfm"
	"github.com/csmith/tagview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const radioheadPayload = `{"toptags":{"tag":[{"name":"rock"},{"name":"90s"}],"@attr":{"artist":"Radiohead","track":"Paranoid Android"}}}`

func TestRenderResult(t *testing.T) {
	card, err := RenderResult([]byte(radioheadPayload))
	require.NoError(t, err)

	assert.Equal(t, "Radiohead", card.Artist)
	assert.Equal(t, "Paranoid Android", card.Title)
	assert.Equal(t, []string{"rock", "90s"}, card.Tags)
	assert.False(t, card.Corrected)
}

func TestRenderResultNoTags(t *testing.T) {
	card, err := RenderResult([]byte(`{"toptags":{"tag":[],"@attr":{"artist":"Radiohead","track":"Paranoid Android"}}}`))
	require.NoError(t, err)

	assert.Equal(t, "Radiohead", card.Artist)
	assert.Equal(t, "Paranoid Android", card.Title)
	assert.Empty(t, card.Tags)
	assert.Contains(t, card.View(80), "no tags")
}

func TestRenderResultMalformed(t *testing.T) {
	_, err := RenderResult([]byte(`{"error":6,"message":"Track not found"}`))
	assert.ErrorIs(t, err, lastfm.ErrMalformedResponse)
}

func TestRenderResultIsPure(t *testing.T) {
	first, err := RenderResult([]byte(radioheadPayload))
	require.NoError(t, err)

	second, err := RenderResult([]byte(radioheadPayload))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.View(80), second.View(80))
}

func TestNewCardCopiesTags(t *testing.T) {
	result := model.TagResult{Artist: "a", Title: "b", Tags: []string{"x"}}

	card := NewCard(result)
	result.Tags[0] = "changed"

	assert.Equal(t, []string{"x"}, card.Tags)
}

func TestCardView(t *testing.T) {
	card, err := RenderResult([]byte(radioheadPayload))
	require.NoError(t, err)

	view := card.View(80)

	assert.Contains(t, view, "Radiohead")
	assert.Contains(t, view, "Paranoid Android")
	assert.Less(t, strings.Index(view, "rock"), strings.Index(view, "90s"))
	assert.NotContains(t, view, "autocorrected")
}

func TestCardViewCorrected(t *testing.T) {
	card := Card{
		Artist:    "Radiohead",
		Title:     "Paranoid Android",
		Requested: model.LookupRequest{Artist: "radiohed", Title: "paranoid androd"},
		Corrected: true,
	}

	assert.Contains(t, card.View(80), `autocorrected from "radiohed" / "paranoid androd"`)
}

func TestChipsWrap(t *testing.T) {
	card := Card{Tags: []string{"alternative", "rock", "experimental", "britpop"}}

	assert.Equal(t, 1, strings.Count(card.chips(200), "\n")+1)
	assert.Greater(t, strings.Count(card.chips(20), "\n")+1, 1)
}
