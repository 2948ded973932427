package lastfm

import (
	"testing"

	"github.com/csmith/tagview/model"
	"github.com/stretchr/testify/assert"
)

func TestParseTopTags(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected model.TagResult
	}{
		{
			name:    "multiple tags keep response order",
			payload: `{"toptags":{"tag":[{"name":"rock","count":100},{"name":"90s","count":40}],"@attr":{"artist":"Radiohead","track":"Paranoid Android"}}}`,
			expected: model.TagResult{
				Artist: "Radiohead",
				Title:  "Paranoid Android",
				Tags:   []string{"rock", "90s"},
			},
		},
		{
			name:    "empty tag array",
			payload: `{"toptags":{"tag":[],"@attr":{"artist":"Radiohead","track":"Paranoid Android"}}}`,
			expected: model.TagResult{
				Artist: "Radiohead",
				Title:  "Paranoid Android",
				Tags:   []string{},
			},
		},
		{
			name:    "missing tag key",
			payload: `{"toptags":{"#text":"\n","@attr":{"artist":"Obscure","track":"B-Side"}}}`,
			expected: model.TagResult{
				Artist: "Obscure",
				Title:  "B-Side",
				Tags:   []string{},
			},
		},
		{
			name:    "single tag as object",
			payload: `{"toptags":{"tag":{"name":"shoegaze","count":1},"@attr":{"artist":"Slowdive","track":"Alison"}}}`,
			expected: model.TagResult{
				Artist: "Slowdive",
				Title:  "Alison",
				Tags:   []string{"shoegaze"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTopTags([]byte(tt.payload))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseTopTagsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		contains string
	}{
		{
			name:     "missing toptags",
			payload:  `{"something":"else"}`,
			contains: "missing toptags",
		},
		{
			name:     "api error document",
			payload:  `{"error":6,"message":"Track not found"}`,
			contains: "Track not found",
		},
		{
			name:     "missing attributes",
			payload:  `{"toptags":{"tag":[{"name":"rock"}]}}`,
			contains: "attributes",
		},
		{
			name:     "not json",
			payload:  `<html>oops</html>`,
			contains: "malformed response",
		},
		{
			name:     "empty body",
			payload:  ``,
			contains: "malformed response",
		},
		{
			name:     "tags of the wrong type",
			payload:  `{"toptags":{"tag":"rock","@attr":{"artist":"a","track":"b"}}}`,
			contains: "malformed response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTopTags([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
