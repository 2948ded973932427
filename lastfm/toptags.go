package lastfm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/csmith/tagview/model"
)

// ErrMalformedResponse is returned when a payload lacks the top tags structure
var ErrMalformedResponse = errors.New("malformed response")

type topTagsResponse struct {
	TopTags *struct {
		Tag  json.RawMessage `json:"tag"`
		Attr *struct {
			Artist string `json:"artist"`
			Track  string `json:"track"`
		} `json:"@attr"`
	} `json:"toptags"`
	errorResponse
}

type tag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ParseTopTags extracts the echoed artist/title and the tag names, in
// response order, from a track.gettoptags JSON payload.
func ParseTopTags(payload []byte) (model.TagResult, error) {
	var resp topTagsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return model.TagResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if resp.TopTags == nil {
		if resp.Message != "" {
			return model.TagResult{}, fmt.Errorf("%w: last.fm says '%s'", ErrMalformedResponse, resp.Message)
		}
		return model.TagResult{}, fmt.Errorf("%w: missing toptags", ErrMalformedResponse)
	}

	if resp.TopTags.Attr == nil {
		return model.TagResult{}, fmt.Errorf("%w: missing toptags attributes", ErrMalformedResponse)
	}

	tags, err := decodeTags(resp.TopTags.Tag)
	if err != nil {
		return model.TagResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := model.TagResult{
		Artist: resp.TopTags.Attr.Artist,
		Title:  resp.TopTags.Attr.Track,
		Tags:   make([]string, 0, len(tags)),
	}
	for _, t := range tags {
		result.Tags = append(result.Tags, t.Name)
	}
	return result, nil
}

// decodeTags handles last.fm's habit of sending a lone tag as an object
// rather than a one-element array, and of omitting the key entirely when
// there are no tags.
func decodeTags(raw json.RawMessage) ([]tag, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '{' {
		var single tag
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, err
		}
		return []tag{single}, nil
	}

	var tags []tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
