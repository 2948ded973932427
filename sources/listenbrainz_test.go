package sources

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/csmith/tagview/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenBrainzTracks(t *testing.T) {
	listenBrainzPageDelay = 0
	t.Cleanup(func() { listenBrainzPageDelay = time.Second })

	pages := []string{
		`{"feedback":[
			{"recording_mbid":"m1","score":1,"track_metadata":{"artist_name":"Low","track_name":"Lullaby","release_name":"I Could Live in Hope"}},
			{"recording_mbid":"m2","score":1}
		],"offset":0,"count":2,"total_count":3}`,
		`{"feedback":[
			{"recording_mbid":"m3","score":1,"track_metadata":{"artist_name":"Slowdive","track_name":"Alison"}}
		],"offset":2,"count":1,"total_count":3}`,
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/feedback/user/someone/get-feedback", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.URL.Query().Get("metadata"))
		assert.Equal(t, "1", r.URL.Query().Get("score"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		page := 0
		if offset > 0 {
			page = 1
		}
		requests++
		_, _ = fmt.Fprint(w, pages[page])
	}))
	defer server.Close()

	lb := &ListenBrainz{Token: "secret", Username: "someone", BaseURL: server.URL}

	tracks, err := lb.Tracks()
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	assert.Equal(t, []model.Track{
		{Artist: "Low", Title: "Lullaby", Album: "I Could Live in Hope"},
		{Artist: "Slowdive", Title: "Alison"},
	}, tracks)
}

func TestListenBrainzTracksError(t *testing.T) {
	listenBrainzPageDelay = 0
	t.Cleanup(func() { listenBrainzPageDelay = time.Second })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"code":401,"error":"Invalid authorization token."}`)
	}))
	defer server.Close()

	lb := &ListenBrainz{Token: "bad", Username: "someone", BaseURL: server.URL}

	_, err := lb.Tracks()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid authorization token")
}
