package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/csmith/tagview/model"
)

const listenBrainzBaseURL = "https://api.listenbrainz.org"

// Delay between page requests, to stay under the API's rate limit
var listenBrainzPageDelay = 1 * time.Second

// ListenBrainz is a source that lists a ListenBrainz user's loved recordings
type ListenBrainz struct {
	Token    string
	Username string
	// BaseURL defaults to the public API
	BaseURL string
}

type listenBrainzFeedbackResponse struct {
	Feedback   []listenBrainzFeedback `json:"feedback"`
	Offset     int                    `json:"offset"`
	Count      int                    `json:"count"`
	TotalCount int                    `json:"total_count"`
}

type listenBrainzFeedback struct {
	RecordingMBID string `json:"recording_mbid"`
	Score         int    `json:"score"`
	TrackMetadata *struct {
		ArtistName  string `json:"artist_name"`
		TrackName   string `json:"track_name"`
		ReleaseName string `json:"release_name"`
	} `json:"track_metadata"`
}

// Tracks retrieves loved recordings from ListenBrainz
func (lb *ListenBrainz) Tracks() ([]model.Track, error) {
	slog.Debug("Retrieving loved tracks", "source", "listenbrainz")

	var allTracks []model.Track
	offset := 0
	const pageSize = 100

	for {
		tracks, received, totalCount, err := lb.fetchLovedTracksPage(offset, pageSize)
		if err != nil {
			return nil, err
		}

		allTracks = append(allTracks, tracks...)

		if received == 0 || offset+received >= totalCount {
			break
		}
		offset += received
	}

	slog.Debug("Retrieved loved tracks", "count", len(allTracks), "source", "listenbrainz")
	return allTracks, nil
}

// fetchLovedTracksPage fetches a single page of loved tracks with retry logic.
// It returns the usable tracks along with the number of feedback items read.
func (lb *ListenBrainz) fetchLovedTracksPage(offset, count int) ([]model.Track, int, int, error) {
	const maxRetries = 3

	base := lb.BaseURL
	if base == "" {
		base = listenBrainzBaseURL
	}
	query := url.Values{
		"score":    {"1"},
		"metadata": {"true"},
		"offset":   {strconv.Itoa(offset)},
		"count":    {strconv.Itoa(count)},
	}
	u := fmt.Sprintf("%s/1/feedback/user/%s/get-feedback?%s", base, url.PathEscape(lb.Username), query.Encode())

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, 0, 0, err
		}

		req.Header.Set("Authorization", fmt.Sprintf("Token %s", lb.Token))

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, 0, 0, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			sleepDuration := lb.getSleepDuration(resp)
			slog.Warn("Rate limited (429), retrying", "attempt", attempt+1, "sleep_seconds", sleepDuration.Seconds(), "source", "listenbrainz")
			time.Sleep(sleepDuration)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, 0, 0, fmt.Errorf("ListenBrainz API error: %s - %s", resp.Status, string(body))
		}

		var feedbackResp listenBrainzFeedbackResponse
		err = json.NewDecoder(resp.Body).Decode(&feedbackResp)
		resp.Body.Close()
		if err != nil {
			return nil, 0, 0, err
		}

		var tracks []model.Track
		for _, feedback := range feedbackResp.Feedback {
			if feedback.TrackMetadata == nil || feedback.TrackMetadata.ArtistName == "" || feedback.TrackMetadata.TrackName == "" {
				slog.Warn("Skipping recording without metadata", "mbid", feedback.RecordingMBID, "source", "listenbrainz")
				continue
			}
			tracks = append(tracks, model.Track{
				Artist: feedback.TrackMetadata.ArtistName,
				Title:  feedback.TrackMetadata.TrackName,
				Album:  feedback.TrackMetadata.ReleaseName,
			})
		}

		time.Sleep(listenBrainzPageDelay)
		return tracks, len(feedbackResp.Feedback), feedbackResp.TotalCount, nil
	}

	return nil, 0, 0, fmt.Errorf("ListenBrainz: max retries exceeded due to rate limiting")
}

// getSleepDuration calculates sleep duration from rate limit headers
func (lb *ListenBrainz) getSleepDuration(resp *http.Response) time.Duration {
	resetInStr := resp.Header.Get("X-RateLimit-Reset-In")
	if resetInStr != "" {
		if resetIn, err := strconv.Atoi(resetInStr); err == nil {
			return time.Duration(resetIn+5) * time.Second
		}
	}
	return 10 * time.Second
}

var _ model.Source = &ListenBrainz{}
