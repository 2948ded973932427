package sources

import (
	"log/slog"
	"sync"

	"github.com/csmith/tagview/model"
	"github.com/twoscott/gobble-fm/lastfm"
	"github.com/twoscott/gobble-fm/session"
)

// Lastfm is a source that lists a Last.fm user's loved tracks
type Lastfm struct {
	APIKey   string
	Secret   string
	Username string
	Password string

	mu     sync.Mutex
	client *session.Client
}

// Tracks retrieves loved tracks from Last.fm
func (l *Lastfm) Tracks() ([]model.Track, error) {
	client, err := l.getClient()
	if err != nil {
		return nil, err
	}

	slog.Debug("Retrieving loved tracks", "source", "lastfm")

	var tracks []model.Track
	page := uint(1)

	for {
		lovedTracks, err := client.User.LovedTracks(lastfm.LovedTracksParams{
			User:  l.Username,
			Page:  page,
			Limit: 200,
		})
		if err != nil {
			return nil, err
		}

		for _, track := range lovedTracks.Tracks {
			tracks = append(tracks, model.Track{
				Title:  track.Title,
				Artist: track.Artist.Name,
			})
		}

		if page >= uint(lovedTracks.TotalPages) {
			break
		}
		page++
	}

	slog.Debug("Retrieved loved tracks", "count", len(tracks), "source", "lastfm")
	return tracks, nil
}

// getClient lazily connects to Last.fm
func (l *Lastfm) getClient() (*session.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil {
		return l.client, nil
	}

	client := session.NewClient(l.APIKey, l.Secret)
	if err := client.Login(l.Username, l.Password); err != nil {
		return nil, err
	}

	l.client = client
	return l.client, nil
}

var _ model.Source = &Lastfm{}
