package sources

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/csmith/tagview/model"
	"github.com/supersonic-app/go-subsonic/subsonic"
)

// Subsonic is a source that lists starred songs on a Subsonic server
type Subsonic struct {
	BaseURL    string
	Username   string
	Password   string
	ClientName string

	mu     sync.Mutex
	client *subsonic.Client
}

// Tracks retrieves starred songs from the Subsonic server
func (s *Subsonic) Tracks() ([]model.Track, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	slog.Debug("Retrieving starred tracks", "source", "subsonic")

	starred, err := client.GetStarred2(nil)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(starred.Song))
	for _, song := range starred.Song {
		tracks = append(tracks, model.Track{
			Title:  song.Title,
			Artist: song.Artist,
			Album:  song.Album,
		})
	}

	slog.Debug("Retrieved starred tracks", "count", len(tracks), "source", "subsonic")
	return tracks, nil
}

// getClient lazily connects to the Subsonic server
func (s *Subsonic) getClient() (*subsonic.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	client := &subsonic.Client{
		Client:     http.DefaultClient,
		BaseUrl:    s.BaseURL,
		User:       s.Username,
		ClientName: s.ClientName,
	}

	if s.Password != "" {
		if err := client.Authenticate(s.Password); err != nil {
			return nil, err
		}
	}

	s.client = client
	return s.client, nil
}

var _ model.Source = &Subsonic{}
