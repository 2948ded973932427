package model

// Source represents a music service that can list tracks to look up
type Source interface {
	Tracks() ([]Track, error)
}
