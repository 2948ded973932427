package model

// LookupRequest is the artist/title pair submitted from the form
type LookupRequest struct {
	Artist string
	Title  string
}

// TagResult holds the top tags Last.fm returned for a track
type TagResult struct {
	Artist string
	Title  string
	Tags   []string
}

// Track represents a track listed by an import source
type Track struct {
	Artist string
	Title  string
	Album  string
}

// Request returns the lookup request for the track
func (t Track) Request() LookupRequest {
	return LookupRequest{Artist: t.Artist, Title: t.Title}
}
