package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/csmith/tagview/model"
	"github.com/google/go-querystring/query"
)

// DefaultBaseURL is the root of the Last.fm web service
const DefaultBaseURL = "http://ws.audioscrobbler.com/2.0/"

// ErrTransport is returned when no successful response could be obtained
var ErrTransport = errors.New("transport failure")

// Client looks up track tags on Last.fm using a static API key
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type topTagsParams struct {
	Method      string `url:"method"`
	Artist      string `url:"artist"`
	Track       string `url:"track"`
	AutoCorrect int    `url:"autocorrect"`
	Format      string `url:"format"`
	APIKey      string `url:"api_key"`
}

type errorResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Query builds the query parameters for a track.gettoptags call
func (c *Client) Query(req model.LookupRequest) url.Values {
	// query.Values only fails for non-struct arguments
	values, _ := query.Values(topTagsParams{
		Method:      "track.gettoptags",
		Artist:      req.Artist,
		Track:       req.Title,
		AutoCorrect: 1,
		Format:      "json",
		APIKey:      c.APIKey,
	})
	return values
}

// URL returns the full request URL for a lookup
func (c *Client) URL(req model.LookupRequest) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "?" + c.Query(req).Encode()
}

// TopTags fetches the raw top tags payload for a track. Any failure to get
// a successful response is wrapped in ErrTransport.
func (c *Client) TopTags(ctx context.Context, req model.LookupRequest) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	slog.Debug("Requesting top tags", "artist", req.Artist, "title", req.Title)

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: %s - last.fm says '%s'", ErrTransport, resp.Status, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrTransport, resp.Status)
	}

	slog.Debug("Received top tags", "artist", req.Artist, "title", req.Title, "bytes", len(body))
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
