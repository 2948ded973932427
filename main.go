package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"
	"github.com/csmith/tagview/lastfm"
	"github.com/csmith/tagview/model"
	"github.com/csmith/tagview/sources"
	"github.com/csmith/tagview/widget"
)

// defaultAPIKey can be baked in at build time with -ldflags "-X main.defaultAPIKey=..."
var defaultAPIKey string

var (
	lastfmKey = flag.String("lastfm-key", defaultAPIKey, "Last.fm API key used for tag lookups")
	lastfmURL = flag.String("lastfm-url", lastfm.DefaultBaseURL, "Last.fm API root")
	timeout   = flag.Duration("timeout", 10*time.Second, "Maximum time to wait for a lookup")
	logFile   = flag.String("log-file", "", "File to write logs to; logs are discarded if unset as the UI owns the terminal")

	importSource = flag.String("import-source", "", "Where to import tracks from (lastfm, listenbrainz or subsonic)")
	importLimit  = flag.Int("import-limit", 20, "Maximum number of lookups started by one import")

	lastfmSecret   = flag.String("lastfm-secret", "", "Last.fm API secret, for importing loved tracks")
	lastfmUsername = flag.String("lastfm-username", "", "Last.fm username, for importing loved tracks")
	lastfmPassword = flag.String("lastfm-password", "", "Last.fm password, for importing loved tracks")

	subsonicServer   = flag.String("subsonic-server", "", "Subsonic server base address, for importing starred tracks")
	subsonicUsername = flag.String("subsonic-username", "", "Subsonic username")
	subsonicPassword = flag.String("subsonic-password", "", "Subsonic password")

	listenbrainzToken    = flag.String("listenbrainz-token", "", "ListenBrainz token, for importing loved tracks")
	listenbrainzUsername = flag.String("listenbrainz-username", "", "ListenBrainz username")

	availableSources map[string]model.Source
)

func main() {
	envflag.Parse()

	logger, closer, err := newLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if *lastfmKey == "" {
		fatal("A Last.fm API key must be specified", nil)
	}

	initialiseSources()

	src, err := selectedSource()
	if err != nil {
		fatal("Failed to get import source", err)
	}

	w := widget.New(widget.Config{
		Fetcher: &lastfm.Client{
			APIKey:  *lastfmKey,
			BaseURL: *lastfmURL,
		},
		Timeout:     *timeout,
		Source:      src,
		ImportLimit: *importLimit,
	})

	slog.Info("Starting tag lookup", "api", *lastfmURL, "import_source", *importSource)

	if _, err := tea.NewProgram(w, tea.WithAltScreen()).Run(); err != nil {
		fatal("Failed to run UI", err)
	}
}

// newLogger builds the slog logger. The UI draws on stdout, where slogflags
// writes by default, so logs go to the given file or nowhere.
func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slogflags.Logger(slogflags.WithWriter(io.Discard)), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slogflags.Logger(slogflags.WithWriter(f)), f, nil
}

// fatal reports a startup failure on stderr, as well as the log, and exits
func fatal(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	} else {
		slog.Error(msg)
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}

func initialiseSources() {
	availableSources = make(map[string]model.Source)

	if *subsonicServer != "" {
		availableSources["subsonic"] = &sources.Subsonic{
			BaseURL:    *subsonicServer,
			Username:   *subsonicUsername,
			Password:   *subsonicPassword,
			ClientName: "tagview",
		}
	}

	if *listenbrainzToken != "" {
		availableSources["listenbrainz"] = &sources.ListenBrainz{
			Token:    *listenbrainzToken,
			Username: *listenbrainzUsername,
		}
	}

	if *lastfmSecret != "" && *lastfmUsername != "" {
		availableSources["lastfm"] = &sources.Lastfm{
			APIKey:   *lastfmKey,
			Secret:   *lastfmSecret,
			Username: *lastfmUsername,
			Password: *lastfmPassword,
		}
	}
}

// selectedSource returns the configured import source, or nil if importing
// wasn't asked for
func selectedSource() (model.Source, error) {
	if *importSource == "" {
		return nil, nil
	}

	src, ok := availableSources[*importSource]
	if !ok {
		return nil, fmt.Errorf("import source not configured or invalid: %s", *importSource)
	}

	return src, nil
}
