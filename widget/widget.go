// Package widget implements the tag lookup form: two text fields, a loading
// indicator and a newest-first list of result cards, driven by bubbletea.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/csmith/tagview/lastfm"
	"github.com/csmith/tagview/matcher"
	"github.com/csmith/tagview/model"
)

// State is the widget's position in the Idle/Loading cycle
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	fieldArtist = iota
	fieldTitle
)

// Fetcher retrieves the raw top tags payload for a track
type Fetcher interface {
	TopTags(ctx context.Context, req model.LookupRequest) ([]byte, error)
}

// Config holds the widget's collaborators
type Config struct {
	Fetcher Fetcher
	// Timeout bounds each lookup. Zero means no limit beyond the fetcher's own.
	Timeout time.Duration
	// Source is optional; without it importing is disabled.
	Source      model.Source
	ImportLimit int
}

// lookupMsg is the single continuation for a lookup, carrying either the
// payload or the transport error.
type lookupMsg struct {
	request  model.LookupRequest
	fromForm bool
	payload  []byte
	err      error
}

type importMsg struct {
	tracks []model.Track
	err    error
}

// notice is a queued blocking alert. Consecutive failures of imported
// lookups with the same kind collapse into a single notice.
type notice struct {
	kind    string
	text    string
	grouped bool
	repeats int
}

func (n notice) String() string {
	if n.repeats > 0 {
		return fmt.Sprintf("%s (and %d similar)", n.text, n.repeats)
	}
	return n.text
}

// Widget is the bubbletea model for the lookup form
type Widget struct {
	fetcher     Fetcher
	timeout     time.Duration
	source      model.Source
	importLimit int

	state     State
	inFlight  int
	importing bool

	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	cards   []Card
	alerts  []notice

	keys  keyMap
	help  help.Model
	width int
}

// New creates a widget with the artist field focused
func New(cfg Config) *Widget {
	artist := textinput.New()
	artist.Prompt = "Artist: "
	artist.Placeholder = "Radiohead"
	artist.Focus()

	title := textinput.New()
	title.Prompt = "Title:  "
	title.Placeholder = "Paranoid Android"

	return &Widget{
		fetcher:     cfg.Fetcher,
		timeout:     cfg.Timeout,
		source:      cfg.Source,
		importLimit: cfg.ImportLimit,
		inputs:      []textinput.Model{artist, title},
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))),
		),
		keys: newKeyMap(cfg.Source != nil),
		help: help.New(),
	}
}

// State returns whether a lookup is outstanding
func (w *Widget) State() State {
	return w.state
}

// Cards returns the rendered results, newest first
func (w *Widget) Cards() []Card {
	return w.cards
}

func (w *Widget) Init() tea.Cmd {
	return textinput.Blink
}

func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.help.Width = msg.Width
		return w, nil

	case lookupMsg:
		return w, w.handleLookup(msg)

	case importMsg:
		return w, w.handleImport(msg)

	case spinner.TickMsg:
		// Dropping the tick once idle stops the animation
		if w.state != Loading {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	return w, w.updateFocused(msg)
}

func (w *Widget) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(w.alerts) > 0 {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return w, tea.Quit
		case key.Matches(msg, w.keys.Dismiss):
			w.alerts = w.alerts[1:]
		}
		return w, nil
	}

	switch {
	case key.Matches(msg, w.keys.Quit):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Submit):
		return w, w.Submit()
	case key.Matches(msg, w.keys.Next):
		return w, w.moveFocus(1)
	case key.Matches(msg, w.keys.Prev):
		return w, w.moveFocus(-1)
	case key.Matches(msg, w.keys.Import):
		return w, w.Import()
	}

	return w, w.updateFocused(msg)
}

func (w *Widget) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
	return cmd
}

func (w *Widget) moveFocus(delta int) tea.Cmd {
	w.inputs[w.focus].Blur()
	w.focus = (w.focus + delta + len(w.inputs)) % len(w.inputs)
	return w.inputs[w.focus].Focus()
}

// Submit starts a lookup for the current field values. The returned command
// performs the request; the widget is Loading until its result arrives.
func (w *Widget) Submit() tea.Cmd {
	return w.lookup(model.LookupRequest{
		Artist: w.inputs[fieldArtist].Value(),
		Title:  w.inputs[fieldTitle].Value(),
	}, true)
}

func (w *Widget) lookup(req model.LookupRequest, fromForm bool) tea.Cmd {
	slog.Debug("Submitting lookup", "artist", req.Artist, "title", req.Title, "in_flight", w.inFlight)

	w.inFlight++

	var tick tea.Cmd
	if w.state == Idle {
		w.state = Loading
		tick = w.spinner.Tick
	}

	fetcher, timeout := w.fetcher, w.timeout
	fetch := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		payload, err := fetcher.TopTags(ctx, req)
		return lookupMsg{request: req, fromForm: fromForm, payload: payload, err: err}
	}

	return tea.Batch(tick, fetch)
}

func (w *Widget) handleLookup(msg lookupMsg) tea.Cmd {
	w.inFlight--
	if w.inFlight <= 0 {
		w.inFlight = 0
		w.state = Idle
	}

	if msg.err != nil {
		slog.Warn("Lookup failed", "artist", msg.request.Artist, "title", msg.request.Title, "error", msg.err)
		w.alert(msg.err, !msg.fromForm)
		return nil
	}

	card, err := RenderResult(msg.payload)
	if err != nil {
		slog.Warn("Unable to render lookup result", "artist", msg.request.Artist, "title", msg.request.Title, "error", err)
		w.alert(err, !msg.fromForm)
		return nil
	}

	card.Requested = msg.request
	card.Corrected = matcher.Corrected(msg.request, model.TagResult{Artist: card.Artist, Title: card.Title})

	if msg.fromForm {
		for i := range w.inputs {
			w.inputs[i].Reset()
		}
	}

	w.cards = append([]Card{card}, w.cards...)
	slog.Debug("Rendered lookup result", "artist", card.Artist, "title", card.Title, "tags", len(card.Tags), "corrected", card.Corrected)
	return nil
}

// Import lists the configured source's tracks and looks up every one not
// already on screen, up to the import limit.
func (w *Widget) Import() tea.Cmd {
	if w.source == nil {
		w.alerts = append(w.alerts, notice{kind: "ImportFailure", text: "ImportFailure: no import source configured"})
		return nil
	}

	if w.importing {
		return nil
	}
	w.importing = true

	src := w.source
	return func() tea.Msg {
		tracks, err := src.Tracks()
		return importMsg{tracks: tracks, err: err}
	}
}

func (w *Widget) handleImport(msg importMsg) tea.Cmd {
	w.importing = false

	if msg.err != nil {
		slog.Warn("Import failed", "error", msg.err)
		w.alerts = append(w.alerts, notice{kind: "ImportFailure", text: fmt.Sprintf("ImportFailure: %v", msg.err)})
		return nil
	}

	seen := make([]model.Track, 0, len(w.cards))
	for _, card := range w.cards {
		seen = append(seen, model.Track{Artist: card.Artist, Title: card.Title})
	}

	// Sources can list the same track more than once
	var queued []model.Track
	for _, track := range matcher.Segment(msg.tracks, seen).Missing {
		if w.importLimit > 0 && len(queued) >= w.importLimit {
			break
		}
		if len(matcher.Segment([]model.Track{track}, queued).Matched) > 0 {
			continue
		}
		queued = append(queued, track)
	}

	slog.Info("Importing tracks", "listed", len(msg.tracks), "queued", len(queued))

	cmds := make([]tea.Cmd, 0, len(queued))
	for _, track := range queued {
		cmds = append(cmds, w.lookup(track.Request(), false))
	}
	return tea.Batch(cmds...)
}

// alert queues a blocking notification naming the kind of failure. Grouped
// failures fold into the previous notice when it is of the same kind.
func (w *Widget) alert(err error, grouped bool) {
	kind := "TransportFailure"
	if errors.Is(err, lastfm.ErrMalformedResponse) {
		kind = "MalformedResponse"
	}

	if grouped && len(w.alerts) > 0 {
		last := &w.alerts[len(w.alerts)-1]
		if last.grouped && last.kind == kind {
			last.repeats++
			return
		}
	}

	w.alerts = append(w.alerts, notice{kind: kind, text: fmt.Sprintf("%s: %v", kind, err), grouped: grouped})
}
