package live

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"skinbridge/internal/status"
)

// State is the poller's match-tracking state
type State int

const (
	StateIdle State = iota
	StateInMatch
)

func (s State) String() string {
	if s == StateInMatch {
		return "in_match"
	}
	return "idle"
}

// Update is one poller emission: either a fresh scoreboard snapshot or a
// match-end signal carrying the captured result, if any.
type Update struct {
	Snapshot *Snapshot
	Ended    bool
	Result   string
}

// Poller polls the local live data endpoint on a fixed interval while a
// match is running. State transitions are driven purely by poll outcomes:
// the endpoint answering means a match is in progress, it disappearing means
// the match ended. A single failed poll mid-match therefore signals
// match-end; the endpoint is documented to vanish abruptly when the game
// closes.
type Poller struct {
	client   *http.Client
	baseURL  string
	interval time.Duration
	tracker  *status.Tracker
	logger   *zap.Logger

	state           State
	lastFingerprint uint64
	lastResult      string
	updates         chan Update
}

// NewPoller creates a poller against the given live data base URL. The
// endpoint serves a self-signed certificate; trust is scoped to loopback.
func NewPoller(baseURL string, interval, timeout time.Duration, tracker *status.Tracker, logger *zap.Logger) *Poller {
	return &Poller{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		baseURL:  baseURL,
		interval: interval,
		tracker:  tracker,
		logger:   logger,
		state:    StateIdle,
		updates:  make(chan Update, 16),
	}
}

// Updates returns the poller's emission stream
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Run ticks until ctx is cancelled. Ticks never overlap: each runs to
// completion (bounded by the HTTP timeout) before the next fires, and
// missed ticks are skipped rather than queued.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick performs one poll and applies the state transition for its outcome
func (p *Poller) tick() {
	raw, err := p.fetch()
	if err != nil {
		p.handleFailure()
		return
	}
	p.handleSuccess(raw)
}

// fetch requests the full match state document. Any transport error,
// non-success status, or undecodable body counts as endpoint-unavailable.
func (p *Poller) fetch() (*rawAllGameData, error) {
	resp, err := p.client.Get(p.baseURL + "/liveclientdata/allgamedata")
	if err != nil {
		return nil, fmt.Errorf("live data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var raw rawAllGameData
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse live data: %w", err)
	}
	return &raw, nil
}

func (p *Poller) handleFailure() {
	if p.state != StateInMatch {
		return
	}

	result := p.lastResult
	p.state = StateIdle
	p.lastFingerprint = 0
	p.lastResult = ""
	p.tracker.SetMatch("")
	p.logger.Info("match ended", zap.String("result", result))
	p.updates <- Update{Ended: true, Result: result}
}

func (p *Poller) handleSuccess(raw *rawAllGameData) {
	if p.state == StateIdle {
		p.state = StateInMatch
		p.lastFingerprint = 0
		p.lastResult = ""
		p.tracker.SetMatch(status.InGame)
		p.logger.Info("match detected", zap.String("mode", raw.GameData.GameMode))
	}

	// The result field only appears in the final seconds before the
	// endpoint stops responding; capture it on the way down.
	for _, ev := range raw.Events.Events {
		if ev.EventName == "GameEnd" && ev.Result != "" {
			p.lastResult = ev.Result
		}
	}

	snap := buildSnapshot(raw)
	snap.GameResult = p.lastResult

	fp := fingerprint(snap)
	if fp == p.lastFingerprint {
		return
	}
	p.lastFingerprint = fp
	p.updates <- Update{Snapshot: snap}
}
