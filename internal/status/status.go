package status

import "sync"

// Well-known status strings shown to the user
const (
	Waiting      = "waiting for client"
	Connecting   = "connecting"
	Connected    = "connected"
	ChampSelect  = "in champion select"
	InGame       = "in game"
	Reconnecting = "disconnected - reconnecting"
)

// Tracker folds the session connector's and the match poller's states into a
// single coarse status string. The champion-select status takes precedence:
// poller updates never clobber it while it is current.
type Tracker struct {
	mu       sync.Mutex
	session  string
	match    string
	onChange func(string)
	last     string
}

// NewTracker creates a tracker. onChange (optional) fires whenever the
// effective status string changes.
func NewTracker(onChange func(string)) *Tracker {
	return &Tracker{onChange: onChange}
}

// SetSession records the session connector's status
func (t *Tracker) SetSession(s string) {
	t.apply(func() { t.session = s })
}

// SetMatch records the match poller's status. Pass an empty string when no
// match is in progress.
func (t *Tracker) SetMatch(s string) {
	t.apply(func() { t.match = s })
}

// Current returns the effective status string
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLocked()
}

func (t *Tracker) currentLocked() string {
	if t.session == ChampSelect {
		return t.session
	}
	if t.match != "" {
		return t.match
	}
	if t.session != "" {
		return t.session
	}
	return Waiting
}

// apply mutates the tracked state and fires onChange outside the lock if
// the effective status changed
func (t *Tracker) apply(mutate func()) {
	t.mu.Lock()
	mutate()
	current := t.currentLocked()
	changed := current != t.last
	t.last = current
	cb := t.onChange
	t.mu.Unlock()

	if changed && cb != nil {
		cb(current)
	}
}
