package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Defaults(t *testing.T) {
	tr := NewTracker(nil)
	assert.Equal(t, Waiting, tr.Current())
}

func TestTracker_MatchDoesNotClobberChampSelect(t *testing.T) {
	tr := NewTracker(nil)

	tr.SetSession(ChampSelect)
	tr.SetMatch(InGame)
	assert.Equal(t, ChampSelect, tr.Current())

	// once champ select ends, the match status takes over
	tr.SetSession(Connected)
	assert.Equal(t, InGame, tr.Current())

	tr.SetMatch("")
	assert.Equal(t, Connected, tr.Current())
}

func TestTracker_OnChangeFiresOnlyOnChange(t *testing.T) {
	var changes []string
	tr := NewTracker(func(s string) { changes = append(changes, s) })

	tr.SetSession(Connecting)
	tr.SetSession(Connecting)
	tr.SetSession(Connected)

	assert.Equal(t, []string{Connecting, Connected}, changes)
}

func TestTracker_SessionStatesOrder(t *testing.T) {
	cases := []struct {
		name    string
		session string
		match   string
		want    string
	}{
		{"waiting only", Waiting, "", Waiting},
		{"in game, no session", "", InGame, InGame},
		{"reconnecting session, in game", Reconnecting, InGame, InGame},
		{"champ select wins over in game", ChampSelect, InGame, ChampSelect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTracker(nil)
			tr.SetSession(tc.session)
			tr.SetMatch(tc.match)
			assert.Equal(t, tc.want, tr.Current())
		})
	}
}
