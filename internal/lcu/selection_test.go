package lcu

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skinbridge/internal/catalog"
)

// testCatalog serves a small fixed champion list from a local stub feed
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["15.1.1","14.24.1"]`)
	})
	mux.HandleFunc("/cdn/15.1.1/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{
			"Ahri":{"id":"Ahri","key":"103","name":"Ahri"},
			"LeeSin":{"id":"LeeSin","key":"64","name":"Lee Sin"},
			"MonkeyKing":{"id":"MonkeyKing","key":"62","name":"Wukong"}
		}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cat := catalog.New(zap.NewNop(), catalog.WithBaseURL(srv.URL))
	require.NoError(t, cat.Load())
	return cat
}

func TestResolveSelection_LockedChampionWithSkin(t *testing.T) {
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 2,
		MyTeam: []ChampSelectPlayer{
			{CellID: 0, ChampionID: 64},
			{CellID: 2, ChampionID: 103, SelectedSkinID: 103008},
		},
	}

	update, key, ok := resolveSelection(session, cat)
	require.True(t, ok)
	assert.Equal(t, "Ahri", update.ChampionID)
	assert.Equal(t, "Ahri", update.ChampionName)
	assert.Equal(t, 103, update.ChampionKey)
	assert.Equal(t, 8, update.SkinNum)
	assert.Equal(t, "103008", update.SkinID)
	assert.Equal(t, selectionKey{championID: "Ahri", skinNum: 8}, key)
}

func TestResolveSelection_HoverBeatsNothing(t *testing.T) {
	// locked champion id is 0 but a pick action exists for the local slot:
	// hovering synthesizes a base-skin selection
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 0,
		MyTeam:            []ChampSelectPlayer{{CellID: 0, ChampionID: 0}},
		Actions: [][]ChampSelectAction{
			{{ActorCellID: 0, ChampionID: 64, Type: "pick", Completed: false}},
		},
	}

	update, _, ok := resolveSelection(session, cat)
	require.True(t, ok)
	assert.Equal(t, "LeeSin", update.ChampionID)
	assert.Equal(t, 0, update.SkinNum)
	assert.Equal(t, "64000", update.SkinID)
}

func TestResolveSelection_IgnoresBanAndOtherSlots(t *testing.T) {
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 0,
		MyTeam:            []ChampSelectPlayer{{CellID: 0, ChampionID: 0}},
		Actions: [][]ChampSelectAction{
			{{ActorCellID: 0, ChampionID: 62, Type: "ban", Completed: false}},
			{{ActorCellID: 3, ChampionID: 64, Type: "pick", Completed: false}},
		},
	}

	_, _, ok := resolveSelection(session, cat)
	assert.False(t, ok)
}

func TestResolveSelection_PickIntentFallback(t *testing.T) {
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 1,
		MyTeam:            []ChampSelectPlayer{{CellID: 1, ChampionID: 0, ChampionPickIntent: 62}},
	}

	update, _, ok := resolveSelection(session, cat)
	require.True(t, ok)
	assert.Equal(t, "MonkeyKing", update.ChampionID)
	assert.Equal(t, "Wukong", update.ChampionName)
	assert.Equal(t, 0, update.SkinNum)
}

func TestResolveSelection_NoChampionNoAction(t *testing.T) {
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 1,
		MyTeam:            []ChampSelectPlayer{{CellID: 1}},
	}

	_, _, ok := resolveSelection(session, cat)
	assert.False(t, ok)
}

func TestResolveSelection_UnknownChampionKey(t *testing.T) {
	cat := testCatalog(t)
	session := &ChampSelectSession{
		LocalPlayerCellID: 1,
		MyTeam:            []ChampSelectPlayer{{CellID: 1, ChampionID: 99999}},
	}

	_, _, ok := resolveSelection(session, cat)
	assert.False(t, ok)
}
