package lcu

import (
	"strconv"

	"skinbridge/internal/catalog"
)

// selectionKey is the dedup key for selection updates
type selectionKey struct {
	championID string
	skinNum    int
}

// resolveSelection determines the local player's current champion and skin
// from a champ-select session payload. Priority: locked-in champion, then an
// in-progress pick action for the local slot (hovering, base skin), then the
// pick-intent hint (base skin). Returns ok=false when no champion can be
// determined or the catalog cannot resolve it; callers take no action then.
func resolveSelection(session *ChampSelectSession, cat *catalog.Catalog) (SelectionUpdate, selectionKey, bool) {
	var local *ChampSelectPlayer
	for i := range session.MyTeam {
		if session.MyTeam[i].CellID == session.LocalPlayerCellID {
			local = &session.MyTeam[i]
			break
		}
	}
	if local == nil {
		return SelectionUpdate{}, selectionKey{}, false
	}

	championKey := 0
	skinNum := 0

	switch {
	case local.ChampionID > 0:
		championKey = local.ChampionID
		if local.SelectedSkinID > 0 {
			skinNum = local.SelectedSkinID % 1000
		}
	default:
		if hovered := hoveredChampion(session); hovered > 0 {
			championKey = hovered
		} else if local.ChampionPickIntent > 0 {
			championKey = local.ChampionPickIntent
		}
	}

	if championKey == 0 {
		return SelectionUpdate{}, selectionKey{}, false
	}

	champ, ok := cat.Resolve(championKey)
	if !ok {
		return SelectionUpdate{}, selectionKey{}, false
	}

	update := SelectionUpdate{
		Active:       true,
		ChampionID:   champ.ID,
		ChampionName: champ.Name,
		ChampionKey:  champ.Key,
		SkinNum:      skinNum,
		SkinID:       strconv.Itoa(champ.Key*1000 + skinNum),
	}
	return update, selectionKey{championID: champ.ID, skinNum: skinNum}, true
}

// hoveredChampion scans the action grid for an uncompleted pick action
// attributed to the local slot with a champion already selected
func hoveredChampion(session *ChampSelectSession) int {
	for _, group := range session.Actions {
		for _, action := range group {
			if action.ActorCellID != session.LocalPlayerCellID {
				continue
			}
			if action.Type != "pick" || action.Completed {
				continue
			}
			if action.ChampionID > 0 {
				return action.ChampionID
			}
		}
	}
	return 0
}
