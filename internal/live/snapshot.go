package live

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
)

// Team identifiers as reported by the live data API
const (
	TeamOrder = "ORDER"
	TeamChaos = "CHAOS"
)

// Snapshot is the normalized scoreboard state broadcast to UI clients.
// Field names match the relay wire protocol.
type Snapshot struct {
	GameTime     float64           `json:"gameTime"`
	GameMode     string            `json:"gameMode"`
	GameResult   string            `json:"gameResult,omitempty"`
	ActivePlayer ActivePlayerStats `json:"activePlayer"`
	Players      []PlayerRow       `json:"players"`
	KillFeed     []KillEvent       `json:"killFeed"`
	LiveEvents   []ObjectiveEvent  `json:"liveEvents"`
}

// ActivePlayerStats describes the player running this client
type ActivePlayerStats struct {
	DisplayName string  `json:"displayName"`
	Level       int     `json:"level"`
	CurrentGold float64 `json:"currentGold"`
}

// PlayerRow is one scoreboard row
type PlayerRow struct {
	DisplayName   string     `json:"displayName"`
	ChampionName  string     `json:"championName"`
	Team          string     `json:"team"`
	Position      string     `json:"position"`
	Level         int        `json:"level"`
	Kills         int        `json:"kills"`
	Deaths        int        `json:"deaths"`
	Assists       int        `json:"assists"`
	CreepScore    int        `json:"creepScore"`
	WardScore     float64    `json:"wardScore"`
	Items         []ItemSlot `json:"items"`
	SkinID        int        `json:"skinId"`
	IsLocalPlayer bool       `json:"isLocalPlayer"`
	IsDead        bool       `json:"isDead"`
	RespawnTimer  float64    `json:"respawnTimer"`
}

// ItemSlot is one non-empty inventory slot
type ItemSlot struct {
	ItemID      int    `json:"itemId"`
	Slot        int    `json:"slot"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
}

// KillEvent is one normalized kill-feed entry. Non-player participants carry
// an npc: sentinel key and a resolved friendly label, never an empty string.
type KillEvent struct {
	TimeSeconds      float64  `json:"timeSeconds"`
	KillerDisplay    string   `json:"killerDisplay"`
	VictimDisplay    string   `json:"victimDisplay"`
	AssisterDisplays []string `json:"assisterDisplays"`
	KillerKey        string   `json:"killerChampionKey"`
	VictimKey        string   `json:"victimChampionKey"`
}

// ObjectiveEvent is a raw game event passed through for the UI timeline
type ObjectiveEvent struct {
	EventID   int     `json:"eventId"`
	EventName string  `json:"eventName"`
	EventTime float64 `json:"eventTime"`
}

// validPositions as reported by the live data API
var validPositions = map[string]string{
	"TOP":     "Top",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "Middle",
	"BOTTOM":  "Bottom",
	"UTILITY": "Utility",
}

// buildSnapshot normalizes one raw allgamedata document
func buildSnapshot(raw *rawAllGameData) *Snapshot {
	snap := &Snapshot{
		GameTime: raw.GameData.GameTime,
		GameMode: raw.GameData.GameMode,
		ActivePlayer: ActivePlayerStats{
			DisplayName: preferredName(raw.ActivePlayer.RiotID, raw.ActivePlayer.SummonerName),
			Level:       raw.ActivePlayer.Level,
			CurrentGold: raw.ActivePlayer.CurrentGold,
		},
		Players:    make([]PlayerRow, 0, len(raw.AllPlayers)),
		KillFeed:   []KillEvent{},
		LiveEvents: []ObjectiveEvent{},
	}

	localName := snap.ActivePlayer.DisplayName

	// map from display name to champion key, for kill-feed resolution
	champByName := make(map[string]string, len(raw.AllPlayers))

	for _, p := range raw.AllPlayers {
		name := preferredName(p.RiotID, p.SummonerName)
		champKey := championKey(p.RawChampionName, p.ChampionName)
		champByName[name] = champKey
		if p.SummonerName != "" {
			champByName[p.SummonerName] = champKey
		}

		row := PlayerRow{
			DisplayName:   name,
			ChampionName:  p.ChampionName,
			Team:          normalizeTeam(p.Team),
			Position:      normalizePosition(p.Position),
			Level:         p.Level,
			Kills:         p.Scores.Kills,
			Deaths:        p.Scores.Deaths,
			Assists:       p.Scores.Assists,
			CreepScore:    p.Scores.CreepScore,
			WardScore:     p.Scores.WardScore,
			Items:         normalizeItems(p.Items),
			SkinID:        p.SkinID,
			IsLocalPlayer: name == localName && localName != "",
			IsDead:        p.IsDead,
			RespawnTimer:  p.RespawnTimer,
		}
		snap.Players = append(snap.Players, row)
	}

	for _, ev := range raw.Events.Events {
		switch ev.EventName {
		case "ChampionKill":
			killerKey, killerLabel := resolveParticipant(ev.KillerName, champByName)
			victimKey, victimLabel := resolveParticipant(ev.VictimName, champByName)
			assisters := ev.Assisters
			if assisters == nil {
				assisters = []string{}
			}
			snap.KillFeed = append(snap.KillFeed, KillEvent{
				TimeSeconds:      ev.EventTime,
				KillerDisplay:    killerLabel,
				VictimDisplay:    victimLabel,
				AssisterDisplays: assisters,
				KillerKey:        killerKey,
				VictimKey:        victimKey,
			})
		default:
			snap.LiveEvents = append(snap.LiveEvents, ObjectiveEvent{
				EventID:   ev.EventID,
				EventName: ev.EventName,
				EventTime: ev.EventTime,
			})
		}
	}

	return snap
}

// preferredName prefers the persistent cross-game riot id over the legacy
// session-only summoner name
func preferredName(riotID, summonerName string) string {
	if riotID != "" {
		return riotID
	}
	return summonerName
}

// championKey derives a canonical champion key from the raw internal name
// (e.g. "game_character_displayname_Ahri") or falls back to the display name
func championKey(rawName, displayName string) string {
	if idx := strings.LastIndex(rawName, "_"); idx >= 0 && idx < len(rawName)-1 {
		return rawName[idx+1:]
	}
	return displayName
}

func normalizeTeam(team string) string {
	switch strings.ToUpper(team) {
	case TeamOrder:
		return "Order"
	case TeamChaos:
		return "Chaos"
	default:
		return team
	}
}

func normalizePosition(position string) string {
	if p, ok := validPositions[strings.ToUpper(position)]; ok {
		return p
	}
	return "Unknown"
}

// normalizeItems drops empty slots (item id 0) and caps at 7 slots
func normalizeItems(items []rawItem) []ItemSlot {
	out := make([]ItemSlot, 0, len(items))
	for _, it := range items {
		if it.ItemID == 0 {
			continue
		}
		out = append(out, ItemSlot{
			ItemID:      it.ItemID,
			Slot:        it.Slot,
			DisplayName: it.DisplayName,
			Count:       it.Count,
		})
		if len(out) == 7 {
			break
		}
	}
	return out
}

// fingerprint computes a compact digest of the fields that matter for the
// UI: whole-second game time, active player level and gold, kill-feed
// length, live-event count, and per-player stats and items. Snapshots with
// equal fingerprints are never re-broadcast.
func fingerprint(snap *Snapshot) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	writeString := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	writeInt(int64(snap.GameTime))
	writeInt(int64(snap.ActivePlayer.Level))
	writeInt(int64(snap.ActivePlayer.CurrentGold))
	writeInt(int64(len(snap.KillFeed)))
	writeInt(int64(len(snap.LiveEvents)))

	for _, p := range snap.Players {
		writeString(p.ChampionName)
		writeInt(int64(p.Level))
		writeInt(int64(p.Kills))
		writeInt(int64(p.Deaths))
		writeInt(int64(p.Assists))
		writeInt(int64(p.CreepScore))
		writeInt(int64(p.SkinID))
		for _, it := range p.Items {
			writeInt(int64(it.ItemID))
		}
		writeInt(-1) // item list terminator
	}

	return h.Sum64()
}
