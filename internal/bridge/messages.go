package bridge

import "skinbridge/internal/live"

// Message type tags of the relay wire protocol (text frames, JSON)
const (
	TypeConnected         = "connected"
	TypeChampSelectUpdate = "champSelectUpdate"
	TypeChampSelectEnd    = "champSelectEnd"
	TypeLiveGameUpdate    = "liveGameUpdate"
	TypeLiveGameEnd       = "liveGameEnd"
	TypeSetSkin           = "setSkin"
)

// ConnectedMessage is the one-time handshake sent on connect
type ConnectedMessage struct {
	Type    string `json:"type"`
	Version string `json:"version"`
}

// ChampSelectUpdateMessage announces a selection change
type ChampSelectUpdateMessage struct {
	Type         string `json:"type"`
	ChampionID   string `json:"championId"`
	ChampionName string `json:"championName"`
	ChampionKey  string `json:"championKey"`
	SkinNum      int    `json:"skinNum"`
	SkinID       string `json:"skinId"`
}

// ChampSelectEndMessage announces that champion select ended
type ChampSelectEndMessage struct {
	Type string `json:"type"`
}

// LiveGameUpdateMessage flattens a scoreboard snapshot onto the wire with
// the type tag alongside the snapshot's own fields
type LiveGameUpdateMessage struct {
	Type string `json:"type"`
	live.Snapshot
}

// LiveGameEndMessage announces match end
type LiveGameEndMessage struct {
	Type       string `json:"type"`
	GameResult string `json:"gameResult,omitempty"`
}

// ClientMessage is the only recognized inbound message shape
type ClientMessage struct {
	Type   string `json:"type"`
	SkinID int    `json:"skinId"`
}
