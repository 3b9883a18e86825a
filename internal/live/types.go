package live

import "encoding/json"

// Raw payload shapes for the live data API's allgamedata document. Unknown,
// missing, or mistyped fields decode to zero values here; the rest of the
// pipeline only sees the normalized types in snapshot.go.

type rawAllGameData struct {
	ActivePlayer rawActivePlayer `json:"activePlayer"`
	AllPlayers   []rawPlayer     `json:"allPlayers"`
	Events       rawEvents       `json:"events"`
	GameData     rawGameData     `json:"gameData"`
}

type rawActivePlayer struct {
	SummonerName  string          `json:"summonerName"`
	RiotID        string          `json:"riotId"`
	Level         int             `json:"level"`
	CurrentGold   float64         `json:"currentGold"`
	ChampionStats json.RawMessage `json:"championStats"`
}

type rawPlayer struct {
	ChampionName    string    `json:"championName"`
	RawChampionName string    `json:"rawChampionName"`
	IsBot           bool      `json:"isBot"`
	IsDead          bool      `json:"isDead"`
	Items           []rawItem `json:"items"`
	Level           int       `json:"level"`
	Position        string    `json:"position"`
	RespawnTimer    float64   `json:"respawnTimer"`
	RiotID          string    `json:"riotId"`
	RiotIDGameName  string    `json:"riotIdGameName"`
	Scores          rawScores `json:"scores"`
	SkinID          int       `json:"skinID"`
	SummonerName    string    `json:"summonerName"`
	Team            string    `json:"team"`
}

type rawItem struct {
	ItemID      int    `json:"itemID"`
	Slot        int    `json:"slot"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
	Price       int    `json:"price"`
}

type rawScores struct {
	Assists    int     `json:"assists"`
	CreepScore int     `json:"creepScore"`
	Deaths     int     `json:"deaths"`
	Kills      int     `json:"kills"`
	WardScore  float64 `json:"wardScore"`
}

type rawEvents struct {
	Events []rawEvent `json:"Events"`
}

type rawEvent struct {
	EventID    int      `json:"EventID"`
	EventName  string   `json:"EventName"`
	EventTime  float64  `json:"EventTime"`
	KillerName string   `json:"KillerName"`
	VictimName string   `json:"VictimName"`
	Assisters  []string `json:"Assisters"`
	Result     string   `json:"Result"`
}

type rawGameData struct {
	GameMode string  `json:"gameMode"`
	GameTime float64 `json:"gameTime"`
	MapName  string  `json:"mapName"`
}
