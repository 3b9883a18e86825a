package lcu

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skinbridge/internal/catalog"
	"skinbridge/internal/status"
)

// EventType represents client WebSocket opcodes
type EventType int

const (
	EventTypeSubscribe   EventType = 5
	EventTypeUnsubscribe EventType = 6
	EventTypeEvent       EventType = 8
)

const champSelectTopic = "OnJsonApiEvent_lol-champ-select_v1_session"

// State is the connector's lifecycle state
type State int

const (
	StateIdle State = iota
	StateDiscovering
	StateConnecting
	StateSubscribed
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// SelectionUpdate is emitted whenever the locally hovered or locked skin
// changes. Active=false means champion select ended.
type SelectionUpdate struct {
	Active       bool
	ChampionID   string // canonical id, e.g. "Ahri"
	ChampionName string
	ChampionKey  int
	SkinNum      int
	SkinID       string
}

// ChampSelectSession mirrors the champ-select session payload
type ChampSelectSession struct {
	LocalPlayerCellID int                   `json:"localPlayerCellId"`
	MyTeam            []ChampSelectPlayer   `json:"myTeam"`
	Actions           [][]ChampSelectAction `json:"actions"`
}

// ChampSelectPlayer is one roster slot of the local team
type ChampSelectPlayer struct {
	CellID             int `json:"cellId"`
	ChampionID         int `json:"championId"`
	ChampionPickIntent int `json:"championPickIntent"`
	SelectedSkinID     int `json:"selectedSkinId"`
}

// ChampSelectAction is one entry of the pick/ban action grid
type ChampSelectAction struct {
	ID           int    `json:"id"`
	ActorCellID  int    `json:"actorCellId"`
	ChampionID   int    `json:"championId"`
	Type         string `json:"type"` // "pick", "ban"
	Completed    bool   `json:"completed"`
	IsInProgress bool   `json:"isInProgress"`
}

// Connector owns the authenticated WebSocket connection to the local client
// API and turns champ-select session events into SelectionUpdates. It loops
// forever: discover, connect, subscribe, read until the connection drops,
// then start over. There is no retry budget; the client may simply not be
// running yet.
type Connector struct {
	catalog *catalog.Catalog
	tracker *status.Tracker
	logger  *zap.Logger

	retryInterval time.Duration
	reconnectWait time.Duration

	// injectable for tests
	discover func() (Credentials, error)

	state   State
	lastKey selectionKey
	updates chan SelectionUpdate
}

// NewConnector creates a connector. executable is the client process name
// to discover; retry/reconnect control the two wait intervals.
func NewConnector(executable string, retry, reconnect time.Duration, cat *catalog.Catalog, tracker *status.Tracker, logger *zap.Logger) *Connector {
	return &Connector{
		catalog:       cat,
		tracker:       tracker,
		logger:        logger,
		retryInterval: retry,
		reconnectWait: reconnect,
		discover:      func() (Credentials, error) { return Discover(executable) },
		state:         StateIdle,
		updates:       make(chan SelectionUpdate, 16),
	}
}

// Updates returns the selection update stream
func (c *Connector) Updates() <-chan SelectionUpdate {
	return c.updates
}

// Run drives the connector until ctx is cancelled
func (c *Connector) Run(ctx context.Context) {
	c.state = StateDiscovering
	for {
		if ctx.Err() != nil {
			return
		}

		switch c.state {
		case StateDiscovering:
			c.tracker.SetSession(status.Waiting)
			creds, err := c.discover()
			if err != nil {
				if !sleepCtx(ctx, c.retryInterval) {
					return
				}
				continue
			}
			c.logger.Info("client discovered", zap.Int("port", creds.Port))
			c.state = StateConnecting
			c.runConnection(ctx, creds)

		default:
			// runConnection always leaves us back in Discovering
			c.state = StateDiscovering
		}
	}
}

// runConnection dials, subscribes, and reads until the connection drops
func (c *Connector) runConnection(ctx context.Context, creds Credentials) {
	c.tracker.SetSession(status.Connecting)

	conn, err := dialClient(creds)
	if err != nil {
		c.logger.Debug("client dial failed", zap.Error(err))
		c.state = StateDiscovering
		sleepCtx(ctx, c.reconnectWait)
		return
	}

	if err := subscribe(conn, champSelectTopic); err != nil {
		c.logger.Warn("subscribe failed", zap.Error(err))
		conn.Close()
		c.state = StateDiscovering
		sleepCtx(ctx, c.reconnectWait)
		return
	}

	c.state = StateSubscribed
	c.tracker.SetSession(status.Connected)
	c.logger.Info("subscribed to champ select events")

	// Close the socket when the context ends so ReadMessage unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		c.handleFrame(message)
	}

	conn.Close()
	c.lastKey = selectionKey{}
	c.state = StateDisconnected
	if ctx.Err() == nil {
		c.tracker.SetSession(status.Reconnecting)
		c.logger.Info("client connection lost, rediscovering")
		sleepCtx(ctx, c.reconnectWait)
	}
	c.state = StateDiscovering
}

// handleFrame inspects one inbound WebSocket frame. Frames are
// [opcode, topic, {eventType, uri, data}] arrays; everything that is not an
// event for the subscribed topic is ignored.
func (c *Connector) handleFrame(data []byte) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}
	if len(raw) < 3 {
		return
	}

	var opcode EventType
	if err := json.Unmarshal(raw[0], &opcode); err != nil || opcode != EventTypeEvent {
		return
	}

	var topic string
	if err := json.Unmarshal(raw[1], &topic); err != nil || topic != champSelectTopic {
		return
	}

	var event struct {
		EventType string          `json:"eventType"`
		URI       string          `json:"uri"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw[2], &event); err != nil {
		return
	}

	switch event.EventType {
	case "Create", "Update":
		var session ChampSelectSession
		if err := json.Unmarshal(event.Data, &session); err != nil {
			return
		}
		c.processSession(&session)
	case "Delete":
		c.lastKey = selectionKey{}
		c.tracker.SetSession(status.Connected)
		c.updates <- SelectionUpdate{Active: false}
	}
}

// processSession resolves the session payload to a selection and emits it
// if it differs from the last emitted one
func (c *Connector) processSession(session *ChampSelectSession) {
	update, key, ok := resolveSelection(session, c.catalog)
	if !ok {
		return
	}
	if key == c.lastKey {
		return
	}
	c.lastKey = key
	c.tracker.SetSession(status.ChampSelect)
	c.updates <- update
}

// dialClient opens the authenticated WebSocket to the local client API.
// The client uses a self-signed certificate; trust is scoped to loopback.
func dialClient(creds Credentials) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
		HandshakeTimeout: 5 * time.Second,
	}

	url := fmt.Sprintf("wss://127.0.0.1:%d/", creds.Port)
	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuth("riot", creds.Token))

	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to client WebSocket: %w", err)
	}
	return conn, nil
}

// subscribe sends the subscription frame for an event topic
func subscribe(conn *websocket.Conn, topic string) error {
	return conn.WriteJSON([]interface{}{EventTypeSubscribe, topic})
}

// basicAuth encodes credentials for HTTP Basic auth
func basicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// sleepCtx waits for d or until ctx is done; returns false on cancellation
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
