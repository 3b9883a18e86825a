package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"skinbridge/internal/status"
)

// The consumer is a remote web page talking to a local process, so every
// origin is accepted; loopback binding is the trust boundary.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetSkinHandler receives the skin id the UI is currently viewing
type SetSkinHandler func(skinID int)

// Server is the loopback WebSocket bridge the website connects to
type Server struct {
	hub        *Hub
	version    string
	port       int
	onSetSkin  SetSkinHandler
	tracker    *status.Tracker
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer creates a relay server on the given loopback port
func NewServer(port int, version string, hub *Hub, tracker *status.Tracker, logger *zap.Logger) *Server {
	return &Server{
		hub:     hub,
		version: version,
		port:    port,
		tracker: tracker,
		logger:  logger,
	}
}

// OnSetSkin registers the callback for inbound setSkin messages
func (s *Server) OnSetSkin(handler SetSkinHandler) {
	s.onSetSkin = handler
}

// Start binds the loopback listener and begins serving. The bind doubles as
// single-instance enforcement: a second companion fails here and exits.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/status", s.handleStatus)

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s (is another instance running?): %w", addr, err)
	}

	s.httpServer = &http.Server{Handler: r}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("relay server error", zap.Error(err))
		}
	}()

	s.logger.Info("relay listening", zap.String("addr", addr))
	return nil
}

// Stop closes every client connection and releases the listener
func (s *Server) Stop(ctx context.Context) {
	s.hub.Stop()
	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(ctx)
	}
}

// handleWS upgrades the connection, sends the handshake, and reads inbound
// frames until disconnect. The only recognized inbound message is setSkin;
// everything else is silently ignored.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", zap.Error(err))
		return
	}

	id := uuid.New().String()
	c := s.hub.add(id, ws)

	handshake, _ := json.Marshal(ConnectedMessage{Type: TypeConnected, Version: s.version})
	if err := c.writeMessage(handshake); err != nil {
		s.hub.remove(id)
		return
	}

	go s.readLoop(id, ws)
}

// readLoop exists to detect disconnection and accept setSkin messages
func (s *Server) readLoop(id string, ws *websocket.Conn) {
	defer s.hub.remove(id)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != TypeSetSkin || msg.SkinID <= 0 {
			continue
		}
		if s.onSetSkin != nil {
			s.onSetSkin(msg.SkinID)
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "healthy",
		"active_clients": s.hub.ConnectionCount(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": s.tracker.Current(),
	})
}
