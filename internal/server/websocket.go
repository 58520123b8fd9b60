package server

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jmylchreest/m3theme/internal/theme"
)

const writeWait = 5 * time.Second

// message is the envelope pushed to WebSocket clients.
type message struct {
	Type     string          `json:"type"`
	Snapshot *theme.Snapshot `json:"snapshot,omitempty"`
}

// wsConn serialises writes to one connection and drops snapshots older than
// the last one it sent.
type wsConn struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	lastGen uint64
}

func (c *wsConn) sendSnapshot(snap theme.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if snap.Generation != 0 && snap.Generation <= c.lastGen {
		return nil
	}
	c.lastGen = snap.Generation
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message{Type: "scheme", Snapshot: &snap})
}

// connManager tracks WebSocket clients for broadcasting.
type connManager struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*wsConn
}

func newConnManager() *connManager {
	return &connManager{
		conns: make(map[*websocket.Conn]*wsConn),
	}
}

func (m *connManager) add(conn *websocket.Conn) *wsConn {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &wsConn{conn: conn}
	m.conns[conn] = c
	return c
}

func (m *connManager) remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, conn)
}

func (m *connManager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// broadcast sends snap to every client; clients that fail are dropped.
func (m *connManager) broadcast(snap theme.Snapshot) {
	m.mu.RLock()
	conns := make([]*wsConn, 0, len(m.conns))
	for _, c := range m.conns {
		conns = append(conns, c)
	}
	m.mu.RUnlock()

	for _, c := range conns {
		if err := c.sendSnapshot(snap); err != nil {
			m.remove(c.conn)
			_ = c.conn.Close()
		}
	}
}

// closeAll sends a close frame to every client and forgets them.
func (m *connManager) closeAll() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[*websocket.Conn]*wsConn)
	m.mu.Unlock()

	for _, c := range conns {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}

// originChecker allows same-origin requests, requests without an Origin
// header, and any origin in allowed ("*" allows all).
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] || set[strings.ToLower(origin)] {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := s.ws.add(conn)
	s.logger.Debug("websocket client connected", "remote", r.RemoteAddr, "clients", s.ws.count())

	if err := c.sendSnapshot(s.theme.Snapshot()); err != nil {
		s.ws.remove(conn)
		_ = conn.Close()
		return
	}

	// Clients only listen; reading keeps control frames flowing and
	// detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.ws.remove(conn)
	_ = conn.Close()
	s.logger.Debug("websocket client disconnected", "remote", r.RemoteAddr)
}
