// Package spectate streams settled game snapshots to read-only websocket
// observers.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gridsnake/game"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message types sent to spectators.
const (
	MsgWelcome  = "welcome"
	MsgSnapshot = "snapshot"
)

type WelcomeMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type SnapshotMsg struct {
	Type     string        `json:"type"`
	Snapshot game.Snapshot `json:"snapshot"`
}

const (
	// sendBuffer is how many messages may queue for one spectator before
	// it is dropped.
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Conn is one spectator connection. Messages are queued on send and
// written by writePump, so producers never wait on the network.
type Conn struct {
	ID        string
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue queues data without blocking. It reports false when the
// spectator is closed or too far behind.
func (c *Conn) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// writePump drains the send queue until the connection closes or a write
// fails or times out.
func (c *Conn) writePump() {
	defer c.Close()
	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				glog.V(1).Infof("spectator %s write: %v", c.ID, err)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// Hub tracks spectators and fans snapshots out to them. It implements
// game.Renderer, so it can be attached next to a screen renderer.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
	last  []byte
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Conn)}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Render implements game.Renderer.
func (h *Hub) Render(s game.Snapshot) {
	if err := h.Broadcast(s); err != nil {
		glog.Errorf("spectate: %v", err)
	}
}

// Broadcast queues s for every spectator and returns without waiting on
// the network. Spectators whose queue is full are dropped.
func (h *Hub) Broadcast(s game.Snapshot) error {
	data, err := json.Marshal(SnapshotMsg{Type: MsgSnapshot, Snapshot: s})
	if err != nil {
		return err
	}

	var dropped []*Conn
	h.mu.Lock()
	h.last = data
	for id, c := range h.conns {
		if !c.enqueue(data) {
			delete(h.conns, id)
			dropped = append(dropped, c)
		}
	}
	h.mu.Unlock()

	for _, c := range dropped {
		glog.V(1).Infof("spectator %s dropped: send queue full", c.ID)
		c.Close()
	}
	return nil
}

// join registers c and queues the welcome followed by the latest snapshot.
// Both are queued under the hub lock so broadcasts land behind them.
func (h *Hub) join(c *Conn) error {
	welcome, err := json.Marshal(WelcomeMsg{Type: MsgWelcome, ID: c.ID})
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID] = c
	c.enqueue(welcome)
	if h.last != nil {
		c.enqueue(h.last)
	}
	return nil
}

// ServeHTTP upgrades the request and keeps the spectator registered until
// it disconnects. Messages from spectators are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("spectate: upgrade: %v", err)
		return
	}

	c := newConn(ws)
	go c.writePump()
	if err := h.join(c); err != nil {
		glog.Warningf("spectator %s: welcome: %v", c.ID, err)
		h.remove(c.ID)
		c.Close()
		return
	}
	glog.V(1).Infof("spectator connected: %s", c.ID)

	defer func() {
		h.remove(c.ID)
		c.Close()
		glog.V(1).Infof("spectator disconnected: %s", c.ID)
	}()
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				glog.Warningf("spectator %s read error: %v", c.ID, err)
			}
			return
		}
	}
}
