package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// client is one websocket subscriber. writeLock serialises writes, which
// gorilla/websocket does not allow concurrently.
type client struct {
	conn      *websocket.Conn
	writeLock sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// hub tracks subscribers per game id.
type hub struct {
	clients     map[string]map[*client]struct{}
	clientsLock sync.RWMutex
}

func newHub() *hub {
	return &hub{clients: make(map[string]map[*client]struct{})}
}

func (h *hub) add(id string, c *client) {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*client]struct{})
	}
	h.clients[id][c] = struct{}{}
}

// drop unregisters c and closes its connection.
func (h *hub) drop(id string, c *client) {
	h.clientsLock.Lock()
	if set, ok := h.clients[id]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, id)
		}
	}
	h.clientsLock.Unlock()
	c.conn.Close()
}

// subscribers returns the number of clients watching id.
func (h *hub) subscribers(id string) int {
	h.clientsLock.RLock()
	defer h.clientsLock.RUnlock()
	return len(h.clients[id])
}

// broadcast sends v as JSON to every subscriber of id. Failed clients are
// left for their reader goroutine to drop.
func (h *hub) broadcast(id string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}

	h.clientsLock.RLock()
	defer h.clientsLock.RUnlock()
	for c := range h.clients[id] {
		c.write(payload)
	}
}

// closeGame disconnects everyone watching id.
func (h *hub) closeGame(id string) {
	h.clientsLock.Lock()
	set := h.clients[id]
	delete(h.clients, id)
	h.clientsLock.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "game deleted")
	for c := range set {
		c.writeLock.Lock()
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.writeLock.Unlock()
		c.conn.Close()
	}
}

func (h *hub) closeAll() {
	h.clientsLock.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.clientsLock.RUnlock()

	for _, id := range ids {
		h.closeGame(id)
	}
}

// wsHandler subscribes the caller to a game. The current game is sent at
// once, then one message per applied or undone ply.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	lg, ok := app.resolve(w, r)
	if !ok {
		return
	}

	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		app.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	id := mux.Vars(r)["id"]
	app.log.Debug("websocket connected", "remote", conn.RemoteAddr(), "game", id)

	c := &client{conn: conn}

	// Holding lg.mu orders the initial message before any broadcast.
	lg.mu.Lock()
	if lg.deleted {
		lg.mu.Unlock()
		conn.Close()
		return
	}
	app.hub.add(id, c)
	payload, _ := json.Marshal(newGameJSON(lg))
	c.write(payload)
	lg.mu.Unlock()

	go func() {
		defer app.hub.drop(id, c)
		for {
			// Clients only listen; reading detects disconnects.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
