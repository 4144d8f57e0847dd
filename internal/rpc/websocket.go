package rpc

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/labsx402/paradoxd/internal/core/engine"
)

const (
	wsWriteTimeout   = 10 * time.Second
	wsReadTimeout    = 60 * time.Second
	wsPingInterval   = 54 * time.Second
	wsMaxMessageSize = 64 * 1024
	wsSendBuffer     = 256
)

// Hub broadcasts committed engine events to websocket subscribers. It
// implements engine.Publisher, so it sits directly behind the engine
// next to the event journal.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*wsConn]struct{}
}

type wsConn struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*wsConn]struct{}),
	}
}

// ServeHTTP upgrades the connection and streams events until the peer
// goes away. Incoming messages are only read to service pings.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &wsConn{
		ws:   ws,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) readLoop(c *wsConn) {
	defer h.drop(c)

	c.ws.SetReadLimit(wsMaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *wsConn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	defer h.drop(c)

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}
}

// Publish fans one committed event out to every subscriber. Slow
// consumers are disconnected rather than allowed to stall the engine.
func (h *Hub) Publish(ev engine.Event) {
	data, err := json.Marshal(map[string]interface{}{
		"type":  "event",
		"event": ev,
	})
	if err != nil {
		log.Printf("websocket: marshal event %s: %v", ev.Type, err)
		return
	}

	h.mu.RLock()
	conns := make([]*wsConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		select {
		case c.send <- data:
		default:
			log.Printf("websocket: dropping slow subscriber")
			h.drop(c)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*wsConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.drop(c)
	}
}

func (h *Hub) drop(c *wsConn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()

	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}
