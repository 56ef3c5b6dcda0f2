// Package ws bildirimleri kullanıcıların websocket bağlantılarına iletir.
package ws

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/ik-portal/pkg/logger"
)

// Client tek bir websocket bağlantısı. Bir kullanıcının birden çok sekmesi olabilir.
type Client struct {
	ID     string
	UserID string
	Send   chan []byte
}

type userMsg struct {
	userID string
	msg    []byte
}

// Hub istemci kaydını tek bir goroutine'de (Run) yönetir.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	byUser  map[string]map[string]*Client // userID -> id -> client

	register chan *Client
	unreg    chan *Client
	toUser   chan userMsg

	log     *logger.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

// NewHub kurucu. Run ayrı bir goroutine'de çağrılmalıdır.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		byUser:   make(map[string]map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		toUser:   make(chan userMsg, 1024),
		log:      log.Component("ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run Stop çağrılana kadar kayıt ve gönderim olaylarını işler.
func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = fmt.Sprintf("c%d", h.nextID.Add(1))
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			if h.byUser[c.UserID] == nil {
				h.byUser[c.UserID] = make(map[string]*Client)
			}
			h.byUser[c.UserID][c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug().Str("id", c.ID).Str("user_id", c.UserID).Int("total", total).Msg("istemci bağlandı")

		case c := <-h.unreg:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case m := <-h.toUser:
			h.mu.Lock()
			for _, c := range h.byUser[m.userID] {
				select {
				case c.Send <- m.msg:
				default:
					// yavaş istemci hub'ı kilitlemesin
					h.remove(c)
					h.log.Warn().Str("id", c.ID).Str("user_id", c.UserID).Msg("yavaş istemci düşürüldü")
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for _, c := range h.clients {
				h.remove(c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove h.mu tutulurken çağrılır.
func (h *Hub) remove(c *Client) {
	if c == nil || h.clients[c.ID] == nil {
		return
	}
	delete(h.clients, c.ID)
	if set := h.byUser[c.UserID]; set != nil {
		delete(set, c.ID)
		if len(set) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
	close(c.Send)
}

// Stop Run'ı sonlandırır ve tüm istemci kanallarını kapatır.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Register istemciyi ekler. Hub durmuşsa etkisizdir.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// Unregister istemciyi çıkarır; Send kanalı kapanır.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stopped:
	}
}

// SendToUser mesajı kullanıcının tüm bağlantılarına kuyruklar.
func (h *Hub) SendToUser(userID string, msg []byte) {
	select {
	case h.toUser <- userMsg{userID: userID, msg: msg}:
	case <-h.stopped:
	}
}

// Connections kullanıcının açık bağlantı sayısı.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
