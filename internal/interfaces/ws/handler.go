package ws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jhoicas/ik-portal/pkg/jwt"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// Handler /ws?token=<jwt> isteklerini websocket'e yükseltir ve bağlantıyı token sahibine bağlar.
// allowedOrigins boşsa tüm kaynaklar kabul edilir.
func Handler(hub *Hub, jwtSecret string, allowedOrigins []string, log *logger.Logger) http.HandlerFunc {
	l := log.Component("ws")
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		id, err := jwt.Verify(jwtSecret, token)
		if err != nil {
			http.Error(w, "token geçersiz", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.Warn().Err(err).Msg("websocket yükseltme başarısız")
			return
		}

		client := &Client{UserID: id.UserID, Send: make(chan []byte, sendBuffer)}
		hub.Register(client)
		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump istemciden gelen mesajları yok sayar; yalnızca kopmayı ve pong'ları izler.
func readPump(conn *websocket.Conn, hub *Hub, c *Client) {
	defer func() {
		hub.Unregister(c)
		_ = conn.Close()
	}()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
