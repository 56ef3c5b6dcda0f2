package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/pkg/jwt"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

func receive(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	select {
	case got := <-ch:
		return string(got)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("mesaj beklerken zaman aşımı")
		return ""
	}
}

func TestHub_SendToUser_YalnizcaHedefKullanici(t *testing.T) {
	h := NewHub(logger.Nop())
	go h.Run()
	defer h.Stop()

	tab1 := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	tab2 := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	other := &Client{UserID: "u2", Send: make(chan []byte, 1)}
	h.Register(tab1)
	h.Register(tab2)
	h.Register(other)

	h.SendToUser("u1", []byte("izin onaylandı"))

	assert.Equal(t, "izin onaylandı", receive(t, tab1.Send))
	assert.Equal(t, "izin onaylandı", receive(t, tab2.Send))
	select {
	case <-other.Send:
		t.Fatal("başka kullanıcıya mesaj gitmemeli")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unregister_KanalKapanir(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.Connections("u1") == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, h.Connections("u1"))
}

func TestHub_YavasIstemciDusurulur(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	slow := &Client{UserID: "u1", Send: make(chan []byte)} // tamponsuz, kimse okumuyor
	h.Register(slow)
	h.SendToUser("u1", []byte("x"))

	require.Eventually(t, func() bool { return h.Connections("u1") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StopSonrasiBloklanmaz(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	h.Stop()

	done := make(chan struct{})
	go func() {
		h.SendToUser("u1", []byte("x"))
		h.Unregister(&Client{ID: "c1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("durmuş hub çağrıları bloklamamalı")
	}
}

func TestHandler_TokenliBaglantiMesajAlir(t *testing.T) {
	const secret = "ws-test-secret"
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(Handler(h, secret, nil, logger.Nop()))
	defer srv.Close()

	sess, err := jwt.Issue(secret, "test", jwt.Identity{UserID: "u1", CompanyID: "c1", Role: "employee"}, 5*time.Minute)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + sess.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Connections("u1") == 1 }, time.Second, 5*time.Millisecond)
	h.SendToUser("u1", []byte(`{"title":"Yeni bildirim"}`))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Yeni bildirim"}`, string(msg))
}

func TestHandler_TokensizReddedilir(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(Handler(h, "s", nil, logger.Nop()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}
