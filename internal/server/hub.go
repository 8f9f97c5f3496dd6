package server

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/internal/models"
)

const writeTimeout = 5 * time.Second

// hub tracks the live websocket per seat of one game. A seat has at most
// one connection; attaching a new one displaces the old.
type hub struct {
	mu    sync.Mutex
	conns map[int]*websocket.Conn
}

func newHub() *hub {
	return &hub{conns: make(map[int]*websocket.Conn)}
}

// attach binds conn to seat and returns the displaced connection, if any.
func (h *hub) attach(seat int, conn *websocket.Conn) *websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.conns[seat]
	h.conns[seat] = conn
	return old
}

// detach removes conn from seat, reporting whether it was still the bound
// connection. A displaced connection must not unbind its successor.
func (h *hub) detach(seat int, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[seat] != conn {
		return false
	}
	delete(h.conns, seat)
	return true
}

// connections returns a stable copy for iteration outside the lock.
func (h *hub) connections() map[int]*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[int]*websocket.Conn, len(h.conns))
	for seat, conn := range h.conns {
		out[seat] = conn
	}
	return out
}

// send writes one frame with a bounded deadline.
func send(conn *websocket.Conn, msg models.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}

func sendOrLog(conn *websocket.Conn, seat int, msg models.Message) {
	if err := send(conn, msg); err != nil {
		logrus.WithError(err).WithField("seat", seat).Debug("websocket write failed")
	}
}
