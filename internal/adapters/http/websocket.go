package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/wayfarer/internal/adapters/nats"
	"github.com/samirrijal/wayfarer/internal/pkg/metrics"
)

const wsPingInterval = 30 * time.Second

// wsMessage is a client command: {"action":"subscribe","event":"deleted"}.
// Event is "created", "deleted" or "all" (the default).
type wsMessage struct {
	Action string `json:"action"`
	Event  string `json:"event"`
}

type wsReply struct {
	Status  string `json:"status,omitempty"`
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error,omitempty"`
}

func eventSubject(event string) (string, bool) {
	switch event {
	case "", "all":
		return natsadapter.SubjectPlaces, true
	case "created":
		return natsadapter.SubjectPlaceCreated, true
	case "deleted":
		return natsadapter.SubjectPlaceDeleted, true
	}
	return "", false
}

// wsSession is one client connection and its NATS subscriptions.
type wsSession struct {
	conn *websocket.Conn
	nc   *nats.Conn

	mu   sync.Mutex // guards writes to conn
	subs map[string]*nats.Subscription
}

func (s *wsSession) write(kind int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(kind, data)
}

func (s *wsSession) reply(r wsReply) {
	data, _ := json.Marshal(r)
	_ = s.write(websocket.TextMessage, data)
}

// relay forwards the event payload untouched.
func (s *wsSession) relay(msg *nats.Msg) {
	_ = s.write(websocket.TextMessage, msg.Data)
}

func (s *wsSession) subscribe(subject string) wsReply {
	if _, ok := s.subs[subject]; ok {
		return wsReply{Status: "already subscribed", Subject: subject}
	}
	sub, err := s.nc.Subscribe(subject, s.relay)
	if err != nil {
		return wsReply{Error: "subscribe failed: " + err.Error()}
	}
	s.subs[subject] = sub
	return wsReply{Status: "subscribed", Subject: subject}
}

func (s *wsSession) unsubscribe(subject string) wsReply {
	sub, ok := s.subs[subject]
	if !ok {
		return wsReply{Error: "not subscribed to " + subject}
	}
	_ = sub.Unsubscribe()
	delete(s.subs, subject)
	return wsReply{Status: "unsubscribed", Subject: subject}
}

func (s *wsSession) handle(raw []byte) wsReply {
	var m wsMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return wsReply{Error: "invalid JSON"}
	}
	subject, ok := eventSubject(m.Event)
	if !ok {
		return wsReply{Error: "unknown event: " + m.Event}
	}
	switch m.Action {
	case "subscribe":
		return s.subscribe(subject)
	case "unsubscribe":
		return s.unsubscribe(subject)
	}
	return wsReply{Error: "unknown action: " + m.Action}
}

func (s *wsSession) keepAlive(done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// WebSocketHandler relays place events from NATS to connected clients.
// Every client starts subscribed to all place events and may narrow the
// feed with unsubscribe/subscribe commands.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remote := c.RemoteAddr().String()
		s := &wsSession{conn: c, nc: nc, subs: make(map[string]*nats.Subscription)}
		if r := s.subscribe(natsadapter.SubjectPlaces); r.Error != "" {
			slog.Error("ws default subscribe", "remote", remote, "error", r.Error)
			return
		}
		defer func() {
			for _, sub := range s.subs {
				_ = sub.Unsubscribe()
			}
		}()
		slog.Info("ws client connected", "remote", remote)

		done := make(chan struct{})
		defer close(done)
		go s.keepAlive(done)

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			s.reply(s.handle(msg))
		}
		slog.Info("ws client disconnected", "remote", remote)
	}
}
