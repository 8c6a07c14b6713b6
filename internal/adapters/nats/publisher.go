package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
)

// Subjects carrying place lifecycle events.
const (
	SubjectPlaces        = "places.>"
	SubjectPlaceCreated  = "places.created"
	SubjectPlaceDeleted  = "places.deleted"
	streamPlaceEvents    = "PLACE_EVENTS"
	placeEventsRetention = 24 * time.Hour
)

// PlaceEvent is the JSON payload published on the places.* subjects.
type PlaceEvent struct {
	Type    string        `json:"type"`
	PlaceID string        `json:"place_id"`
	Place   *domain.Place `json:"place,omitempty"`
	At      time.Time     `json:"at"`
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      streamPlaceEvents,
		Subjects:  []string{SubjectPlaces},
		Retention: nats.InterestPolicy,
		MaxAge:    placeEventsRetention,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) publish(ctx context.Context, subject string, ev PlaceEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishPlaceCreated(ctx context.Context, place *domain.Place) error {
	return p.publish(ctx, SubjectPlaceCreated, PlaceEvent{
		Type: "created", PlaceID: place.ID, Place: place, At: time.Now().UTC(),
	})
}

func (p *Publisher) PublishPlaceDeleted(ctx context.Context, placeID string) error {
	return p.publish(ctx, SubjectPlaceDeleted, PlaceEvent{
		Type: "deleted", PlaceID: placeID, At: time.Now().UTC(),
	})
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("wayfarer"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
