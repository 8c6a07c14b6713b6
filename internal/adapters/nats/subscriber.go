package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subscriber consumes place events from JetStream with durable consumers.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribePlaceDeleted calls handler for every places.deleted event.
// durable names the consumer so restarts resume where they left off.
// Messages the handler fails on are redelivered up to three times.
func (s *Subscriber) SubscribePlaceDeleted(ctx context.Context, durable string, handler func(ctx context.Context, placeID string) error) error {
	sub, err := s.js.Subscribe(SubjectPlaceDeleted, func(msg *nats.Msg) {
		switch dispatchPlaceDeleted(ctx, msg.Data, handler) {
		case ackTerm:
			_ = msg.Term()
		case ackNak:
			_ = msg.Nak()
		default:
			_ = msg.Ack()
		}
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

type ackAction int

const (
	ackOK ackAction = iota
	ackNak
	ackTerm
)

// dispatchPlaceDeleted decodes a places.deleted payload and hands the place
// id to handler. Malformed payloads are terminated, never redelivered.
func dispatchPlaceDeleted(ctx context.Context, data []byte, handler func(ctx context.Context, placeID string) error) ackAction {
	var ev PlaceEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.PlaceID == "" {
		return ackTerm
	}
	if err := handler(ctx, ev.PlaceID); err != nil {
		return ackNak
	}
	return ackOK
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
