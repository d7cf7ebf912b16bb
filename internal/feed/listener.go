package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventKind tags a change notification. The payload is deliberately opaque:
// events are only triggers to re-fetch, never a source of row data.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is the tagged union forwarded to the consumer.
type Event struct {
	Kind EventKind
	Raw  json.RawMessage
}

// Status reflects the subscription's connection state. None of these are
// fatal to the owning view; polling continues regardless.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusSubscribed Status = "subscribed"
	StatusError      Status = "error"
	StatusTimedOut   Status = "timed_out"
	StatusClosed     Status = "closed"
)

const (
	defaultReadTimeout = 70 * time.Second
	handshakeTimeout   = 10 * time.Second
	topicTransactions  = "transactions-changes"
)

// Listener opens change subscriptions against the feed endpoint. One listener
// serves the whole process; each Start call owns at most one subscription.
type Listener struct {
	url         string
	log         zerolog.Logger
	readTimeout time.Duration
}

func NewListener(feedURL string, log zerolog.Logger) *Listener {
	return &Listener{
		url:         feedURL,
		log:         log,
		readTimeout: defaultReadTimeout,
	}
}

// subscribeFrame asks the feed for all change kinds on the transactions
// table. No server-side owner filter is assumed reliable; the consumer still
// scopes every resulting re-fetch by owner.
type subscribeFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
	Event  string `json:"event"`
	Table  string `json:"table"`
}

type serverFrame struct {
	Type    string          `json:"type"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Start resolves the owner and opens the subscription. A nil owner returns a
// nil handle without subscribing: polling is then the sole source of
// freshness. onEvent and onStatus are invoked from the listener goroutine and
// stop firing once the subscription is stopped.
func (l *Listener) Start(ctx context.Context, ownerID uuid.UUID, onEvent func(Event), onStatus func(Status)) (*Subscription, error) {
	if ownerID == uuid.Nil {
		return nil, nil
	}

	onStatus(StatusConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		onStatus(StatusError)
		return nil, fmt.Errorf("dial feed: %w", err)
	}

	frame := subscribeFrame{
		Action: "subscribe",
		Topic:  topicTransactions,
		Event:  "*",
		Table:  "transactions",
	}
	if err := conn.WriteJSON(frame); err != nil {
		_ = conn.Close()
		onStatus(StatusError)
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &Subscription{conn: conn, done: make(chan struct{})}

	// The first frame must acknowledge the subscription.
	_ = conn.SetReadDeadline(time.Now().Add(l.readTimeout))
	var ack serverFrame
	if err := conn.ReadJSON(&ack); err != nil || ack.Type != "subscribed" {
		sub.Stop()
		onStatus(StatusError)
		if err == nil {
			err = fmt.Errorf("unexpected frame type %q", ack.Type)
		}
		return nil, fmt.Errorf("subscribe ack: %w", err)
	}
	onStatus(StatusSubscribed)

	go func() {
		select {
		case <-ctx.Done():
			sub.Stop()
		case <-sub.done:
		}
	}()
	go l.readLoop(sub, onEvent, onStatus)

	return sub, nil
}

func (l *Listener) readLoop(sub *Subscription, onEvent func(Event), onStatus func(Status)) {
	for {
		_ = sub.conn.SetReadDeadline(time.Now().Add(l.readTimeout))
		var frame serverFrame
		if err := sub.conn.ReadJSON(&frame); err != nil {
			if sub.stopped() {
				return
			}
			if isTimeout(err) {
				l.log.Warn().Err(err).Msg("feed subscription timed out")
				onStatus(StatusTimedOut)
			} else {
				l.log.Warn().Err(err).Msg("feed subscription closed")
				onStatus(StatusClosed)
			}
			sub.Stop()
			return
		}
		if frame.Type != "change" {
			continue
		}
		kind, ok := eventKind(frame.Event)
		if !ok {
			l.log.Debug().Str("event", frame.Event).Msg("ignoring unknown feed event")
			continue
		}
		if sub.stopped() {
			return
		}
		onEvent(Event{Kind: kind, Raw: frame.Payload})
	}
}

func eventKind(value string) (EventKind, bool) {
	switch strings.ToLower(value) {
	case "insert":
		return EventInsert, true
	case "update":
		return EventUpdate, true
	case "delete":
		return EventDelete, true
	}
	return "", false
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Subscription is the handle returned by Start. The zero of *Subscription is
// a valid target: Stop on a nil handle is a no-op, so callers that never
// subscribed can tear down unconditionally.
type Subscription struct {
	conn *websocket.Conn
	done chan struct{}
	once sync.Once
}

// Stop releases the subscription. Idempotent and nil-safe.
func (s *Subscription) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

func (s *Subscription) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
