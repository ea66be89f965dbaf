package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TableCampusMessages = "campus_messages"
	TableDirectMessages = "direct_messages"
)

type EventType string

const EventInsert EventType = "INSERT"

// Event is a row-level change notification. Record holds the row as
// written, foreign keys only.
type Event struct {
	Table       string          `json:"table"`
	Type        EventType       `json:"type"`
	Record      json.RawMessage `json:"record"`
	CommittedAt time.Time       `json:"committed_at"`
}

func NewInsertEvent(table string, record any) (Event, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s record: %w", table, err)
	}
	return Event{
		Table:       table,
		Type:        EventInsert,
		Record:      raw,
		CommittedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the record into dst.
func (e Event) Decode(dst any) error {
	return json.Unmarshal(e.Record, dst)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscription delivers the events of one table until closed. The Events
// channel is closed when the subscription ends.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, table string) (Subscription, error)
}
