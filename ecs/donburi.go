package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/dragkit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for dragkit notifications.
// Subscribe to this in your ECS systems to receive session lifecycle events.
var InteractionEventType = events.NewEventType[dragkit.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Notifications are published to InteractionEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dragkit.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dragkit.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// SessionRecord is the component mirroring one session.
type SessionRecord struct {
	ID        uuid.UUID
	Mode      dragkit.Mode
	ElementID uint32
	Element   string
	State     dragkit.State
	X, Y      float64
	Valid     bool
	Outcome   dragkit.Outcome
	Done      bool
}

// Session is the component type of SessionRecord.
var Session = donburi.NewComponentType[SessionRecord]()

var sessionQuery = donburi.NewQuery(filter.Contains(Session))

// TrackSessions subscribes to InteractionEventType and keeps one entity per
// session up to date. The entity is created on the first notification of a
// session and marked Done on its reset notification.
func TrackSessions(world donburi.World) {
	index := make(map[uuid.UUID]donburi.Entity)
	InteractionEventType.Subscribe(world, func(w donburi.World, e dragkit.InteractionEvent) {
		ent, ok := index[e.SessionID]
		if !ok || !w.Valid(ent) {
			ent = w.Create(Session)
			index[e.SessionID] = ent
		}
		entry := w.Entry(ent)
		rec := Session.Get(entry)
		rec.ID = e.SessionID
		rec.Mode = e.Mode
		rec.ElementID = e.ElementID
		rec.Element = e.Element
		rec.State = e.State
		rec.X, rec.Y = e.X, e.Y
		rec.Valid = e.Valid
		rec.Outcome = e.Outcome
		if e.Type == dragkit.EventReset {
			rec.Done = true
			delete(index, e.SessionID)
		}
	})
}

// ActiveSessions returns the records of sessions that have not been reset.
func ActiveSessions(world donburi.World) []SessionRecord {
	var out []SessionRecord
	sessionQuery.Each(world, func(entry *donburi.Entry) {
		if rec := Session.Get(entry); !rec.Done {
			out = append(out, *rec)
		}
	})
	return out
}

// PruneSessions removes the entities of finished sessions.
func PruneSessions(world donburi.World) int {
	var done []donburi.Entity
	sessionQuery.Each(world, func(entry *donburi.Entry) {
		if Session.Get(entry).Done {
			done = append(done, entry.Entity())
		}
	})
	for _, e := range done {
		world.Remove(e)
	}
	return len(done)
}
