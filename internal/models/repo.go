package models

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json names, the ones the form submits
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	return v
}

type EventRepo interface {
	Append(ctx context.Context, event Event) (Event, error)
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id int) (*Event, error)
}

// EventStore is the in-memory, append-only event list. It does not validate:
// records are checked by the service before they reach the store.
type EventStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewEventStore(seed ...Event) *EventStore {
	s := &EventStore{}
	for _, e := range seed {
		s.appendLocked(e)
	}
	return s
}

// Append assigns the next id (current maximum plus one, or 1 for an empty
// store) and adds the event at the end of the list.
func (s *EventStore) Append(ctx context.Context, event Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(event), nil
}

func (s *EventStore) appendLocked(event Event) Event {
	maxID := 0
	for _, e := range s.events {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	event.ID = maxID + 1
	s.events = append(s.events, event)
	return event
}

// List returns a copy of the events in insertion order.
func (s *EventStore) List(ctx context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *EventStore) GetByID(ctx context.Context, id int) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
