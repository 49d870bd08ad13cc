package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/joshua-takyi/nearnow/internal/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
	ErrInvalidMonth  = errors.New("month must be between 1 and 12")
	ErrInvalidYear   = errors.New("year must be between 1 and 9999")
)

// ValidationError lists the fields that made a submission invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEvent }

type EventService struct {
	eventsRepo models.EventRepo
	loc        *time.Location
	now        func() time.Time
}

func NewEventService(eventsRepo models.EventRepo, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &EventService{
		eventsRepo: eventsRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// Today is midnight of the current date in the service timezone.
func (es *EventService) Today() time.Time {
	return startOfDay(es.now(), es.loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CreateEvent checks the mandatory fields and appends the event. Nothing is
// stored when validation fails.
func (es *EventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, &ValidationError{Fields: []string{"event"}}
	}
	event.Sanitize()

	if err := models.Validate.Struct(event); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldName(fe))
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, fmt.Errorf("invalid event data provided: %w", err)
	}

	created, err := es.eventsRepo.Append(ctx, *event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	return &created, nil
}

// fieldName turns "Event.coordinates.lat" into "coordinates.lat".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func (es *EventService) ListEvents(ctx context.Context, mode models.FilterMode) ([]models.Event, error) {
	events, err := es.eventsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return models.FilterEvents(events, es.Today(), mode), nil
}

func (es *EventService) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	if id <= 0 {
		return nil, ErrEventNotFound
	}
	event, err := es.eventsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Calendar builds the grid for year/month; zero values mean the current one.
func (es *EventService) Calendar(ctx context.Context, year, month int) (models.Calendar, error) {
	today := es.Today()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	if year < 1 || year > 9999 {
		return models.Calendar{}, ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return models.Calendar{}, ErrInvalidMonth
	}

	events, err := es.eventsRepo.List(ctx)
	if err != nil {
		return models.Calendar{}, fmt.Errorf("failed to list events: %w", err)
	}
	return models.BuildCalendar(events, year, time.Month(month)), nil
}
