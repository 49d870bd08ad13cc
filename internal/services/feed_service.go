package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/joshua-takyi/nearnow/internal/models"
)

const (
	FeedProductID  = "-//NearNow//Eventos Cercanos//ES"
	FeedName       = "NearNow - Eventos"
	EventDuration  = time.Hour
	feedUIDPattern = "event-%d@nearnow"
)

// FeedService exports the event list as an iCalendar feed that calendar apps
// can subscribe to.
type FeedService struct {
	eventsRepo models.EventRepo
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

func NewFeedService(eventsRepo models.EventRepo, loc *time.Location, logger *slog.Logger) *FeedService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{
		eventsRepo: eventsRepo,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

func (fs *FeedService) Calendar(ctx context.Context) (string, error) {
	events, err := fs.eventsRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list events: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(FeedProductID)
	cal.SetXWRCalName(FeedName)
	cal.SetXWRTimezone(fs.loc.String())

	stamp := fs.now().UTC()
	for _, e := range events {
		start, err := time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, e.Date+" "+e.Time, fs.loc)
		if err != nil {
			// records inserted without validation can carry bad dates
			fs.logger.Warn("Skipping event with unparseable date", "event_id", e.ID, "date", e.Date, "time", e.Time)
			continue
		}

		ve := cal.AddEvent(fmt.Sprintf(feedUIDPattern, e.ID))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(EventDuration))
		ve.SetSummary(e.Title)
		ve.SetLocation(e.Location)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		ve.SetProperty(ics.ComponentPropertyCategories, string(e.Category))
		if e.Coordinates != nil {
			ve.SetProperty(ics.ComponentPropertyGeo, geoValue(*e.Coordinates))
		}
	}

	return cal.Serialize(), nil
}

// geoValue is the RFC 5545 GEO value: latitude and longitude separated by ";".
func geoValue(c models.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', 6, 64) + ";" + strconv.FormatFloat(c.Longitude, 'f', 6, 64)
}
