package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/middleware"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
	Total   int             `json:"total"`
}

type testApp struct {
	router   *gin.Engine
	events   *services.EventService
	store    *models.EventStore
	provider *geo.Mapbox
	today    time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := models.NewEventStore()
	es := services.NewEventService(store, time.UTC)
	today := es.Today()
	for _, offset := range []int{0, 1, 2} {
		_, err := store.Append(context.Background(), models.Event{
			Title:    "Evento",
			Date:     today.AddDate(0, 0, offset).Format(models.DateLayout),
			Time:     "19:00",
			Location: "Oaxaca",
			Category: models.CategoryCultural,
			Coordinates: &models.Coordinates{
				Latitude:  17.0732,
				Longitude: -96.7266,
			},
		})
		require.NoError(t, err)
	}

	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "nowhere") {
			_, _ = w.Write([]byte(`{"features":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"features":[{"place_name":"Oaxaca de Juárez, Oaxaca","center":[-96.7266,17.0732]}]}`))
	}))
	t.Cleanup(geocoder.Close)
	provider := geo.NewMapbox(geocoder.Client())
	provider.BaseURL = geocoder.URL

	ls := services.NewLocationService(provider, geo.NewMemoryCache(), time.Hour, logger)
	ms := services.NewMapService(store, provider)
	fs := services.NewFeedService(store, time.UTC, logger)
	content, err := models.LoadContent("")
	require.NoError(t, err)
	cs := services.NewContentService(content)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler(logger))
	r.GET("/events", ListEvents(es))
	r.POST("/events", CreateEvent(es))
	r.GET("/events/:id", GetEvent(es))
	r.GET("/events.ics", EventsFeed(fs))
	r.GET("/categories", ListCategories())
	r.GET("/calendar", GetCalendar(es))
	r.GET("/locations/search", SearchLocation(ls))
	r.GET("/locations/reverse", ReverseLocation(ls))
	r.GET("/map", GetMapView(ms))
	r.GET("/map/status", MapStatus(ls))
	r.PUT("/map/key", SetMapKey(ls))
	r.GET("/content/achievements", GetAchievements(cs))
	r.GET("/content/testimonials", GetTestimonials(cs))
	r.GET("/content/stats", GetCommunityStats(cs))
	r.GET("/content/scan", ScanArtwork(cs))

	return &testApp{router: r, events: es, store: store, provider: provider, today: today}
}

func (a *testApp) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCreateEventHandler(t *testing.T) {
	app := newTestApp(t)

	body := `{"title":"Noche de Jazz","date":"2025-11-08","time":"21:00","location":"Puebla","category":"Música","coordinates":{"lat":19.0414,"lng":-98.2063}}`
	w, resp := app.do(t, http.MethodPost, "/events", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, EventCreatedNotice, resp.Message)

	var created models.Event
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, models.CategoryMusica, created.Category)
	require.NotNil(t, created.Coordinates)
	assert.InDelta(t, 19.0414, created.Coordinates.Latitude, 1e-9)
	assert.Equal(t, 4, app.store.Len())
}

func TestCreateEventHandlerRejectsIncompleteForm(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodPost, "/events", `{"title":"Sin fecha","location":"Puebla","category":"Arte"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, EventFormNotice, resp.Error)
	assert.Equal(t, []string{"date", "time"}, resp.Details)

	w, resp = app.do(t, http.MethodPost, "/events", `{"title":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, EventFormNotice, resp.Error)

	assert.Equal(t, 3, app.store.Len())
}

func TestListEventsHandler(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		query string
		want  int
	}{
		{"", 1}, // defaults to today
		{"?filter=hoy", 1},
		{"?filter=ma%C3%B1ana", 1},
		{"?filter=tomorrow", 1},
		{"?filter=todos", 3},
		{"?filter=semana", 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, resp := app.do(t, http.MethodGet, "/events"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			var events []models.Event
			require.NoError(t, json.Unmarshal(resp.Data, &events))
			assert.Len(t, events, tt.want)
			assert.Equal(t, tt.want, resp.Total)
		})
	}

	w, resp := app.do(t, http.MethodGet, "/events?filter=mañana", "")
	require.Equal(t, http.StatusOK, w.Code)
	var events []models.Event
	require.NoError(t, json.Unmarshal(resp.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, app.today.AddDate(0, 0, 1).Format(models.DateLayout), events[0].Date)
}

func TestGetEventHandler(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/events/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var event models.Event
	require.NoError(t, json.Unmarshal(resp.Data, &event))
	assert.Equal(t, 2, event.ID)

	w, _ = app.do(t, http.MethodGet, "/events/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = app.do(t, http.MethodGet, "/events/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "event not found", resp.Error)
}

func TestListCategoriesHandler(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(resp.Data, &categories))
	assert.Equal(t, models.Categories, categories)
}

func TestGetCalendarHandler(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/calendar?year=2025&month=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cal struct {
		Year      int                  `json:"year"`
		Month     int                  `json:"month"`
		MonthName string               `json:"month_name"`
		Weeks     [][]*json.RawMessage `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cal))
	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, "Octubre", cal.MonthName)
	require.Len(t, cal.Weeks, 5)
	// leading placeholders serialize as null
	assert.Nil(t, cal.Weeks[0][0])
	assert.Nil(t, cal.Weeks[0][2])
	assert.NotNil(t, cal.Weeks[0][3])

	w, resp = app.do(t, http.MethodGet, "/calendar", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &cal))
	assert.Equal(t, app.today.Year(), cal.Year)
	assert.Equal(t, int(app.today.Month()), cal.Month)

	w, _ = app.do(t, http.MethodGet, "/calendar?month=13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(t, http.MethodGet, "/calendar?year=dos", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, year := range []string{"1234567", "10000", "-3"} {
		w, resp = app.do(t, http.MethodGet, "/calendar?month=1&year="+year, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, year)
		assert.Equal(t, services.ErrInvalidYear.Error(), resp.Error, year)
	}
}

func TestEventsFeedHandler(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodGet, "/events.ics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "nearnow-eventos.ics")
	assert.Equal(t, 3, strings.Count(w.Body.String(), "BEGIN:VEVENT"))
}

func TestLocationHandlersNeedKey(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/locations/search?q=Oaxaca", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, MapKeyNotice, resp.Error)

	w, _ = app.do(t, http.MethodGet, "/locations/reverse?lat=17.07&lng=-96.72", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, resp = app.do(t, http.MethodGet, "/map/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"provider":"mapbox","ready":false}`, string(resp.Data))
}

func TestSetMapKeyHandler(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodPut, "/map/key", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(t, http.MethodPut, "/map/key", `{"api_key":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, app.provider.Ready())

	w, resp := app.do(t, http.MethodPut, "/map/key", `{"api_key":"pk.test"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"provider":"mapbox","ready":true}`, string(resp.Data))
	assert.True(t, app.provider.Ready())
}

func TestSearchAndReverseLocationHandlers(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.provider.Initialize("pk.test"))

	w, resp := app.do(t, http.MethodGet, "/locations/search?q=Oaxaca", "")
	require.Equal(t, http.StatusOK, w.Code)
	var place geo.Place
	require.NoError(t, json.Unmarshal(resp.Data, &place))
	assert.Equal(t, "Oaxaca de Juárez, Oaxaca", place.Name)
	assert.InDelta(t, 17.0732, place.Coordinates.Latitude, 1e-9)

	w, _ = app.do(t, http.MethodGet, "/locations/search?q=nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodGet, "/locations/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = app.do(t, http.MethodGet, "/locations/reverse?lat=17.0732&lng=-96.7266", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &place))
	assert.Equal(t, "Oaxaca de Juárez, Oaxaca", place.Name)

	w, _ = app.do(t, http.MethodGet, "/locations/reverse?lat=17.0732", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(t, http.MethodGet, "/locations/reverse", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(t, http.MethodGet, "/locations/reverse?lat=100&lng=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMapViewHandler(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/map?lat=19.4326&lng=-99.1332", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view geo.MapView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, services.UserMapZoom, view.Zoom)
	require.Len(t, view.Markers, 4)
	assert.Equal(t, geo.MarkerUser, view.Markers[0].Kind)

	w, resp = app.do(t, http.MethodGet, "/map", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, services.DefaultMapZoom, view.Zoom)
	assert.Len(t, view.Markers, 3)

	w, _ = app.do(t, http.MethodGet, "/map?lat=abc&lng=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandlers(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/content/achievements", "/content/testimonials", "/content/stats"} {
		w, resp := app.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		var items []json.RawMessage
		require.NoError(t, json.Unmarshal(resp.Data, &items), path)
		assert.NotEmpty(t, items, path)
	}

	w, resp := app.do(t, http.MethodGet, "/content/scan", "")
	require.Equal(t, http.StatusOK, w.Code)
	var scan models.ScanResult
	require.NoError(t, json.Unmarshal(resp.Data, &scan))
	assert.NotEmpty(t, scan.Title)
}
