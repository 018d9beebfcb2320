package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"citybeat/internal/catalog"
	"citybeat/internal/delivery/http/controllers"
	"citybeat/internal/domain"
	"citybeat/internal/metrics"
	"citybeat/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPersister struct{}

func (nopPersister) Load() (map[string]*domain.UserRecord, error) {
	return map[string]*domain.UserRecord{}, nil
}

func (nopPersister) Save(map[string]*domain.UserRecord) error { return nil }

type nopSender struct{}

func (nopSender) Send(_ context.Context, _ domain.ContactSubmission) error { return nil }

// newTestRouter wires real services over an in-memory catalog and a no-op
// persister, so these tests cover the full request path.
func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	events := make([]domain.Event, 0, 10)
	for i := 1; i <= 10; i++ {
		events = append(events, domain.Event{
			ID:       i,
			Title:    fmt.Sprintf("Concert %02d", i),
			Category: "Music",
			City:     "Cluj-Napoca",
		})
	}
	cat := catalog.New(events)
	users := services.NewUserService(nil, cat, nopPersister{}, logger, m)
	contactSvc := services.NewContactService(nopSender{}, logger, m)

	return NewRouter(
		controllers.NewEventsController(logger, cat),
		controllers.NewUserController(logger, users),
		controllers.NewContactController(logger, contactSvc),
	)
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "http://test"+path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func getJSON(t *testing.T, mux *http.ServeMux, path string, dest any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://test"+path, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dest))
}

func TestRouter_EventsQuery(t *testing.T) {
	mux := newTestRouter(t)

	var page domain.EventPage
	getJSON(t, mux, "/api/events?category=music&page=2&pageSize=3", &page)
	assert.Equal(t, 10, page.Total)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 4, page.Items[0].ID)
	assert.Equal(t, 6, page.Items[2].ID)
}

func TestRouter_FavoriteToggleFlow(t *testing.T) {
	mux := newTestRouter(t)

	rr := postJSON(t, mux, "/api/user/alice/favorite", `{"eventId":5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var fav controllers.FavoritesResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&fav))
	assert.Equal(t, []int{5}, fav.Favorites)

	rr = postJSON(t, mux, "/api/user/alice/favorite", `{"eventId":5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&fav))
	assert.Equal(t, []int{}, fav.Favorites)

	var notifs []domain.Notification
	getJSON(t, mux, "/api/user/alice/notifications", &notifs)
	require.Len(t, notifs, 2)
	assert.Equal(t, "Removed from favorites: Concert 05", notifs[0].Message)
	assert.Equal(t, "Added to favorites: Concert 05", notifs[1].Message)
	assert.False(t, notifs[0].Read)
	assert.False(t, notifs[1].Read)
}

func TestRouter_ReserveAndActions(t *testing.T) {
	mux := newTestRouter(t)

	rr := postJSON(t, mux, "/api/user/bob/reserve", `{"eventId":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, mux, "/api/user/bob/reserve", `{"eventId":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var res controllers.ReservedResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, []int{3}, res.Reserved)

	// identifiers are case-insensitive
	var actions domain.UserActions
	getJSON(t, mux, "/api/user/BOB/actions", &actions)
	assert.Equal(t, []int{3}, actions.Reserved)
	require.Len(t, actions.Notifications, 1, "second reservation is a no-op")
}

func TestRouter_SettingsAndMarkRead(t *testing.T) {
	mux := newTestRouter(t)

	postJSON(t, mux, "/api/user/alice/favorite", `{"eventId":5}`)
	var notifs []domain.Notification
	getJSON(t, mux, "/api/user/alice/notifications", &notifs)
	require.Len(t, notifs, 1)

	rr := postJSON(t, mux, "/api/user/alice/notifications/markread", `{"id":"`+notifs[0].ID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	getJSON(t, mux, "/api/user/alice/notifications", &notifs)
	assert.True(t, notifs[0].Read)

	// unknown id is still a 200
	rr = postJSON(t, mux, "/api/user/alice/notifications/markread", `{"id":"missing"}`)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, mux, "/api/user/alice/settings/notifications", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var enabled controllers.EnabledResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&enabled))
	assert.False(t, enabled.Enabled)

	getJSON(t, mux, "/api/user/alice/notifications", &notifs)
	assert.Empty(t, notifs)
}

func TestRouter_ProfileAndSummary(t *testing.T) {
	mux := newTestRouter(t)

	body := `{"name":"Alice","summary":"hi","email":"alice@example.com","country":"RO","city":"Cluj-Napoca","street":"Str. Unirii 1","avatarDataUrl":""}`
	rr := postJSON(t, mux, "/api/user/alice/profile", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile domain.Profile
	getJSON(t, mux, "/api/user/alice/profile", &profile)
	assert.Equal(t, "Alice", profile.Name)

	var summary domain.UserSummary
	getJSON(t, mux, "/api/user/alice", &summary)
	assert.True(t, summary.NotificationsEnabled)
	assert.Equal(t, "Alice", summary.Profile.Name)
}

func TestRouter_RootRedirect(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "http://test/", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/api/events", rr.Header().Get("Location"))
}

func TestRouter_Contact(t *testing.T) {
	mux := newTestRouter(t)

	rr := postJSON(t, mux, "/api/contact", `{"name":"Alice","email":"alice@example.com","subject":"Hi","message":"Parking?"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp controllers.ContactResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
}
