package httpd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/helmsley-labs/graphcal/internal/cache"
	"github.com/helmsley-labs/graphcal/internal/config"
	"github.com/helmsley-labs/graphcal/internal/graph"
	"github.com/helmsley-labs/graphcal/internal/msauth"
	"github.com/helmsley-labs/graphcal/internal/view"
)

// fixedNow anchors all handler tests to a Saturday in June 2024.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeGraph implements GraphAPI with per-call hooks.
type fakeGraph struct {
	getUserInfo         func(ctx context.Context, token string) (*graph.UserInfo, error)
	listEvents          func(ctx context.Context, token, start, end string) ([]graph.Event, error)
	syncWindow          func(ctx context.Context, token, calendarID string, start, end time.Time) ([]graph.Event, error)
	listCalendars       func(ctx context.Context, token string) ([]graph.Calendar, error)
	createEvent         func(ctx context.Context, token string, in graph.CreateEventInput) (*graph.Event, error)
	updateEvent         func(ctx context.Context, token, eventID string, in graph.UpdateEventInput) (*graph.Event, error)
	deleteEvent         func(ctx context.Context, token, eventID string) error
	createOnlineMeeting func(ctx context.Context, token, subject, start, end string) (*graph.Meeting, error)
}

func (f *fakeGraph) GetUserInfo(ctx context.Context, token string) (*graph.UserInfo, error) {
	return f.getUserInfo(ctx, token)
}

func (f *fakeGraph) ListEvents(ctx context.Context, token, start, end string) ([]graph.Event, error) {
	return f.listEvents(ctx, token, start, end)
}

func (f *fakeGraph) SyncWindow(ctx context.Context, token, calendarID string, start, end time.Time) ([]graph.Event, error) {
	return f.syncWindow(ctx, token, calendarID, start, end)
}

func (f *fakeGraph) ListCalendars(ctx context.Context, token string) ([]graph.Calendar, error) {
	return f.listCalendars(ctx, token)
}

func (f *fakeGraph) CreateEvent(ctx context.Context, token string, in graph.CreateEventInput) (*graph.Event, error) {
	return f.createEvent(ctx, token, in)
}

func (f *fakeGraph) UpdateEvent(ctx context.Context, token, eventID string, in graph.UpdateEventInput) (*graph.Event, error) {
	return f.updateEvent(ctx, token, eventID, in)
}

func (f *fakeGraph) DeleteEvent(ctx context.Context, token, eventID string) error {
	return f.deleteEvent(ctx, token, eventID)
}

func (f *fakeGraph) CreateOnlineMeeting(ctx context.Context, token, subject, start, end string) (*graph.Meeting, error) {
	return f.createOnlineMeeting(ctx, token, subject, start, end)
}

// newTestServer builds a server with a temp cache, a UTC engine and a fixed
// clock.
func newTestServer(t *testing.T, api GraphAPI) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.ClientID = "client-1"
	cfg.Auth.ClientSecret = "hush"
	cfg.Auth.SessionSecret = "signing-key"

	store, err := cache.Open(filepath.Join(t.TempDir(), "graphcal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	engine := view.NewEngine(time.UTC, func() time.Time { return fixedNow })
	auth := msauth.NewAuthenticator(cfg.Auth.ClientID, cfg.Auth.ClientSecret, "", cfg.Auth.RedirectURL)

	s, err := New(cfg, auth, api, store, engine)
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }

	return s
}

// signIn creates a session directly and returns its cookie.
func signIn(t *testing.T, s *Server) (*msauth.Session, *http.Cookie) {
	t.Helper()

	sess := s.sessions.Create(
		&oauth2.Token{AccessToken: "at-1", RefreshToken: "rt-1"},
		msauth.User{Name: "Dana Scully", Email: "dana@example.com", ID: "u1"},
	)
	return sess, &http.Cookie{Name: msauth.SessionCookieName, Value: sess.ID}
}

// doRequest runs a request through the server and returns the recorder.
func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}
