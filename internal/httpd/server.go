// Package httpd is the web server: Microsoft sign-in routes, the calendar
// JSON API proxying Microsoft Graph, and the server-rendered calendar page.
package httpd

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/helmsley-labs/graphcal/internal/cache"
	"github.com/helmsley-labs/graphcal/internal/config"
	"github.com/helmsley-labs/graphcal/internal/graph"
	"github.com/helmsley-labs/graphcal/internal/msauth"
	"github.com/helmsley-labs/graphcal/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// GraphAPI is the slice of the Graph client the server uses. Narrowed to an
// interface so handler tests can run against a fake.
type GraphAPI interface {
	GetUserInfo(ctx context.Context, token string) (*graph.UserInfo, error)
	ListEvents(ctx context.Context, token, startDateTime, endDateTime string) ([]graph.Event, error)
	SyncWindow(ctx context.Context, token, calendarID string, start, end time.Time) ([]graph.Event, error)
	ListCalendars(ctx context.Context, token string) ([]graph.Calendar, error)
	CreateEvent(ctx context.Context, token string, in graph.CreateEventInput) (*graph.Event, error)
	UpdateEvent(ctx context.Context, token, eventID string, in graph.UpdateEventInput) (*graph.Event, error)
	DeleteEvent(ctx context.Context, token, eventID string) error
	CreateOnlineMeeting(ctx context.Context, token, subject, start, end string) (*graph.Meeting, error)
}

// Server wires the auth flow, the Graph proxy API and the calendar page.
type Server struct {
	cfg      config.Config
	auth     *msauth.Authenticator
	sessions *msauth.SessionStore
	cookies  *msauth.CookieCodec
	graph    GraphAPI
	cache    *cache.Store
	engine   *view.Engine
	tmpl     *template.Template
	mux      *http.ServeMux
	now      func() time.Time
}

// New builds the server. The engine carries the configured render location
// and clock.
func New(cfg config.Config, auth *msauth.Authenticator, api GraphAPI,
	store *cache.Store, engine *view.Engine) (*Server, error) {

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		auth:     auth,
		sessions: msauth.NewSessionStore(),
		cookies:  msauth.NewCookieCodec(cfg.Auth.SessionSecret, cfg.Server.Secure),
		graph:    api,
		cache:    store,
		engine:   engine,
		tmpl:     tmpl,
		now:      time.Now,
	}
	s.routes()
	return s, nil
}

// routes registers all handlers.
func (s *Server) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/callback", s.handleCallback)
	mux.HandleFunc("GET /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/user", s.handleUser)

	mux.HandleFunc("GET /api/status", s.handleStatus)

	mux.HandleFunc("GET /api/calendar/events", s.requireAuth(s.handleListEvents))
	mux.HandleFunc("POST /api/calendar/events", s.requireAuth(s.handleCreateEvent))
	mux.HandleFunc("PUT /api/calendar/events/{id}", s.requireAuth(s.handleUpdateEvent))
	mux.HandleFunc("DELETE /api/calendar/events/{id}", s.requireAuth(s.handleDeleteEvent))
	mux.HandleFunc("GET /api/calendar/sync", s.requireAuth(s.handleSync))
	mux.HandleFunc("GET /api/calendar/calendars", s.requireAuth(s.handleListCalendars))
	mux.HandleFunc("GET /api/calendar/calendars/{id}/sync", s.requireAuth(s.handleCalendarSync))
	mux.HandleFunc("POST /api/calendar/meeting", s.requireAuth(s.handleCreateMeeting))
	mux.HandleFunc("GET /api/calendar/export.ics", s.requireAuth(s.handleExportICS))

	mux.HandleFunc("GET /{$}", s.handlePage)

	s.mux = mux
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// session resolves the request's session: first the session id cookie, then
// the signed auth cookie (which restores a session on a fresh process). An
// invalid auth cookie is cleared silently.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *msauth.Session {
	if c, err := r.Cookie(msauth.SessionCookieName); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess
		}
	}

	c, err := r.Cookie(msauth.CookieName)
	if err != nil {
		return nil
	}

	claims, err := s.cookies.Decode(c.Value)
	if err != nil {
		s.cookies.Clear(w)
		return nil
	}

	sess := s.sessions.Create(claimsToken(claims), claims.User)
	s.setSessionCookie(w, sess.ID)
	return sess
}

// requireAuth guards the /api/calendar routes.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *msauth.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.session(w, r)
		if sess == nil {
			writeError(w, http.StatusUnauthorized,
				"Not authenticated. Please link your Teams account first.")
			return
		}
		next(w, r, sess)
	}
}

// setSessionCookie writes the session id cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     msauth.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(msauth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Server.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session id cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     msauth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Server.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
