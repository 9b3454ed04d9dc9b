package httpd

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/helmsley-labs/graphcal/internal/logger"
	"github.com/helmsley-labs/graphcal/internal/msauth"
	"github.com/helmsley-labs/graphcal/internal/view"
)

// pageData feeds the calendar page template. Exactly one of Month, Week and
// Day is set, matching Mode.
type pageData struct {
	Authenticated bool
	User          msauth.User
	Success       bool
	Error         string
	Mode          string
	Month         *view.MonthModel
	Week          *view.WeekModel
	Day           *view.DayModel
	Teams         []view.Detail
	EventCount    int
	LastSync      string
}

// commandFromQuery decodes a navigation command from the page query
// parameters. The boolean reports whether an action was present.
func commandFromQuery(q url.Values) (view.Command, bool) {
	action := q.Get("action")
	if action == "" {
		return view.Command{}, false
	}

	cmd := view.Command{Action: action}

	switch action {
	case view.ActionSwitchView:
		cmd.Mode = view.ViewMode(q.Get("view"))
	case view.ActionNavigate:
		cmd.Delta, _ = strconv.Atoi(q.Get("delta"))
	case view.ActionSelectDate:
		d, err := time.Parse("2006-01-02", q.Get("date"))
		if err != nil {
			return view.Command{}, false
		}
		cmd.Year, cmd.Month, cmd.Day = d.Year(), d.Month(), d.Day()
	}

	return cmd, true
}

// handlePage renders the calendar from the cached snapshot and the
// session's navigation state.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	q := r.URL.Query()

	data := pageData{
		Success: q.Get("success") == "true",
		Error:   q.Get("error"),
	}

	store := view.NewStore()
	nav := s.engine.NewState()

	if sess != nil {
		data.Authenticated = true
		data.User = sess.User

		if snapshot, syncedAt, ok, err := s.cache.LoadSnapshot(sess.User.ID); err != nil {
			logger.Warn("httpd: loading snapshot failed: %v", err)
		} else if ok {
			if err := store.LoadSnapshot(snapshot); err != nil {
				logger.Warn("httpd: discarding malformed snapshot: %v", err)
			}
			if !syncedAt.IsZero() {
				data.LastSync = syncedAt.In(s.engine.Location()).Format("Jan 2, 2006 3:04 PM")
			}
		}

		if stored, ok := s.sessions.Nav(sess.ID); ok {
			nav = stored
		}
	}

	if cmd, ok := commandFromQuery(q); ok {
		if err := s.engine.Dispatch(&nav, cmd); err != nil {
			logger.Debug("httpd: ignoring navigation command: %v", err)
		}
		if sess != nil {
			s.sessions.SetNav(sess.ID, nav)
		}
	}

	data.Mode = string(nav.Mode)
	data.EventCount = store.Len()
	data.Teams = s.engine.TeamsMeetings(store)

	switch nav.Mode {
	case view.ModeWeek:
		m := s.engine.Week(store, nav)
		data.Week = &m
	case view.ModeDay:
		m := s.engine.Day(store, nav)
		data.Day = &m
	default:
		m := s.engine.Month(store, nav)
		data.Month = &m
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "calendar.tmpl", data); err != nil {
		logger.Error("httpd: rendering page failed: %v", err)
	}
}
