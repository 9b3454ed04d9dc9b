package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/helmsley-labs/graphcal/internal/graph"
	"github.com/helmsley-labs/graphcal/internal/ics"
	"github.com/helmsley-labs/graphcal/internal/logger"
	"github.com/helmsley-labs/graphcal/internal/msauth"
	"github.com/helmsley-labs/graphcal/internal/view"
)

// handleListEvents proxies the events listing.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	q := r.URL.Query()

	events, err := s.graph.ListEvents(r.Context(), sess.Token.AccessToken,
		q.Get("startDateTime"), q.Get("endDateTime"))
	if err != nil {
		logger.Error("httpd: fetching events failed: %v", err)
		writeGraphError(w, err, "Failed to fetch calendar events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": graph.NormaliseAll(events, s.now()),
	})
}

// syncDays reads the days query parameter, falling back to the configured
// default window.
func (s *Server) syncDays(r *http.Request) int {
	days := s.cfg.Calendar.SyncDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	return days
}

// handleSync pulls the upcoming window from Graph, persists the snapshot
// for the server-rendered page, and returns the normalised events.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	days := s.syncDays(r)
	start := s.now()
	end := start.AddDate(0, 0, days)

	events, err := s.graph.SyncWindow(r.Context(), sess.Token.AccessToken, "", start, end)
	if err != nil {
		logger.Error("httpd: calendar sync failed: %v", err)
		if graph.IsUnauthorised(err) {
			writeError(w, http.StatusUnauthorized, "Microsoft session expired. Please sign in again.")
			return
		}
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to sync calendar", err)
		return
	}

	syncedAt := s.now()
	normalised := graph.NormaliseAll(events, syncedAt)

	snapshot, err := json.Marshal(normalised)
	if err != nil {
		logger.Error("httpd: encoding snapshot failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync calendar")
		return
	}
	if err := s.cache.SaveSnapshot(sess.User.ID, snapshot, syncedAt); err != nil {
		// The sync response is still good; the page will just miss the
		// refreshed snapshot.
		logger.Warn("httpd: persisting snapshot failed: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"syncedAt": syncedAt.UTC().Format(time.RFC3339),
		"period": map[string]any{
			"start": start.UTC().Format(time.RFC3339),
			"end":   end.UTC().Format(time.RFC3339),
			"days":  days,
		},
		"totalEvents": len(normalised),
		"events":      normalised,
	})
}

// handleListCalendars lists the user's calendars.
func (s *Server) handleListCalendars(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	calendars, err := s.graph.ListCalendars(r.Context(), sess.Token.AccessToken)
	if err != nil {
		logger.Error("httpd: fetching calendars failed: %v", err)
		writeGraphError(w, err, "Failed to fetch calendars")
		return
	}

	formatted := make([]map[string]any, 0, len(calendars))
	for _, cal := range calendars {
		owner := ""
		if cal.Owner != nil {
			owner = cal.Owner.Address
		}
		formatted = append(formatted, map[string]any{
			"id":                cal.ID,
			"name":              cal.Name,
			"color":             cal.Color,
			"isDefaultCalendar": cal.IsDefaultCalendar,
			"canEdit":           cal.CanEdit,
			"owner":             owner,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"calendars": formatted})
}

// handleCalendarSync syncs one named calendar. Unlike the default sync it
// does not touch the page snapshot.
func (s *Server) handleCalendarSync(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	calendarID := r.PathValue("id")
	days := s.syncDays(r)
	start := s.now()

	events, err := s.graph.SyncWindow(r.Context(), sess.Token.AccessToken,
		calendarID, start, start.AddDate(0, 0, days))
	if err != nil {
		logger.Error("httpd: calendar %s sync failed: %v", calendarID, err)
		writeGraphError(w, err, "Failed to sync calendar")
		return
	}

	normalised := graph.NormaliseAll(events, s.now())

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"calendarId":  calendarID,
		"totalEvents": len(normalised),
		"events":      normalised,
	})
}

// createEventRequest is the body of POST /api/calendar/events.
type createEventRequest struct {
	Subject         string   `json:"subject"`
	StartDateTime   string   `json:"startDateTime"`
	EndDateTime     string   `json:"endDateTime"`
	Attendees       []string `json:"attendees"`
	Body            string   `json:"body"`
	Location        string   `json:"location"`
	IsOnlineMeeting *bool    `json:"isOnlineMeeting"`
}

// validateTimes checks that both date-times parse and the end is after the
// start. Returns a user-facing message on failure.
func validateTimes(start, end string) string {
	startAt := view.ParseInstant(view.DateTimeZone{DateTime: start})
	endAt := view.ParseInstant(view.DateTimeZone{DateTime: end})
	switch {
	case startAt.IsZero() || endAt.IsZero():
		return "startDateTime and endDateTime must be valid date-times"
	case !endAt.After(startAt):
		return "endDateTime must be after startDateTime"
	}
	return ""
}

// handleCreateEvent creates an event, provisioning a Teams meeting first
// when requested. All validation happens before any Graph call.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Subject == "" || req.StartDateTime == "" || req.EndDateTime == "" {
		writeError(w, http.StatusBadRequest,
			"Missing required fields: subject, startDateTime, and endDateTime are required")
		return
	}
	if msg := validateTimes(req.StartDateTime, req.EndDateTime); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Teams meetings are the point of this app; opt out explicitly.
	online := req.IsOnlineMeeting == nil || *req.IsOnlineMeeting

	attendees := make([]string, 0, len(req.Attendees))
	for _, email := range req.Attendees {
		if email = strings.TrimSpace(email); email != "" {
			attendees = append(attendees, email)
		}
	}

	location := req.Location
	if location == "" && online {
		location = "Microsoft Teams Meeting"
	}

	created, err := s.graph.CreateEvent(r.Context(), sess.Token.AccessToken, graph.CreateEventInput{
		Subject:         req.Subject,
		Start:           req.StartDateTime,
		End:             req.EndDateTime,
		Body:            req.Body,
		Location:        location,
		Attendees:       attendees,
		IsOnlineMeeting: online,
	})
	if err != nil {
		logger.Error("httpd: creating event failed: %v", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to create appointment", err)
		return
	}

	var meetingURL any
	if created.OnlineMeeting != nil && created.OnlineMeeting.JoinURL != "" {
		meetingURL = created.OnlineMeeting.JoinURL
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"event": map[string]any{
			"id":               created.ID,
			"subject":          created.Subject,
			"start":            created.Start,
			"end":              created.End,
			"onlineMeetingUrl": meetingURL,
			"webLink":          created.WebLink,
		},
	})
}

// updateEventRequest is the body of PUT /api/calendar/events/{id}.
type updateEventRequest struct {
	Subject       *string `json:"subject"`
	StartDateTime *string `json:"startDateTime"`
	EndDateTime   *string `json:"endDateTime"`
	Body          *string `json:"body"`
	Location      *string `json:"location"`
}

// handleUpdateEvent applies a partial update to an event.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.StartDateTime != nil && req.EndDateTime != nil {
		if msg := validateTimes(*req.StartDateTime, *req.EndDateTime); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	updated, err := s.graph.UpdateEvent(r.Context(), sess.Token.AccessToken,
		r.PathValue("id"), graph.UpdateEventInput{
			Subject:  req.Subject,
			Start:    req.StartDateTime,
			End:      req.EndDateTime,
			Body:     req.Body,
			Location: req.Location,
		})
	if err != nil {
		logger.Error("httpd: updating event failed: %v", err)
		writeGraphError(w, err, "Failed to update appointment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"event": map[string]any{
			"id":      updated.ID,
			"subject": updated.Subject,
			"start":   updated.Start,
			"end":     updated.End,
		},
	})
}

// handleDeleteEvent deletes an event.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	if err := s.graph.DeleteEvent(r.Context(), sess.Token.AccessToken, r.PathValue("id")); err != nil {
		logger.Error("httpd: deleting event failed: %v", err)
		writeGraphError(w, err, "Failed to delete appointment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

// handleExportICS serves the synced snapshot as an iCalendar download.
func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	snapshot, _, ok, err := s.cache.LoadSnapshot(sess.User.ID)
	if err != nil {
		logger.Error("httpd: loading snapshot failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export calendar")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No synced calendar to export. Sync first.")
		return
	}

	var events []view.Event
	if err := json.Unmarshal(snapshot, &events); err != nil {
		logger.Error("httpd: decoding snapshot failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export calendar")
		return
	}

	w.Header().Set("Content-Type", ics.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="graphcal.ics"`)
	_, _ = w.Write([]byte(ics.Calendar("graphcal", events)))
}

// createMeetingRequest is the body of POST /api/calendar/meeting.
type createMeetingRequest struct {
	Subject       string `json:"subject"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

// handleCreateMeeting creates a standalone Teams meeting without a calendar
// event.
func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request, sess *msauth.Session) {
	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Subject == "" || req.StartDateTime == "" || req.EndDateTime == "" {
		writeError(w, http.StatusBadRequest,
			"Missing required fields: subject, startDateTime, and endDateTime are required")
		return
	}
	if msg := validateTimes(req.StartDateTime, req.EndDateTime); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	meeting, err := s.graph.CreateOnlineMeeting(r.Context(), sess.Token.AccessToken,
		req.Subject, req.StartDateTime, req.EndDateTime)
	if err != nil {
		logger.Error("httpd: creating meeting failed: %v", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to create Teams meeting", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"meeting": map[string]any{
			"id":            meeting.ID,
			"subject":       meeting.Subject,
			"joinUrl":       meeting.JoinURL,
			"joinWebUrl":    meeting.JoinWebURL,
			"startDateTime": meeting.StartDateTime,
			"endDateTime":   meeting.EndDateTime,
		},
	})
}
