package httpd

import (
	"net/http"
	"net/url"

	"github.com/helmsley-labs/graphcal/internal/logger"
	"github.com/helmsley-labs/graphcal/internal/msauth"
)

// handleLogin redirects the browser to the Microsoft authorize URL.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state := s.sessions.NewState()
	http.Redirect(w, r, s.auth.LoginURL(state), http.StatusFound)
}

// handleCallback completes the authorization-code flow: verify state,
// exchange the code, look up the user's profile, start a session and set
// both cookies.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		desc := q.Get("error_description")
		if desc == "" {
			desc = errParam
		}
		logger.Warn("httpd: auth error from Microsoft: %s", desc)
		http.Redirect(w, r, "/?error="+url.QueryEscape(desc), http.StatusFound)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape("No authorization code received"), http.StatusFound)
		return
	}

	if !s.sessions.ConsumeState(q.Get("state")) {
		logger.Warn("httpd: callback with unknown or expired state")
		http.Redirect(w, r, "/?error="+url.QueryEscape("Authentication failed"), http.StatusFound)
		return
	}

	token, err := s.auth.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("httpd: token exchange failed: %v", err)
		http.Redirect(w, r, "/?error="+url.QueryEscape("Authentication failed"), http.StatusFound)
		return
	}

	info, err := s.graph.GetUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		logger.Error("httpd: fetching user profile failed: %v", err)
		http.Redirect(w, r, "/?error="+url.QueryEscape("Authentication failed"), http.StatusFound)
		return
	}

	user := msauth.User{Name: info.DisplayName, Email: info.Email(), ID: info.ID}
	sess := s.sessions.Create(token, user)
	s.setSessionCookie(w, sess.ID)

	if signed, err := s.cookies.Issue(token, user); err != nil {
		logger.Warn("httpd: issuing auth cookie failed: %v", err)
	} else {
		s.cookies.Set(w, signed)
	}

	logger.Info("httpd: user authenticated: %s", user.Email)
	http.Redirect(w, r, "/?success=true", http.StatusFound)
}

// handleLogout destroys the session, clears both cookies and sends the
// browser to the Microsoft sign-out page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(msauth.SessionCookieName); err == nil {
		s.sessions.Delete(c.Value)
	}
	s.clearSessionCookie(w)
	s.cookies.Clear(w)

	http.Redirect(w, r, s.auth.LogoutURL(s.cfg.Server.BaseURL), http.StatusFound)
}

// handleUser returns the signed-in user's identity.
func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": sess.User})
}

// handleStatus reports whether the request carries a valid session.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": false, "user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": true, "user": sess.User})
}
