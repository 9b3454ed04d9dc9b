package msauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		tenant   string
		authURL  string
		tokenURL string
	}{
		{
			name:     "explicit tenant",
			tenant:   "contoso.onmicrosoft.com",
			authURL:  "https://login.microsoftonline.com/contoso.onmicrosoft.com/oauth2/v2.0/authorize",
			tokenURL: "https://login.microsoftonline.com/contoso.onmicrosoft.com/oauth2/v2.0/token",
		},
		{
			name:     "empty tenant falls back to common",
			tenant:   "",
			authURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
			tokenURL: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := Endpoint(tt.tenant)
			assert.Equal(t, tt.authURL, ep.AuthURL)
			assert.Equal(t, tt.tokenURL, ep.TokenURL)
		})
	}
}

func TestAuthenticator_LoginURL(t *testing.T) {
	a := NewAuthenticator("client-1", "secret", "", "http://localhost:3000/auth/callback")

	loginURL := a.LoginURL("state-abc")

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "login.microsoftonline.com", parsed.Host)
	assert.Equal(t, "/common/oauth2/v2.0/authorize", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "state-abc", q.Get("state"))
	assert.Equal(t, "select_account", q.Get("prompt"))
	assert.Equal(t, "http://localhost:3000/auth/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "Calendars.ReadWrite")
	assert.Contains(t, q.Get("scope"), "offline_access")
}

func TestAuthenticator_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "code-123", r.Form.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer srv.Close()

	a := NewAuthenticator("client-1", "secret", "", "http://localhost:3000/auth/callback")
	a.cfg.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}

	token, err := a.Exchange(context.Background(), "code-123")

	require.NoError(t, err)
	assert.Equal(t, "at-1", token.AccessToken)
	assert.Equal(t, "rt-1", token.RefreshToken)
}

func TestAuthenticator_Exchange_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	a := NewAuthenticator("client-1", "secret", "", "http://localhost:3000/auth/callback")
	a.cfg.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}

	_, err := a.Exchange(context.Background(), "expired-code")

	assert.Error(t, err)
}

func TestAuthenticator_LogoutURL(t *testing.T) {
	a := NewAuthenticator("client-1", "secret", "", "http://localhost:3000/auth/callback")

	logoutURL := a.LogoutURL("http://localhost:3000")

	assert.Equal(t,
		"https://login.microsoftonline.com/common/oauth2/v2.0/logout"+
			"?post_logout_redirect_uri=http%3A%2F%2Flocalhost%3A3000",
		logoutURL)
}
