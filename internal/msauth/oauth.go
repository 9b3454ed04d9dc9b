package msauth

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// Scopes requested at sign-in. Calendar read-write and online-meeting
// creation on top of the OpenID Connect basics; offline_access yields a
// refresh token.
var Scopes = []string{
	"openid",
	"profile",
	"offline_access",
	"User.Read",
	"Calendars.ReadWrite",
	"OnlineMeetings.ReadWrite",
}

// DefaultTenant is the multi-tenant authority used when no tenant is
// configured.
const DefaultTenant = "common"

// Endpoint returns the Microsoft identity platform v2.0 endpoint for a
// tenant.
func Endpoint(tenant string) oauth2.Endpoint {
	if tenant == "" {
		tenant = DefaultTenant
	}
	base := "https://login.microsoftonline.com/" + url.PathEscape(tenant) + "/oauth2/v2.0"
	return oauth2.Endpoint{
		AuthURL:  base + "/authorize",
		TokenURL: base + "/token",
	}
}

// Authenticator runs the OAuth2 authorization-code flow against the
// Microsoft identity platform.
type Authenticator struct {
	cfg    *oauth2.Config
	tenant string
}

// NewAuthenticator creates an Authenticator for the given app registration.
// An empty tenant means the multi-tenant "common" authority.
func NewAuthenticator(clientID, clientSecret, tenant, redirectURL string) *Authenticator {
	if tenant == "" {
		tenant = DefaultTenant
	}
	return &Authenticator{
		tenant: tenant,
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     Endpoint(tenant),
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
		},
	}
}

// LoginURL returns the authorize URL to redirect the browser to. The state
// parameter is echoed back at the callback and must be verified there.
// prompt=select_account forces the account picker even with a live SSO
// session.
func (a *Authenticator) LoginURL(state string) string {
	return a.cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades an authorization code for tokens.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// TokenSource returns a refreshing token source for a stored token.
func (a *Authenticator) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return a.cfg.TokenSource(ctx, token)
}

// LogoutURL returns the Microsoft sign-out URL, sending the browser back to
// postLogoutRedirect afterwards.
func (a *Authenticator) LogoutURL(postLogoutRedirect string) string {
	return fmt.Sprintf(
		"https://login.microsoftonline.com/%s/oauth2/v2.0/logout?post_logout_redirect_uri=%s",
		url.PathEscape(a.tenant), url.QueryEscape(postLogoutRedirect))
}
