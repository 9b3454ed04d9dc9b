package msauth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// CookieName is the signed auth cookie restored on a fresh process.
const CookieName = "auth_token"

// SessionCookieName is the server-side session id cookie.
const SessionCookieName = "graphcal_session"

// ErrInvalidCookie indicates the auth cookie failed signature or claim
// validation.
var ErrInvalidCookie = errors.New("msauth: invalid auth cookie")

// CookieClaims is the payload of the signed auth cookie.
type CookieClaims struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the auth cookie.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewCookieCodec creates a codec with the session TTL. Set secure when the
// app is served over HTTPS.
func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{
		secret: []byte(secret),
		ttl:    SessionTTL,
		secure: secure,
		now:    time.Now,
	}
}

// Issue signs a cookie value carrying the tokens and user identity.
func (c *CookieCodec) Issue(token *oauth2.Token, user User) (string, error) {
	now := c.now()
	claims := CookieClaims{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		User:         user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign auth cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns its claims.
func (c *CookieCodec) Decode(value string) (*CookieClaims, error) {
	var claims CookieClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}
	return &claims, nil
}

// Set writes the auth cookie to the response.
func (c *CookieCodec) Set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the auth cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
