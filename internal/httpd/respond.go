package httpd

import (
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/helmsley-labs/graphcal/internal/graph"
	"github.com/helmsley-labs/graphcal/internal/logger"
	"github.com/helmsley-labs/graphcal/internal/msauth"
)

// writeJSON encodes a JSON response.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("httpd: encode response: %v", err)
	}
}

// writeError encodes the standard error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeErrorDetails adds the upstream error message to the envelope.
func writeErrorDetails(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}

// writeGraphError writes the envelope for a failed Graph call. A rejected
// token becomes a 401 telling the user to sign in again, a missing event a
// 404. Anything else is a 500 with the handler's own message.
func writeGraphError(w http.ResponseWriter, err error, message string) {
	switch {
	case graph.IsUnauthorised(err):
		writeError(w, http.StatusUnauthorized, "Microsoft session expired. Please sign in again.")
	case graph.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Appointment not found")
	default:
		writeError(w, http.StatusInternalServerError, message)
	}
}

// claimsToken rebuilds an OAuth token from restored cookie claims.
func claimsToken(claims *msauth.CookieClaims) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
	}
	if claims.ExpiresAt != nil {
		token.Expiry = claims.ExpiresAt.Time
	}
	return token
}
