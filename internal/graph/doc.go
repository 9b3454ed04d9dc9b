// Package graph is a thin client for the Microsoft Graph v1.0 REST API.
//
// It covers the slice of Graph this application needs: the signed-in user's
// profile, calendar listings, the calendarView window query, event CRUD and
// Teams online-meeting provisioning. Requests carry a Bearer access token
// obtained by the msauth package and are paced by a token-bucket rate
// limiter with 429 backoff.
//
// Graph allows roughly 10,000 requests per 10 minutes per app; the default
// limits here stay well under that.
package graph
