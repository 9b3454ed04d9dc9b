// Package msauth handles Microsoft account sign-in for the web app.
//
// It wraps the OAuth2 authorization-code flow against
// login.microsoftonline.com, keeps signed-in users in an in-memory session
// store, and issues a signed JWT cookie alongside the session cookie so a
// freshly started process can restore a session without server-side state.
package msauth
