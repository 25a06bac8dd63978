package contexthelpers

import (
	"context"
	"net/http"
)

// SetSession stores the game session id and the display name of the browser session in the request context.
func SetSession(r *http.Request, sessionID string, username string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = context.WithValue(ctx, usernameContextKey, username)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}
