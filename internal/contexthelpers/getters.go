package contexthelpers

import (
	"context"
)

// SessionID returns the game session id of the request or "" outside a browser session.
func SessionID(ctx context.Context) string {
	sessionID, ok := ctx.Value(sessionIDContextKey).(string)
	if !ok {
		return ""
	}

	return sessionID
}

func Username(ctx context.Context) string {
	username, ok := ctx.Value(usernameContextKey).(string)
	if !ok {
		return ""
	}

	return username
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}
