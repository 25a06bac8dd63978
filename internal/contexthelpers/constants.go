package contexthelpers

type contextKey string

const (
	sessionIDContextKey = contextKey("sessionID")
	usernameContextKey  = contextKey("username")
	csrfTokenContextKey = contextKey("csrfToken")
)
