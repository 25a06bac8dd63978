package main

import (
	"net/http"
	"time"
)

const timeoutBody = `{"status":"error","kind":"timeout","message":"the request took too long"}`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// We want the timeout to be a little shorter than the server's write timeout so that the
	// timeout handler has a chance to respond before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	th := http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handlers that finish in time replace this with their own content type.
		w.Header().Set("Content-Type", "application/json")
		th.ServeHTTP(w, r)
	})
}
