package main

// Keys of the values kept in the browser session.
const (
	gameSessionIDKey = "gameSessionID"
	usernameKey      = "username"
)
