package domain

// AuthState is where the session manager sits in its sign-in sequence.
type AuthState string

const (
	AuthUninitialized AuthState = "UNINITIALIZED"
	AuthListening     AuthState = "LISTENING"
	AuthTokenAttempt  AuthState = "TOKEN_ATTEMPT"
	AuthAnonFallback  AuthState = "ANON_FALLBACK"
	AuthAuthenticated AuthState = "AUTHENTICATED"
	AuthFailed        AuthState = "FAILED"
)

// User is an identity reported by the auth backend.
type User struct {
	UID       string
	Anonymous bool
}

// Session is the identity as the rest of the app sees it.
//
// Ready flips to true on the first identity and stays true. ListenerFired
// flips to true once the first auth event has been handled, whether or not
// an identity exists at that point.
type Session struct {
	UserID        string
	Ready         bool
	ListenerFired bool
	State         AuthState
}

// HasIdentity reports whether a user id has been captured.
func (s Session) HasIdentity() bool {
	return s.UserID != ""
}
