package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// Feature flags read by the application layer.
const (
	// FlagGateInteractiveOnAuth keeps the app loading until an identity exists.
	FlagGateInteractiveOnAuth = "gate-interactive-on-auth"

	// FlagDiscardStaleGenerations drops results of superseded generations.
	FlagDiscardStaleGenerations = "discard-stale-generations"
)

// SessionManager resolves the user identity from auth state events.
//
// On an event without a user it signs in with the initial custom token if
// one is configured, falling back to anonymous sign-in when the token is
// refused. The sign-in result arrives as a later event. Once the first event
// has been handled the loading gate opens, whether or not a user exists yet;
// if anonymous sign-in fails the event is abandoned and the gate stays shut.
type SessionManager struct {
	token  string
	flags  ports.FeatureFlags
	logger *slog.Logger

	mu          sync.Mutex
	session     domain.Session
	unsubscribe func()
	closeOnce   sync.Once
}

// NewSessionManager returns a manager in UNINITIALIZED.
func NewSessionManager(flags ports.FeatureFlags, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		flags:   flags,
		logger:  logger.With(slog.String("component", "app.SessionManager")),
		session: domain.Session{State: domain.AuthUninitialized},
	}
}

// Attach registers the auth listener. The auth service reports the current
// user right away and every change after that. initialToken, when set, is
// tried before anonymous sign-in.
func (m *SessionManager) Attach(auth ports.AuthService, initialToken string) {
	m.mu.Lock()
	m.token = initialToken
	m.session.State = domain.AuthListening
	m.mu.Unlock()

	unsubscribe := auth.OnAuthStateChanged(func(ctx context.Context, user *domain.User) {
		m.handle(ctx, auth, user)
	})

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

func (m *SessionManager) handle(ctx context.Context, auth ports.AuthService, user *domain.User) {
	if user != nil {
		m.mu.Lock()
		m.session.UserID = user.UID
		m.session.Ready = true
		m.session.State = domain.AuthAuthenticated
		m.session.ListenerFired = true
		m.mu.Unlock()

		m.logger.InfoContext(ctx, "user authenticated",
			slog.String("user_id", user.UID),
			slog.Bool("anonymous", user.Anonymous),
		)
		return
	}

	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		m.setState(domain.AuthTokenAttempt)

		_, err := auth.SignInWithCustomToken(ctx, token)
		if err == nil {
			m.markFired()
			return
		}

		m.logger.WarnContext(ctx, "custom token sign-in failed, falling back to anonymous",
			slog.Any("error", err))
	}

	m.setState(domain.AuthAnonFallback)

	if _, err := auth.SignInAnonymously(ctx); err != nil {
		m.logger.ErrorContext(ctx, "anonymous sign-in failed", slog.Any("error", err))
		return
	}

	m.markFired()
}

func (m *SessionManager) setState(s domain.AuthState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session.State = s
}

func (m *SessionManager) markFired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session.ListenerFired = true
}

// MarkFailed records a bootstrap failure. The session stays not ready and
// stops loading.
func (m *SessionManager) MarkFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session.State = domain.AuthFailed
	m.session.Ready = false
}

// Session returns a copy of the current session.
func (m *SessionManager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}

// Loading reports whether the app is still waiting for auth.
func (m *SessionManager) Loading(ctx context.Context) bool {
	s := m.Session()

	if s.State == domain.AuthFailed {
		return false
	}

	if !s.ListenerFired {
		return true
	}

	return m.flags != nil && m.flags.IsEnabled(ctx, FlagGateInteractiveOnAuth, false) && !s.Ready
}

// Close removes the auth listener. Later calls do nothing.
func (m *SessionManager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		unsubscribe := m.unsubscribe
		m.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
	})
}
