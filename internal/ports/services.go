// Package ports defines the contracts the application layer needs from the
// outside world: an identity provider with a push-style state listener, an
// append-only document store, and a generative text endpoint.
//
// Port Design Principles:
//   - Context as first parameter on anything that blocks
//   - Domain types in, domain types out; adapters own the wire formats
//   - Errors wrap the domain sentinels (ErrUnavailable, ErrTokenRejected, ...)
package ports

import (
	"context"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

// AuthStateListener receives the current identity on registration and after
// every change. A nil user means nobody is signed in.
type AuthStateListener func(ctx context.Context, user *domain.User)

// AuthService is the identity provider.
//
// Implementations deliver listener events one at a time and in order, never
// concurrently with each other. A listener may call the sign-in methods; the
// resulting state change is delivered as a later event.
type AuthService interface {
	// OnAuthStateChanged registers listener and returns the function that
	// removes it. The returned function is safe to call more than once.
	OnAuthStateChanged(listener AuthStateListener) (unsubscribe func())

	// SignInWithCustomToken exchanges a one-time token for an identity.
	// Returns an error wrapping domain.ErrTokenRejected for bad tokens.
	SignInWithCustomToken(ctx context.Context, token string) (*domain.User, error)

	// SignInAnonymously creates a fresh anonymous identity.
	SignInAnonymously(ctx context.Context) (*domain.User, error)

	// SignOut clears the current identity.
	SignOut(ctx context.Context) error

	// CurrentUser returns the signed-in user or nil.
	CurrentUser() *domain.User
}

// DocumentStore appends documents to hierarchical collections such as
// artifacts/{appId}/users/{userId}/quotes.
type DocumentStore interface {
	// AddDocument stores record under collectionPath and returns the new
	// document id.
	AddDocument(ctx context.Context, collectionPath string, record domain.PersistedQuoteRecord) (string, error)
}

// TextGenerator sends a single-turn prompt to a generative model.
type TextGenerator interface {
	// GenerateText returns the first candidate's first text part.
	// Returns an error wrapping domain.ErrMalformedGeneration when the
	// response parsed but carried no candidate text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
