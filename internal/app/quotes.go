package app

import (
	"context"
	"sync"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/logging"
)

// QuoteApp is the entry point for the view layer. It rejects generate and
// save while the app is loading. Generations may overlap one another; a save
// excludes everything else.
type QuoteApp struct {
	session   *SessionManager
	view      *View
	generator *Generator
	persister *Persister

	mu         sync.Mutex
	generating int
	saving     bool
}

// NewQuoteApp wires the facade.
func NewQuoteApp(session *SessionManager, view *View, generator *Generator, persister *Persister) *QuoteApp {
	return &QuoteApp{
		session:   session,
		view:      view,
		generator: generator,
		persister: persister,
	}
}

// State returns a snapshot for rendering.
func (a *QuoteApp) State(ctx context.Context) ViewState {
	return a.view.snapshot(a.session.Loading(ctx), a.session.Session())
}

// Generate replaces the current quote. Generation failures land in the view
// state, not in the returned error.
func (a *QuoteApp) Generate(ctx context.Context) (ViewState, error) {
	release, err := a.acquire(ctx, actionGenerate)
	if err != nil {
		return a.State(ctx), err
	}
	defer release()

	ctx = a.withUser(ctx)
	a.generator.Generate(ctx)

	return a.State(ctx), nil
}

// Save persists the current quote. Save failures, including unmet
// preconditions, land in the view state's save message.
func (a *QuoteApp) Save(ctx context.Context) (ViewState, error) {
	release, err := a.acquire(ctx, actionSave)
	if err != nil {
		return a.State(ctx), err
	}
	defer release()

	ctx = a.withUser(ctx)
	_ = a.persister.Save(ctx)

	return a.State(ctx), nil
}

func (a *QuoteApp) withUser(ctx context.Context) context.Context {
	return logging.With(ctx, logging.KeyUserID, a.session.Session().UserID)
}

const (
	actionGenerate = "generate"
	actionSave     = "save"
)

func (a *QuoteApp) acquire(ctx context.Context, action string) (func(), error) {
	if a.session.Loading(ctx) {
		return nil, domain.NewUnavailableError("backend", "still loading")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.saving || (action == actionSave && a.generating > 0) {
		return nil, domain.NewConflictError(action, "a conflicting generation or save is in progress")
	}

	if action == actionSave {
		a.saving = true
		return func() {
			a.mu.Lock()
			a.saving = false
			a.mu.Unlock()
		}, nil
	}

	a.generating++
	return func() {
		a.mu.Lock()
		a.generating--
		a.mu.Unlock()
	}, nil
}
