package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// SaveMessageTTL is how long a save outcome stays visible.
const SaveMessageTTL = 3 * time.Second

var (
	errNotReady      = errors.New(domain.MsgNotReady)
	errNothingToSave = errors.New(domain.MsgNothingToSave)
	errEmptyDocID    = errors.New("store returned an empty document id")
)

// SessionSource reports the current identity.
type SessionSource interface {
	Session() domain.Session
}

// PersisterConfig wires a Persister.
//
// Store returns the document store, or nil while the backend is not up.
// Now and AfterFunc default to time.Now and time.AfterFunc.
type PersisterConfig struct {
	Session   SessionSource
	Store     func() ports.DocumentStore
	AppID     string
	View      *View
	Exec      *Executor
	Metrics   *telemetry.QuoteMetrics
	Logger    *slog.Logger
	Now       func() time.Time
	AfterFunc func(d time.Duration, f func())
}

// Persister appends the current quote to the user's collection.
type Persister struct {
	session   SessionSource
	store     func() ports.DocumentStore
	appID     string
	view      *View
	exec      *Executor
	metrics   *telemetry.QuoteMetrics
	logger    *slog.Logger
	now       func() time.Time
	afterFunc func(time.Duration, func())
}

type saveInput struct {
	store  ports.DocumentStore
	userID string
	quote  domain.Quote
}

// NewPersister fills in defaults for the optional fields.
func NewPersister(cfg PersisterConfig) *Persister {
	p := &Persister{
		session:   cfg.Session,
		store:     cfg.Store,
		appID:     cfg.AppID,
		view:      cfg.View,
		exec:      cfg.Exec,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       cfg.Now,
		afterFunc: cfg.AfterFunc,
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.logger = p.logger.With(slog.String("component", "app.Persister"))

	if p.exec == nil {
		p.exec = NewExecutor(p.logger)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.afterFunc == nil {
		p.afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}

	return p
}

// Save writes the current quote. Precondition failures set their message
// with no timer and touch nothing else. Otherwise isSaving is raised for the
// write, the outcome message is set, and it is cleared SaveMessageTTL later
// regardless of anything that happened in between.
func (p *Persister) Save(ctx context.Context) error {
	in := saveInput{
		userID: p.session.Session().UserID,
		quote:  p.view.Quote(),
	}
	if p.store != nil {
		in.store = p.store()
	}

	op := Operation[saveInput, string, string]{
		Name:     "save_quote",
		Validate: p.validate,
		Perform: func(ctx context.Context, in saveInput) (string, error) {
			p.view.beginSave()

			return in.store.AddDocument(ctx,
				domain.QuotesCollectionPath(p.appID, in.userID),
				domain.NewPersistedQuoteRecord(in.quote, p.now()),
			)
		},
		Verify: func(_ context.Context, _ saveInput, id string) error {
			if id == "" {
				return errEmptyDocID
			}
			return nil
		},
		Respond: func(ctx context.Context, in saveInput, id string) (string, error) {
			p.logger.InfoContext(ctx, "quote saved",
				slog.String("user_id", in.userID),
				slog.String("document_id", id),
			)
			return domain.MsgSaved, nil
		},
	}

	msg, err := Execute(ctx, p.exec, op, in)
	if step, ok := FailedStep(err); ok && step == StepValidate {
		p.view.setSaveMessage(errors.Unwrap(err).Error())
		p.metrics.ObserveSave(telemetry.OutcomeRejected)
		return err
	}

	outcome := telemetry.OutcomeSuccess
	if err != nil {
		msg = domain.SaveErrorMessage(errors.Unwrap(err))
		outcome = telemetry.OutcomeError
	}

	p.view.endSave(msg)
	p.metrics.ObserveSave(outcome)
	p.afterFunc(SaveMessageTTL, func() { p.view.setSaveMessage("") })

	return err
}

func (p *Persister) validate(_ context.Context, in saveInput) error {
	s := p.session.Session()
	if in.store == nil || in.userID == "" || !s.Ready {
		return errNotReady
	}

	if !in.quote.IsSaveable() {
		return errNothingToSave
	}

	return nil
}
