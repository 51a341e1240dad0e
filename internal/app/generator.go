package app

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// Generator fetches a new quote and replaces the current one.
type Generator struct {
	text    ports.TextGenerator
	view    *View
	flags   ports.FeatureFlags
	metrics *telemetry.QuoteMetrics
	logger  *slog.Logger

	seq atomic.Uint64
}

// NewGenerator wires a Generator. flags and metrics may be nil.
func NewGenerator(
	text ports.TextGenerator,
	view *View,
	flags ports.FeatureFlags,
	metrics *telemetry.QuoteMetrics,
	logger *slog.Logger,
) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		text:    text,
		view:    view,
		flags:   flags,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "app.Generator")),
	}
}

// Generate asks the model for a quote and stores the parsed result. A
// response with no usable text stores the malformed placeholder with a retry
// message; any other failure stores the error placeholder with the error
// text. isGenerating is cleared on every path once no other generation is
// in flight.
//
// Concurrent calls are not deduplicated. The last response to arrive wins
// unless FlagDiscardStaleGenerations is on, in which case only the most
// recently started generation may write.
func (g *Generator) Generate(ctx context.Context) {
	id := g.seq.Add(1)
	start := time.Now()

	g.view.beginGeneration()
	defer g.view.endGeneration()

	text, err := g.text.GenerateText(ctx, domain.QuotePrompt)

	if id != g.seq.Load() && g.flagOn(ctx, FlagDiscardStaleGenerations) {
		g.logger.InfoContext(ctx, "discarding stale generation", slog.Uint64("generation", id))
		g.metrics.ObserveGeneration(telemetry.OutcomeStale, time.Since(start))
		return
	}

	switch {
	case err == nil:
		q := domain.ParseQuote(text)
		g.view.setQuote(q, "")
		g.metrics.ObserveGeneration(telemetry.OutcomeSuccess, time.Since(start))
		g.logger.DebugContext(ctx, "quote generated", slog.String("author", q.Author))

	case domain.IsMalformedGeneration(err):
		g.view.setQuote(domain.Quote{Text: domain.MalformedQuoteText}, domain.MsgGenerationFailed)
		g.metrics.ObserveGeneration(telemetry.OutcomeMalformed, time.Since(start))
		g.logger.ErrorContext(ctx, "unexpected generative response structure", slog.Any("error", err))

	default:
		g.view.setQuote(domain.Quote{Text: domain.ExceptionQuoteText}, domain.GenerationErrorMessage(err))
		g.metrics.ObserveGeneration(telemetry.OutcomeError, time.Since(start))
		g.logger.ErrorContext(ctx, "quote generation failed", slog.Any("error", err))
	}
}

func (g *Generator) flagOn(ctx context.Context, flag string) bool {
	return g.flags != nil && g.flags.IsEnabled(ctx, flag, false)
}
