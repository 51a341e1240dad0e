package app

import (
	"sync"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

// ViewState is everything a client needs to render the page.
type ViewState struct {
	Quote        domain.Quote
	QuoteError   string
	IsGenerating bool
	SaveMessage  string
	IsSaving     bool
	Loading      bool
	Session      domain.Session
}

// View holds the UI state that is not owned by the session. The generator
// writes the quote and its flags, the persister writes the save flags.
type View struct {
	mu           sync.Mutex
	quote        domain.Quote
	quoteError   string
	generating   int
	saveMessage  string
	isSaving     bool
}

// NewView starts with the placeholder quote.
func NewView() *View {
	return &View{quote: domain.PlaceholderQuote()}
}

// Quote returns the current quote.
func (v *View) Quote() domain.Quote {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.quote
}

func (v *View) beginGeneration() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generating++
	v.quoteError = ""
	v.saveMessage = ""
}

func (v *View) setQuote(q domain.Quote, errMsg string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.quote = q
	v.quoteError = errMsg
}

// endGeneration clears isGenerating once no generation is in flight.
func (v *View) endGeneration() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.generating > 0 {
		v.generating--
	}
}

func (v *View) beginSave() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.isSaving = true
	v.saveMessage = ""
}

func (v *View) endSave(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.isSaving = false
	v.saveMessage = msg
}

func (v *View) setSaveMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.saveMessage = msg
}

func (v *View) snapshot(loading bool, session domain.Session) ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ViewState{
		Quote:        v.quote,
		QuoteError:   v.quoteError,
		IsGenerating: v.generating > 0,
		SaveMessage:  v.saveMessage,
		IsSaving:     v.isSaving,
		Loading:      loading,
		Session:      session,
	}
}
