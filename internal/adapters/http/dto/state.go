package dto

import (
	"github.com/jsamuelsen/inspire-quotes/internal/app"
)

// QuoteResponse is the current quote.
type QuoteResponse struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// SessionResponse is the identity as the client sees it.
type SessionResponse struct {
	UserID string `json:"userId,omitempty"`
	Ready  bool   `json:"ready"`
	State  string `json:"state"`
}

// StateResponse is returned by every /api/v1 endpoint.
type StateResponse struct {
	Quote        QuoteResponse   `json:"quote"`
	QuoteError   string          `json:"quoteError,omitempty"`
	IsGenerating bool            `json:"isGenerating"`
	SaveMessage  string          `json:"saveMessage,omitempty"`
	IsSaving     bool            `json:"isSaving"`
	Loading      bool            `json:"loading"`
	Session      SessionResponse `json:"session"`
}

// FromViewState converts the application snapshot.
func FromViewState(s app.ViewState) StateResponse {
	return StateResponse{
		Quote: QuoteResponse{
			Text:   s.Quote.Text,
			Author: s.Quote.Author,
		},
		QuoteError:   s.QuoteError,
		IsGenerating: s.IsGenerating,
		SaveMessage:  s.SaveMessage,
		IsSaving:     s.IsSaving,
		Loading:      s.Loading,
		Session: SessionResponse{
			UserID: s.Session.UserID,
			Ready:  s.Session.Ready,
			State:  string(s.Session.State),
		},
	}
}
