package domain

import (
	"regexp"
	"strings"
	"time"
)

// User-visible literals. Clients match on these, so they are kept verbatim.
const (
	PlaceholderText   = "Click 'Generate New Quote' to get inspired!"
	PlaceholderAuthor = "Welcome"

	UnknownAuthor = "Unknown"

	MalformedQuoteText  = "Error: Could not generate quote."
	ExceptionQuoteText  = "Error: An unexpected error occurred."
	MsgGenerationFailed = "Failed to generate quote. Please try again."
	msgErrorPrefix      = "An error occurred: "

	MsgNotReady       = "Firebase not ready or user not authenticated."
	MsgNothingToSave  = "Please generate a quote before saving."
	MsgSaved          = "Quote saved successfully!"
	msgSaveFailPrefix = "Error saving quote: "

	unknownError = "Unknown error"
)

// QuotePrompt is sent verbatim to the generative endpoint. The parser below
// depends on the format it requests.
const QuotePrompt = "Generate a short, inspiring quote (max 20 words) with an author. " +
	"Format as 'Quote: \"[The quote]\" Author: [The author]'"

// ISO8601Millis is the createdAt layout: UTC with millisecond precision.
const ISO8601Millis = "2006-01-02T15:04:05.000Z"

// Quote is the single "current" quote. It is replaced wholesale, never merged.
type Quote struct {
	Text   string
	Author string
}

// PlaceholderQuote is shown before any generation has happened.
func PlaceholderQuote() Quote {
	return Quote{Text: PlaceholderText, Author: PlaceholderAuthor}
}

// IsSaveable reports whether the quote came from a generation.
func (q Quote) IsSaveable() bool {
	return q.Text != "" && q.Text != PlaceholderText
}

// PersistedQuoteRecord is the append-only document written on save.
type PersistedQuoteRecord struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

// NewPersistedQuoteRecord stamps q with createdAt in ISO-8601 UTC.
func NewPersistedQuoteRecord(q Quote, now time.Time) PersistedQuoteRecord {
	return PersistedQuoteRecord{
		Text:      q.Text,
		Author:    q.Author,
		CreatedAt: now.UTC().Format(ISO8601Millis),
	}
}

// QuotesCollectionPath is the per-user collection a saved quote lands in.
func QuotesCollectionPath(appID, userID string) string {
	return "artifacts/" + appID + "/users/" + userID + "/quotes"
}

var (
	quotePattern  = regexp.MustCompile(`Quote: "([^"]+)"`)
	authorPattern = regexp.MustCompile(`Author: (.+)`)
)

// ParseQuote extracts a quote from free model text in two stages. The quote
// comes from the quoted span after "Quote:" or, failing that, from whatever
// precedes "Author:". The author comes from the rest of the "Author:" line
// or defaults to Unknown.
func ParseQuote(text string) Quote {
	var q Quote

	if m := quotePattern.FindStringSubmatch(text); m != nil {
		q.Text = m[1]
	} else {
		before, _, _ := strings.Cut(text, "Author:")
		q.Text = strings.TrimSpace(strings.Replace(before, "Quote:", "", 1))
	}

	if m := authorPattern.FindStringSubmatch(text); m != nil {
		q.Author = strings.TrimSpace(m[1])
	} else {
		q.Author = UnknownAuthor
	}

	return q
}

// GenerationErrorMessage renders an unexpected generation failure for the user.
func GenerationErrorMessage(err error) string {
	return msgErrorPrefix + errorText(err)
}

// SaveErrorMessage renders a failed write for the user.
func SaveErrorMessage(err error) string {
	return msgSaveFailPrefix + errorText(err)
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}

	return err.Error()
}
