package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
)

func TestView_Lifecycle(t *testing.T) {
	v := NewView()
	session := domain.Session{UserID: "u", Ready: true}

	s := v.snapshot(true, session)
	assert.Equal(t, domain.PlaceholderQuote(), s.Quote)
	assert.True(t, s.Loading)
	assert.Equal(t, session, s.Session)

	v.setSaveMessage(domain.MsgSaved)
	v.setQuote(domain.Quote{Text: "x"}, "err")
	v.beginGeneration()

	s = v.snapshot(false, session)
	assert.True(t, s.IsGenerating)
	assert.Empty(t, s.QuoteError)
	assert.Empty(t, s.SaveMessage)

	v.endGeneration()
	v.beginSave()
	assert.True(t, v.snapshot(false, session).IsSaving)

	v.endSave(domain.MsgSaved)
	s = v.snapshot(false, session)
	assert.False(t, s.IsSaving)
	assert.Equal(t, domain.MsgSaved, s.SaveMessage)
	assert.Equal(t, domain.Quote{Text: "x"}, v.Quote())
}

func TestView_OverlappingGenerations(t *testing.T) {
	v := NewView()

	v.beginGeneration()
	v.beginGeneration()
	v.endGeneration()
	assert.True(t, v.snapshot(false, domain.Session{}).IsGenerating)

	v.endGeneration()
	assert.False(t, v.snapshot(false, domain.Session{}).IsGenerating)

	v.endGeneration()
	v.beginGeneration()
	assert.True(t, v.snapshot(false, domain.Session{}).IsGenerating)
}
