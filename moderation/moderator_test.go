package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestModerator(t *testing.T, words ...string) *Moderator {
	t.Helper()
	m, err := NewModerator(words, '*')
	require.NoError(t, err)
	return m
}

func TestCensor_Simple_Word(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	req.Equal("no **** here", m.Censor("no spam here"))
}

func TestCensor_Keeps_Clean_Content_Untouched(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	content := "perfectly fine message"
	req.Equal(content, m.Censor(content))
}

func TestCensor_Case_Insensitive(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	req.Equal("****", m.Censor("SpAm"))
}

func TestCensor_Leet_Speak(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	req.Equal("****", m.Censor("5p4m"))
}

func TestCensor_Ignores_Inserted_Punctuation(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	req.Equal("*******", m.Censor("s.p.a.m"))
}

func TestCensor_Empty_Input(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam")

	req.Equal("", m.Censor(""))
	req.Equal("...", m.Censor("..."))
}

func TestCensor_Multiple_Words(t *testing.T) {
	req := require.New(t)
	m := newTestModerator(t, "spam", "scam")

	req.Equal("**** and ****", m.Censor("spam and scam"))
}
