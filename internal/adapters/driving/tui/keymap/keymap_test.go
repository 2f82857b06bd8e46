package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	k := DefaultKeyMap()
	require.NotNil(t, k)

	assert.Contains(t, k.Quit.Keys(), "q")
	assert.Contains(t, k.Quit.Keys(), "ctrl+c")
	assert.Contains(t, k.ToggleInclude.Keys(), "x")
	assert.Contains(t, k.Annotate.Keys(), "a")
	assert.Contains(t, k.NextView.Keys(), "tab")
	assert.Contains(t, k.Text.Keys(), "t")
	assert.Contains(t, k.Relayout.Keys(), "r")
}

func TestDefaultKeyMap_MatchesKeyMsgs(t *testing.T) {
	k := DefaultKeyMap()

	quit := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	assert.True(t, key.Matches(quit, k.Quit))
	assert.False(t, key.Matches(quit, k.Help))

	tab := tea.KeyMsg{Type: tea.KeyTab}
	assert.True(t, key.Matches(tab, k.NextView))
}

func TestHelpGroups(t *testing.T) {
	k := DefaultKeyMap()

	assert.Len(t, k.ShortHelp(), 2)
	full := k.FullHelp()
	require.NotEmpty(t, full)
	for _, group := range full {
		assert.NotEmpty(t, group)
	}
}
