package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMapBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"d"}, km.Draw.Keys())
	assert.Equal(t, []string{"tab"}, km.Panel.Keys())
	assert.Equal(t, []string{"ctrl+v"}, km.Mic.Keys())
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("j", km.Up))
}

func TestBoardHelpSubset(t *testing.T) {
	km := DefaultKeyMap()
	help := km.BoardHelp()
	require.NotEmpty(t, help)

	for _, binding := range help {
		assert.NotEmpty(t, binding.Keys())
		assert.NotEmpty(t, binding.Help().Desc)
	}
}

func TestFullHelpCoversEveryGroup(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()
	require.Len(t, groups, 4)

	total := 0
	for _, group := range groups {
		total += len(group)
	}
	assert.Equal(t, 17, total)
}
