package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClipKeepsShortStrings(t *testing.T) {
	assert.Equal(t, "Phone", clip("Phone", 10))
	assert.Equal(t, "Phone", clip("Phone", 5))
	assert.Equal(t, "", clip("Phone", 0))
}

func TestClipNeverSplitsRunes(t *testing.T) {
	name := "Café au lait — größte Tasse"
	for n := 1; n < len(name); n++ {
		out := clip(name, n)
		assert.True(t, utf8.ValidString(out), "n=%d produced %q", n, out)
		assert.LessOrEqual(t, len([]rune(out)), n, "n=%d", n)
	}
	assert.Equal(t, "Caf…", clip(name, 4))
	assert.Equal(t, "日本…", clip("日本語のラベル", 3))
}
