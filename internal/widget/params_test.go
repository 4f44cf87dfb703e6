package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	p := Normalize(Params{})
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, LangES, p.Lang)
}

func TestNormalize_KnownValues(t *testing.T) {
	p := Normalize(Params{Theme: " Dark ", Lang: "EN", APIKey: " key-1 "})
	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, LangEN, p.Lang)
	assert.Equal(t, "key-1", p.APIKey)
}

func TestNormalize_UnknownValues(t *testing.T) {
	p := Normalize(Params{Theme: "neon", Lang: "pt"})
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, LangES, p.Lang)
}

func TestKeyRing(t *testing.T) {
	var nilRing *KeyRing
	assert.True(t, nilRing.Allows("anything"))
	assert.True(t, NewKeyRing(nil).Allows(""))

	ring := NewKeyRing([]string{"alpha", "beta"})
	assert.False(t, ring.Open())
	assert.True(t, ring.Allows("beta"))
	assert.False(t, ring.Allows("gamma"))
	assert.False(t, ring.Allows(""))
}
