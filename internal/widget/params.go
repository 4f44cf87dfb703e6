// Package widget describes how the booking widget is embedded on a page.
package widget

import (
	"crypto/subtle"
	"strings"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LangES = "es"
	LangEN = "en"
)

// Params are the embedding parameters of one widget mount. Theme and Lang
// only affect presentation; scheduling ignores them.
type Params struct {
	Theme  string `json:"theme"`
	Lang   string `json:"lang"`
	APIKey string `json:"api_key,omitempty"`
}

// Normalize applies the defaults (light, es) and replaces unknown values.
func Normalize(p Params) Params {
	p.Theme = strings.ToLower(strings.TrimSpace(p.Theme))
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}

	p.Lang = strings.ToLower(strings.TrimSpace(p.Lang))
	if p.Lang != LangEN {
		p.Lang = LangES
	}

	p.APIKey = strings.TrimSpace(p.APIKey)
	return p
}

// KeyRing is the allow-list of API keys that may open sessions. An empty
// ring accepts any key.
type KeyRing struct {
	keys []string
}

func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

func (k *KeyRing) Open() bool {
	return k == nil || len(k.keys) == 0
}

func (k *KeyRing) Allows(key string) bool {
	if k.Open() {
		return true
	}
	for _, allowed := range k.keys {
		if subtle.ConstantTimeCompare([]byte(allowed), []byte(key)) == 1 {
			return true
		}
	}
	return false
}
