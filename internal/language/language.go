// Package language holds the closed set of languages offered for comparison
// and the per-backend code tables keyed by it.
package language

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Language is one entry of the registry. The zero value is Spanish.
type Language int

const (
	Spanish Language = iota
	Italian
	Portuguese
	Catalan
	Galician

	numLanguages
)

var names = [numLanguages]string{
	Spanish:    "Spanish",
	Italian:    "Italian",
	Portuguese: "Portuguese",
	Catalan:    "Catalan",
	Galician:   "Galician",
}

// aliases accepts spellings used by older configurations.
var aliases = map[string]Language{
	"portugees": Portuguese,
}

// All returns every registered language in display order.
func All() []Language {
	all := make([]Language, 0, numLanguages)
	for l := Language(0); l < numLanguages; l++ {
		all = append(all, l)
	}
	return all
}

func (l Language) Valid() bool {
	return l >= 0 && l < numLanguages
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return names[l]
}

// Parse resolves a display name, case-insensitively.
func Parse(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for l, name := range names {
		if strings.ToLower(name) == key {
			return Language(l), nil
		}
	}
	if l, ok := aliases[key]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, int(l))
	}
	return []byte(names[l]), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// CodeMap maps each language to a backend's native code. An empty entry
// marks the language as unsupported by that backend.
type CodeMap [numLanguages]string

// Code returns the backend code for l and whether the backend supports it.
func (m *CodeMap) Code(l Language) (string, bool) {
	if !l.Valid() || m[l] == "" {
		return "", false
	}
	return m[l], true
}

// Supported lists the languages that have a code, in registry order.
func (m *CodeMap) Supported() []Language {
	var out []Language
	for l, code := range m {
		if code != "" {
			out = append(out, Language(l))
		}
	}
	return out
}
