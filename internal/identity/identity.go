package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAliases maps lowercased first-name tokens to canonical display
// names. Spelling variants of the same person collapse to one entry.
var DefaultAliases = map[string]string{
	"dias":    "Dias",
	"asanali": "Asanali",
	"arseniy": "Arseniy",
	"maxat":   "Maxat",
	"maksat":  "Maxat",
}

// Resolver normalizes free-text sender names to stable identities.
// It is pure and safe for concurrent use: the same input always yields the
// same output, and no call mutates shared state.
type Resolver struct {
	aliases map[string]string
}

func NewResolver(aliases map[string]string) *Resolver {
	m := make(map[string]string, len(aliases))
	for k, v := range aliases {
		m[strings.ToLower(k)] = v
	}
	return &Resolver{aliases: m}
}

// allowedRune reports whether r may appear in a name token.
// ASCII letters, the Cyrillic А-я range plus Ё/ё, and apostrophes.
func allowedRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 'А' && r <= 'я':
		return true
	case r == 'Ё' || r == 'ё':
		return true
	case r == '\'':
		return true
	}
	return false
}

// Canonicalize maps a display name to its canonical identity. The second
// return value is false when no usable name token remains.
func (r *Resolver) Canonicalize(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	cleaned := strings.Map(func(c rune) rune {
		if allowedRune(c) {
			return c
		}
		return ' '
	}, name)

	parts := strings.Fields(cleaned)
	if len(parts) == 0 {
		return "", false
	}

	key := strings.ToLower(parts[0])
	if canonical, ok := r.aliases[key]; ok {
		return canonical, true
	}
	// a fresh Caser per call: cases.Caser carries internal buffers and must
	// not be shared across goroutines
	return cases.Title(language.Und).String(key), true
}
