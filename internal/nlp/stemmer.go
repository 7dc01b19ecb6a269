package nlp

import "strings"

// stem reduces an Indonesian token to its stem with a deterministic
// affix-stripping rule set: inflectional particles and possessives first,
// then derivational prefixes, then derivational suffixes. Stems shorter
// than three runes are never produced; the original token wins instead.
func stem(token string) string {
	result := token

	result = stripSuffix(result, []string{"lah", "kah", "tah", "pun"}, 3)
	result = stripSuffix(result, []string{"nya", "ku", "mu"}, 3)
	result = stripPrefix(result)
	result = stripSuffix(result, []string{"kan", "an"}, 3)
	// The -i suffix collides with many roots ending in i ("beli"), so it
	// only strips from longer stems.
	result = stripSuffix(result, []string{"i"}, 4)

	if len([]rune(result)) < 3 {
		return token
	}
	return result
}

func stripSuffix(token string, suffixes []string, minStem int) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(token, suffix) && len([]rune(token))-len([]rune(suffix)) >= minStem {
			return strings.TrimSuffix(token, suffix)
		}
	}
	return token
}

// prefixRules is ordered longest-first so "member" strips before "me".
var prefixRules = []struct {
	prefix string
	// substitute restores the root-initial letter the prefix assimilated,
	// e.g. "meny" + "usul" was "susul".
	substitute string
}{
	{"member", "b"},
	{"memper", ""},
	{"menge", ""},
	{"meng", ""},
	{"meny", "s"},
	{"mem", "p"},
	{"men", "t"},
	{"me", ""},
	{"peng", ""},
	{"peny", "s"},
	{"pem", "p"},
	{"pen", "t"},
	{"per", ""},
	{"pe", ""},
	{"ber", ""},
	{"be", ""},
	{"ter", ""},
	{"te", ""},
	{"di", ""},
	{"ke", ""},
	{"se", ""},
}

func stripPrefix(token string) string {
	for _, rule := range prefixRules {
		if !strings.HasPrefix(token, rule.prefix) {
			continue
		}
		rest := strings.TrimPrefix(token, rule.prefix)
		// An assimilating prefix swallowed the root-initial consonant only
		// when the remainder starts with a vowel: men+ulis -> tulis, but
		// men+catat keeps catat.
		if rule.substitute != "" && startsWithVowel(rest) {
			rest = rule.substitute + rest
		}
		if len([]rune(rest)) < 3 {
			continue
		}
		return rest
	}
	return token
}

func startsWithVowel(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
