package geocoder

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics mirrors the index tokenizer's remove_diacritics setting so
// accented input matches unaccented index terms.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// PrepareFTS turns free-form text into an FTS5 MATCH expression. Tokens are
// split on whitespace and punctuation and individually quoted, which escapes
// everything meaningful to the FTS5 query language. When autocomplete is set,
// the final token becomes a prefix match so "bost" finds "Boston" while
// earlier tokens stay exact.
//
// An empty return value means the input had no usable tokens; callers must
// short-circuit to an empty result set instead of querying the index.
func PrepareFTS(text string, autocomplete bool) string {
	if folded, _, err := transform.String(foldDiacritics, text); err == nil {
		text = folded
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('"')
		b.WriteString(strings.ToLower(tok))
		b.WriteByte('"')
		if autocomplete && i == len(tokens)-1 {
			b.WriteByte('*')
		}
	}
	return b.String()
}
