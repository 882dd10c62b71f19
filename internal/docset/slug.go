package docset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns heading text into the anchor the theme generates for it: accents removed,
// lower-cased, every run of punctuation or whitespace replaced by a single '-'. Letters of
// any script are kept. Slugs starting with a digit get a leading '_'.
func Slugify(text string) string {
	plain, _, err := transform.String(stripMarks, text)
	if err != nil {
		plain = text
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}

	slug := b.String()
	if slug != "" && unicode.IsDigit(rune(slug[0])) {
		slug = "_" + slug
	}
	return slug
}
