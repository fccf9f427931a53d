// Package slug provides the default slug generation for the Piranha data
// layer. Applications can replace it per process by setting the slug
// override on the hook registry; the engine consults the override first and
// falls back to Generate.
package slug

import "strings"

// foldings maps common Latin diacritics to their ASCII equivalents so that
// titles like "Smörgåsbord" produce readable slugs.
var foldings = strings.NewReplacer(
	"å", "a", "ä", "a", "à", "a", "á", "a", "â", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ö", "o", "ò", "o", "ó", "o", "ô", "o", "õ", "o", "ø", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ß", "ss",
)

// Generate converts s into a URL-safe slug: lowercase ASCII letters and
// digits separated by single hyphens. Slashes are preserved so hierarchical
// slugs ("blog/2026/post") survive. Everything else is dropped or collapsed.
func Generate(s string) string {
	s = foldings.Replace(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // swallow leading separators
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '/':
			b.WriteRune(r)
			lastHyphen = true // no hyphen directly after a slash
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := b.String()
	out = strings.Trim(out, "-/")
	// A trailing separator before a slash leaves "-/" pairs; tidy them up.
	out = strings.ReplaceAll(out, "-/", "/")
	return out
}
