package detail

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugNonWord = regexp.MustCompile(`[^\w-]+`)
	slugDashes  = regexp.MustCompile(`--+`)
)

// Slugify reduces a location name to its legacy identifier form:
// "Bávaro Punta Cana" becomes "bavaro-punta-cana".
func Slugify(text string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), text)
	if err != nil {
		stripped = text
	}

	slug := strings.TrimSpace(strings.ToLower(stripped))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugNonWord.ReplaceAllString(slug, "")
	return slugDashes.ReplaceAllString(slug, "-")
}

// Unslugify turns a slug back into a readable, title-cased name. Accents lost
// by Slugify stay lost.
func Unslugify(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' })
	return cases.Title(language.Spanish).String(strings.Join(words, " "))
}
