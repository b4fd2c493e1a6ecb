package common

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser upper-cases the first letter of a word and keeps the rest intact,
// so acronyms like "userID" become "UserID" rather than "Userid".
var titleCaser = cases.Title(language.Und, cases.NoLower)

// lowerCaser is used to lower the leading rune of an identifier.
var lowerCaser = cases.Lower(language.Und)

// Exported returns name with its first letter upper-cased.
func Exported(name string) string {
	if name == "" {
		return ""
	}

	return titleCaser.String(name[:firstRuneLen(name)]) + name[firstRuneLen(name):]
}

// Unexported returns name with its leading letter (or leading acronym) lower-cased.
// "ID" becomes "id", "URLPath" becomes "urlPath", "Name" becomes "name".
func Unexported(name string) string {
	if name == "" {
		return ""
	}

	runes := []rune(name)

	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	switch {
	case upper == 0:
		return name
	case upper == 1 || upper == len(runes):
		return lowerCaser.String(string(runes[:upper])) + string(runes[upper:])
	default:
		// Keep the last upper rune of the acronym: it starts the next word.
		return lowerCaser.String(string(runes[:upper-1])) + string(runes[upper-1:])
	}
}

// Ident returns name cased for the requested export status. Unexported
// names that collide with a Go keyword get a trailing underscore.
func Ident(name string, exported bool) string {
	if exported {
		return Exported(name)
	}

	id := Unexported(name)
	if token.IsKeyword(id) {
		return id + "_"
	}

	return id
}

// JoinCamel joins identifier parts into one camelCase identifier. The first
// part keeps its case; following parts get their first letter upper-cased.
// Separators ("_", "-") inside parts are dropped.
func JoinCamel(parts ...string) string {
	var b strings.Builder

	for _, p := range parts {
		for _, word := range strings.FieldsFunc(p, isIdentSeparator) {
			if b.Len() == 0 {
				b.WriteString(word)
				continue
			}

			b.WriteString(Exported(word))
		}
	}

	return b.String()
}

func isIdentSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func firstRuneLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}
