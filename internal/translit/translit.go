// Package translit maps Cyrillic text to Latin and back for matching.
//
// The mapping is intentionally lossy: several Latin letters collapse onto the
// same Cyrillic letter, so a round trip need not reproduce its input.
package translit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var ruToEn = map[rune]string{
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "E",
	'Ж': "ZH", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "H", 'Ц': "TS", 'Ч': "CH", 'Ш': "SH", 'Щ': "SCH",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "YU", 'Я': "YA",
}

var enToRu = map[rune]string{
	'A': "А", 'B': "Б", 'C': "К", 'D': "Д", 'E': "Е", 'F': "Ф",
	'G': "Г", 'H': "Х", 'I': "И", 'J': "ДЖ", 'K': "К", 'L': "Л",
	'M': "М", 'N': "Н", 'O': "О", 'P': "П", 'Q': "К", 'R': "Р",
	'S': "С", 'T': "Т", 'U': "У", 'V': "В", 'W': "В", 'X': "КС",
	'Y': "Й", 'Z': "З",
}

// Upper returns s in NFC form, upper-cased with Russian rules and trimmed.
// Every lookup key in the stores goes through Upper.
func Upper(s string) string {
	return strings.TrimSpace(toUpper(s))
}

// toUpper builds a Caser per call; a Caser keeps state between calls.
func toUpper(s string) string {
	return cases.Upper(language.Russian).String(norm.NFC.String(s))
}

// RuToEn upper-cases text and replaces Cyrillic letters with Latin ones.
// Characters without a mapping pass through unchanged.
func RuToEn(text string) string {
	return substitute(text, ruToEn)
}

// EnToRu upper-cases text and replaces Latin letters with Cyrillic ones.
func EnToRu(text string) string {
	return substitute(text, enToRu)
}

func substitute(text string, table map[rune]string) string {
	src := toUpper(text)

	var b strings.Builder
	b.Grow(len(src))
	for _, r := range src {
		if repl, ok := table[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
