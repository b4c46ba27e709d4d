// Package parser extracts structured features from free-text product names.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/translit"
	"github.com/shopspring/decimal"
)

var (
	litersPattern      = regexp.MustCompile(`(\d+[,.]?\d*)\s*[ЛL]`)
	millilitersPattern = regexp.MustCompile(`(\d+)\s*[МM][ЛL]`)
	parenthesesPattern = regexp.MustCompile(`\(([^)]+)\)`)
)

// Parser turns product names into model.ProductFeatures.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	packaging    []keyword[model.Packaging]
	carbonation  []keyword[model.Carbonation]
	productTypes []keyword[model.ProductType]
	attributes   []keyword[model.Attribute]
	flavors      []string
	learned      []string
}

// New creates a parser. The knowledge base is optional; when present its
// learned flavors back up the built-in flavor list.
func New(kb *model.KnowledgeBase) *Parser {
	p := &Parser{
		packaging:    defaultPackaging(),
		carbonation:  defaultCarbonation(),
		productTypes: defaultProductTypes(),
		attributes:   defaultAttributes(),
		flavors:      DefaultFlavors,
	}

	for _, flavor := range kb.FlavorsByCount() {
		if f := translit.Upper(flavor); f != "" {
			p.learned = append(p.learned, f)
		}
	}

	return p
}

// Parse extracts every feature it can from name. It never fails; anything it
// cannot infer is left nil.
func (p *Parser) Parse(name string) model.ProductFeatures {
	text := translit.Upper(name)

	features := model.ProductFeatures{Original: name}
	if text == "" {
		return features
	}

	if volume, ok := ExtractVolume(text); ok {
		features.Volume = model.Ptr(volume)
		features.VolumeUnit = model.Ptr(model.VolumeUnitLiters)
	}
	if pack, ok := firstHit(text, p.packaging); ok {
		features.Packaging = model.Ptr(pack)
	}
	if carb, ok := firstHit(text, p.carbonation); ok {
		features.Carbonation = model.Ptr(carb)
	}
	features.SugarFree = containsAny(text, sugarFreePhrases)
	if kind, ok := firstHit(text, p.productTypes); ok {
		features.ProductType = model.Ptr(kind)
	}
	if brand, ok := guessBrand(text); ok {
		features.Brand = model.Ptr(brand)
	}
	if flavor, ok := p.guessFlavor(text); ok {
		features.Flavor = model.Ptr(flavor)
	}
	features.Attributes = p.extractAttributes(text)

	return features
}

// HasPackaging reports whether any packaging keyword occurs in name.
func (p *Parser) HasPackaging(name string) bool {
	_, ok := firstHit(translit.Upper(name), p.packaging)
	return ok
}

// ExtractVolume finds the leftmost volume in text and returns it in liters.
// Commas are decimal separators; milliliters are converted.
func ExtractVolume(text string) (float64, bool) {
	text = translit.Upper(text)

	liters := litersPattern.FindStringSubmatchIndex(text)
	millis := millilitersPattern.FindStringSubmatchIndex(text)

	if millis != nil && (liters == nil || millis[0] < liters[0]) {
		value, err := decimal.NewFromString(text[millis[2]:millis[3]])
		if err != nil {
			return 0, false
		}
		return value.Div(decimal.NewFromInt(1000)).InexactFloat64(), true
	}
	if liters != nil {
		return ParseDecimal(text[liters[2]:liters[3]])
	}
	return 0, false
}

// ParseDecimal parses numbers written with either a comma or a dot as the
// decimal separator, such as "0,5", "1.25" or "2.".
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return 0, false
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return value.InexactFloat64(), true
}

// Parenthesized returns the trimmed content of the first parenthesized group.
func Parenthesized(text string) (string, bool) {
	m := parenthesesPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	inner := strings.TrimSpace(m[1])
	return inner, inner != ""
}

// HasLegalMarker reports whether text carries a legal-entity or packing
// marker, which rules it out as a brand or producer name.
func HasLegalMarker(text string) bool {
	return containsAny(translit.Upper(text), brandLegalMarkers)
}

func guessBrand(text string) (string, bool) {
	if inner, ok := Parenthesized(text); ok && !HasLegalMarker(inner) {
		return inner, true
	}

	rest := text
	for _, prefix := range brandPrefixes {
		if rest == prefix || strings.HasPrefix(rest, prefix+" ") {
			rest = strings.TrimSpace(rest[len(prefix):])
			break
		}
	}
	if words := strings.Fields(rest); len(words) > 0 && utf8.RuneCountInString(words[0]) > 1 {
		return words[0], true
	}

	if words := strings.Fields(text); len(words) > 0 && !genericWords[words[0]] {
		return words[0], true
	}
	return "", false
}

func (p *Parser) guessFlavor(text string) (string, bool) {
	for _, flavor := range p.flavors {
		if strings.Contains(text, flavor) {
			return flavor, true
		}
	}
	for _, flavor := range p.learned {
		if strings.Contains(text, flavor) {
			return flavor, true
		}
	}
	return "", false
}

func (p *Parser) extractAttributes(text string) []model.Attribute {
	var attrs []model.Attribute
	seen := make(map[model.Attribute]bool)
	for _, kw := range p.attributes {
		if seen[kw.value] || !strings.Contains(text, kw.text) {
			continue
		}
		seen[kw.value] = true
		attrs = append(attrs, kw.value)
	}
	return attrs
}

func firstHit[T any](text string, table []keyword[T]) (T, bool) {
	for _, kw := range table {
		if strings.Contains(text, kw.text) {
			return kw.value, true
		}
	}
	var zero T
	return zero, false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
