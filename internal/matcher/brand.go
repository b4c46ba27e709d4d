package matcher

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/shelfsort/internal/fuzzy"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/store"
	"github.com/Veraticus/shelfsort/internal/translit"
)

// Confidence per matcher tier. Fuzzy matches report their raw score.
const (
	ExactConfidence       = 100.0
	AliasConfidence       = 95.0
	TranslitConfidence    = 90.0
	AbbreviatedConfidence = 80.0

	// FuzzyHighThreshold separates fuzzy_high from fuzzy_medium.
	FuzzyHighThreshold = 90.0
	// FuzzyLowThreshold is the lowest fuzzy score accepted as a match.
	FuzzyLowThreshold = 60.0

	minAbbreviation = 3
)

// ErrEmptyBrand is returned when a brand name is blank after normalization.
var ErrEmptyBrand = errors.New("brand name is empty")

var (
	brandToken = regexp.MustCompile(`^[А-ЯЁA-Z][А-ЯЁA-Z0-9]*$`)

	brandStopWords = map[string]bool{
		"НАПИТОК": true,
		"ВОДА":    true,
		"СОК":     true,
		"НЕКТАР":  true,
		"МОРС":    true,
		"КВАС":    true,
	}
)

// BrandMatcher finds canonical brands in product names and learns new
// spellings into its store.
type BrandMatcher struct {
	vocabulary[model.BrandsDB]
}

// NewBrandMatcher loads the brand vocabulary from s.
func NewBrandMatcher(ctx context.Context, s store.Store[model.BrandsDB]) (*BrandMatcher, error) {
	m := &BrandMatcher{}
	if err := m.load(ctx, s); err != nil {
		return nil, err
	}
	m.doc.Normalize()
	return m, nil
}

// KnownBrands returns every canonical brand, longest first.
func (m *BrandMatcher) KnownBrands() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Names()
}

// Entry returns a copy of the stored entry for brand.
func (m *BrandMatcher) Entry(brand string) (model.BrandEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.doc.Brands[translit.Upper(brand)]
	if !ok {
		return model.BrandEntry{}, false
	}
	return model.BrandEntry{
		Canonical:  entry.Canonical,
		Variations: slices.Clone(entry.Variations),
		Aliases:    slices.Clone(entry.Aliases),
	}, true
}

// MatchFromText matches text against every brand in the store.
func (m *BrandMatcher) MatchFromText(text string) *model.BrandMatch {
	return m.MatchBrand(text, m.KnownBrands())
}

// MatchBrand finds the brand in text. Tiers are tried in order and the first
// one that produces a result wins:
//
//  1. a known brand occurs in text (exact)
//  2. a registered alias occurs in text (alias)
//  3. a brand occurs in text after transliterating both (translit)
//  4. some word of text is similar to a brand (fuzzy_high, fuzzy_medium)
//  5. some word of text begins a brand (abbreviated)
//
// It returns nil when nothing matches or knownBrands is empty.
func (m *BrandMatcher) MatchBrand(text string, knownBrands []string) *model.BrandMatch {
	candidates := make([]string, 0, len(knownBrands))
	for _, b := range knownBrands {
		if b = translit.Upper(b); b != "" {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	upper := translit.Upper(text)
	brand, method, confidence, ok := m.cascade(upper, candidates)
	if !ok {
		return nil
	}

	match := &model.BrandMatch{
		Original:   text,
		Brand:      brand,
		Method:     method,
		Confidence: confidence,
	}
	if entry := m.doc.Brands[brand]; entry != nil {
		match.Variations = slices.Clone(entry.Variations)
	}
	return match
}

func (m *BrandMatcher) cascade(text string, candidates []string) (string, model.MatchMethod, float64, bool) {
	for _, brand := range candidates {
		if strings.Contains(text, brand) {
			return brand, model.MethodExact, ExactConfidence, true
		}
	}

	for _, alias := range m.doc.AliasKeys() {
		if alias != "" && strings.Contains(text, alias) {
			return m.doc.Aliases[alias], model.MethodAlias, AliasConfidence, true
		}
	}

	textEn, textRu := translit.RuToEn(text), translit.EnToRu(text)
	for _, brand := range candidates {
		brandEn, brandRu := translit.RuToEn(brand), translit.EnToRu(brand)
		if (brandEn != "" && strings.Contains(textEn, brandEn)) ||
			(brandRu != "" && strings.Contains(textRu, brandRu)) {
			return brand, model.MethodTranslit, TranslitConfidence, true
		}
	}

	tokens := brandTokens(text)

	best, bestScore := "", 0.0
	for _, token := range tokens {
		if brandStopWords[token] {
			continue
		}
		for _, brand := range candidates {
			if score := fuzzy.Best(token, brand); score > bestScore {
				best, bestScore = brand, score
			}
		}
	}
	if bestScore >= FuzzyLowThreshold {
		method := model.MethodFuzzyMedium
		if bestScore >= FuzzyHighThreshold {
			method = model.MethodFuzzyHigh
		}
		return best, method, bestScore, true
	}

	for _, brand := range candidates {
		for _, token := range tokens {
			if utf8.RuneCountInString(token) >= minAbbreviation && strings.HasPrefix(brand, token) {
				return brand, model.MethodAbbreviated, AbbreviatedConfidence, true
			}
		}
	}

	return "", "", 0, false
}

// brandTokens returns the words of text that start with a letter.
func brandTokens(text string) []string {
	var tokens []string
	for _, w := range fuzzy.Words(text) {
		if brandToken.MatchString(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// AddBrand registers brand with generated spelling variations. Aliases are
// attached to the entry and to the flat alias index.
func (m *BrandMatcher) AddBrand(ctx context.Context, brand string, aliases ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.addLocked(brand, aliases); err != nil {
		return err
	}
	return m.changedLocked(ctx)
}

// LearnBrandVariation records text as a known spelling of correctBrand,
// registering the brand first when it is new.
func (m *BrandMatcher) LearnBrandVariation(ctx context.Context, text, correctBrand string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.addLocked(correctBrand, nil)
	if err != nil {
		return err
	}
	if variation := translit.Upper(text); variation != "" {
		entry.Variations = appendUnique(entry.Variations, variation)
	}
	return m.changedLocked(ctx)
}

func (m *BrandMatcher) addLocked(brand string, aliases []string) (*model.BrandEntry, error) {
	canonical := translit.Upper(brand)
	if canonical == "" {
		return nil, ErrEmptyBrand
	}

	entry, ok := m.doc.Brands[canonical]
	if !ok {
		entry = &model.BrandEntry{
			Canonical:  canonical,
			Variations: GenerateVariations(canonical),
			Aliases:    []string{},
		}
		m.doc.Brands[canonical] = entry
	}

	for _, alias := range aliases {
		alias = translit.Upper(alias)
		if alias == "" {
			continue
		}
		entry.Aliases = appendUnique(entry.Aliases, alias)
		m.doc.Aliases[alias] = canonical
	}
	return entry, nil
}

// GenerateVariations derives likely spellings of brand: the upper-cased name,
// both transliterations and, for names longer than four letters, the 4, 5
// and 6 letter prefixes.
func GenerateVariations(brand string) []string {
	upper := translit.Upper(brand)
	set := map[string]bool{
		upper:                  true,
		translit.RuToEn(upper): true,
		translit.EnToRu(upper): true,
	}

	runes := []rune(upper)
	if len(runes) > 4 {
		for _, n := range []int{4, 5, 6} {
			set[string(runes[:min(n, len(runes))])] = true
		}
	}
	delete(set, "")

	variations := make([]string, 0, len(set))
	for v := range set {
		variations = append(variations, v)
	}
	sort.Strings(variations)
	return variations
}

func appendUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}
