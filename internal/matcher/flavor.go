package matcher

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/Veraticus/shelfsort/internal/fuzzy"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/store"
	"github.com/Veraticus/shelfsort/internal/translit"
)

// FlavorThreshold is the lowest similarity accepted by the fuzzy flavor tier.
const FlavorThreshold = 85.0

// ErrEmptyFlavor is returned when a flavor name is blank after normalization.
var ErrEmptyFlavor = errors.New("flavor name is empty")

var flavorToken = regexp.MustCompile(`^[А-ЯЁA-Z0-9]{3,}$`)

// DefaultFlavorAliases returns the built-in flavor vocabulary.
func DefaultFlavorAliases() map[string][]string {
	return map[string][]string{
		"ЯБЛОКО":      {"APPLE", "ЯБЛОЧНЫЙ", "ЯБЛОК"},
		"АПЕЛЬСИН":    {"ORANGE", "АПЕЛЬСИНОВЫЙ", "ОРАНЖ"},
		"ЛИМОН":       {"LEMON", "ЛИМОННЫЙ"},
		"ВИШНЯ":       {"CHERRY", "ВИШНЕВЫЙ"},
		"ПЕРСИК":      {"PEACH", "ПЕРСИКОВЫЙ"},
		"ГРУША":       {"PEAR", "ГРУШЕВЫЙ", "ДЮШЕС"},
		"ДЮШЕС":       {"PEAR", "ГРУША"},
		"КЛУБНИКА":    {"STRAWBERRY", "КЛУБНИЧНЫЙ"},
		"МАЛИНА":      {"RASPBERRY", "МАЛИНОВЫЙ"},
		"СМОРОДИНА":   {"CURRANT", "ЧЕРНАЯ СМОРОДИНА"},
		"ВИНОГРАД":    {"GRAPE", "ВИНОГРАДНЫЙ"},
		"КОЛА":        {"COLA", "КОЛЬСКИЙ"},
		"ТАРХУН":      {"TARRAGON", "ЭСТРАГОН"},
		"БУРАТИНО":    {"BURATINO"},
		"БАЙКАЛ":      {"BAIKAL"},
		"АНАНАС":      {"PINEAPPLE", "АНАНАСОВЫЙ"},
		"МАНГО":       {"MANGO", "МАНГОВЫЙ"},
		"МАНДАРИН":    {"MANDARIN", "МАНДАРИНОВЫЙ"},
		"ГРЕЙПФРУТ":   {"GRAPEFRUIT", "ГРЕЙПФРУТОВЫЙ"},
		"БАНАН":       {"BANANA", "БАНАНОВЫЙ"},
		"ТОМАТ":       {"TOMATO", "ТОМАТНЫЙ"},
		"МУЛЬТИФРУКТ": {"MULTIFRUIT", "МИКС"},
		"ТРОПИК":      {"TROPICAL", "ТРОПИЧЕСКИЙ"},
	}
}

// FlavorMatcher finds canonical flavors in product names.
type FlavorMatcher struct {
	vocabulary[model.FlavorsDB]
}

// NewFlavorMatcher loads the flavor vocabulary from s. An empty store starts
// from the built-in vocabulary; it is written back on the next save.
func NewFlavorMatcher(ctx context.Context, s store.Store[model.FlavorsDB]) (*FlavorMatcher, error) {
	m := &FlavorMatcher{}
	if err := m.load(ctx, s); err != nil {
		return nil, err
	}
	m.doc.Normalize()
	if len(m.doc.Flavors) == 0 {
		m.doc.Flavors = DefaultFlavorAliases()
		m.dirty = true
	}
	return m, nil
}

// Flavors returns the canonical flavors, longest first.
func (m *FlavorMatcher) Flavors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Names()
}

// Aliases returns a copy of the aliases of flavor.
func (m *FlavorMatcher) Aliases(flavor string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.doc.Flavors[translit.Upper(flavor)])
}

// MatchFlavor returns the canonical flavor named in text, or "" and false.
//
// Canonical names are looked for first, then aliases, longest first. Failing
// that, the first word of three or more letters whose similarity to a flavor
// or alias reaches FlavorThreshold decides.
func (m *FlavorMatcher) MatchFlavor(text string) (string, bool) {
	upper := translit.Upper(text)
	if upper == "" {
		return "", false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	names := m.doc.Names()
	for _, flavor := range names {
		if strings.Contains(upper, flavor) {
			return flavor, true
		}
	}
	for _, pair := range m.aliasPairs(names) {
		if strings.Contains(upper, pair.alias) {
			return pair.flavor, true
		}
	}

	for _, token := range fuzzy.Words(upper) {
		if !flavorToken.MatchString(token) {
			continue
		}
		for _, flavor := range names {
			if fuzzy.Ratio(token, flavor) >= FlavorThreshold {
				return flavor, true
			}
			for _, alias := range m.doc.Flavors[flavor] {
				if alias != "" && fuzzy.Ratio(token, alias) >= FlavorThreshold {
					return flavor, true
				}
			}
		}
	}

	return "", false
}

type aliasPair struct {
	alias  string
	flavor string
}

func (m *FlavorMatcher) aliasPairs(names []string) []aliasPair {
	var pairs []aliasPair
	for _, flavor := range names {
		for _, alias := range m.doc.Flavors[flavor] {
			if alias != "" {
				pairs = append(pairs, aliasPair{alias: alias, flavor: flavor})
			}
		}
	}
	slices.SortStableFunc(pairs, func(a, b aliasPair) int {
		return len([]rune(b.alias)) - len([]rune(a.alias))
	})
	return pairs
}

// AddFlavor registers flavor with optional aliases.
func (m *FlavorMatcher) AddFlavor(ctx context.Context, flavor string, aliases ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.addLocked(flavor, aliases); err != nil {
		return err
	}
	return m.changedLocked(ctx)
}

// LearnFlavorAlias records alias as another spelling of flavor.
func (m *FlavorMatcher) LearnFlavorAlias(ctx context.Context, alias, flavor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.addLocked(flavor, []string{alias}); err != nil {
		return err
	}
	return m.changedLocked(ctx)
}

func (m *FlavorMatcher) addLocked(flavor string, aliases []string) error {
	canonical := translit.Upper(flavor)
	if canonical == "" {
		return ErrEmptyFlavor
	}

	known, ok := m.doc.Flavors[canonical]
	if !ok {
		known = []string{}
	}
	for _, alias := range aliases {
		if alias = translit.Upper(alias); alias != "" && alias != canonical {
			known = appendUnique(known, alias)
		}
	}
	m.doc.Flavors[canonical] = known
	return nil
}
