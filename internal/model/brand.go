package model

import (
	"sort"
	"unicode/utf8"
)

// MatchMethod names the matcher tier that produced a brand match.
type MatchMethod string

// Match methods, in cascade order.
const (
	MethodExact       MatchMethod = "exact"
	MethodAlias       MatchMethod = "alias"
	MethodTranslit    MatchMethod = "translit"
	MethodFuzzyHigh   MatchMethod = "fuzzy_high"
	MethodFuzzyMedium MatchMethod = "fuzzy_medium"
	MethodAbbreviated MatchMethod = "abbreviated"
)

// BrandMatch is the result of one brand matcher invocation.
type BrandMatch struct {
	Original   string
	Brand      string
	Method     MatchMethod
	Variations []string
	Confidence float64
}

// LocalBrand marks a product without a recognized national or global brand.
const LocalBrand = "LOCAL"

// BrandEntry is one canonical brand with its known spellings.
type BrandEntry struct {
	Canonical  string   `json:"canonical"`
	Variations []string `json:"variations"`
	Aliases    []string `json:"aliases"`
}

// BrandsDB is the persisted brand vocabulary.
// Keys, variations and aliases are stored uppercase.
type BrandsDB struct {
	Brands  map[string]*BrandEntry `json:"brands"`
	Aliases map[string]string      `json:"aliases"`
}

// NewBrandsDB returns an empty brand vocabulary.
func NewBrandsDB() *BrandsDB {
	return &BrandsDB{
		Brands:  make(map[string]*BrandEntry),
		Aliases: make(map[string]string),
	}
}

// Normalize fills in maps left nil by decoding an incomplete document.
func (db *BrandsDB) Normalize() {
	if db.Brands == nil {
		db.Brands = make(map[string]*BrandEntry)
	}
	if db.Aliases == nil {
		db.Aliases = make(map[string]string)
	}
	for name, entry := range db.Brands {
		if entry == nil {
			db.Brands[name] = &BrandEntry{Canonical: name}
		}
	}
}

// Names returns the canonical brand names, longest first.
// Longer names are tried first so that "COCA-COLA" wins over "COLA".
func (db *BrandsDB) Names() []string {
	names := make([]string, 0, len(db.Brands))
	for name := range db.Brands {
		names = append(names, name)
	}
	SortLongestFirst(names)
	return names
}

// AliasKeys returns the registered aliases, longest first.
func (db *BrandsDB) AliasKeys() []string {
	keys := make([]string, 0, len(db.Aliases))
	for alias := range db.Aliases {
		keys = append(keys, alias)
	}
	SortLongestFirst(keys)
	return keys
}

// FlavorsDB is the persisted flavor vocabulary: canonical flavor to aliases.
type FlavorsDB struct {
	Flavors map[string][]string `json:"flavors"`
}

// NewFlavorsDB returns an empty flavor vocabulary.
func NewFlavorsDB() *FlavorsDB {
	return &FlavorsDB{Flavors: make(map[string][]string)}
}

// Normalize fills in the map left nil by decoding an incomplete document.
func (db *FlavorsDB) Normalize() {
	if db.Flavors == nil {
		db.Flavors = make(map[string][]string)
	}
}

// Names returns the canonical flavor names, longest first.
func (db *FlavorsDB) Names() []string {
	names := make([]string, 0, len(db.Flavors))
	for name := range db.Flavors {
		names = append(names, name)
	}
	SortLongestFirst(names)
	return names
}

// SortLongestFirst orders strings by rune length descending, then lexically.
func SortLongestFirst(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(values[i]), utf8.RuneCountInString(values[j])
		if li != lj {
			return li > lj
		}
		return values[i] < values[j]
	})
}
