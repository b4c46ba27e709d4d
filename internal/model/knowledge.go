package model

import "sort"

// LabelStats counts how often a label was seen and keeps a few example names.
type LabelStats struct {
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// CategoryStats groups category and subcategory label statistics.
type CategoryStats struct {
	MainCategories map[string]*LabelStats `json:"main_categories"`
	Subcategories  map[string]*LabelStats `json:"subcategories"`
}

// VolumeStats summarizes the numeric volumes seen under one bucket label.
type VolumeStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Positions is the share of occurrences in each third of a product name.
type Positions struct {
	Beginning float64 `json:"beginning"`
	Middle    float64 `json:"middle"`
	End       float64 `json:"end"`
}

// BrandPatterns describes where brands appear in product names.
type BrandPatterns struct {
	TypicalPositions Positions `json:"typical_positions"`
}

// FlavorPatterns describes where flavors appear and which words surround them.
type FlavorPatterns struct {
	TypicalPositions   Positions `json:"typical_positions"`
	CommonContextWords []string  `json:"common_context_words"`
}

// NameStructure is the share of product names with a given structural trait.
type NameStructure struct {
	ParenthesesRatio float64 `json:"parentheses_ratio"`
	ColonRatio       float64 `json:"colon_ratio"`
	VolumeRatio      float64 `json:"volume_ratio"`
	PackagingRatio   float64 `json:"packaging_ratio"`
}

// KnowledgeBase is everything the learning engine extracts from labeled history.
type KnowledgeBase struct {
	Brands           map[string]*LabelStats  `json:"brands"`
	Flavors          map[string]*LabelStats  `json:"flavors"`
	Categories       CategoryStats           `json:"categories"`
	VolumeCategories map[string]*VolumeStats `json:"volume_categories"`
	PackagingTypes   map[string]int          `json:"packaging_types"`
	BrandPatterns    BrandPatterns           `json:"brand_patterns"`
	FlavorPatterns   FlavorPatterns          `json:"flavor_patterns"`
	XNameStructure   NameStructure           `json:"xname_structure"`
}

// NewKnowledgeBase returns an empty knowledge base with all maps allocated.
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{}
	kb.Normalize()
	return kb
}

// Normalize fills in maps left nil by decoding an incomplete document.
func (kb *KnowledgeBase) Normalize() {
	if kb.Brands == nil {
		kb.Brands = make(map[string]*LabelStats)
	}
	if kb.Flavors == nil {
		kb.Flavors = make(map[string]*LabelStats)
	}
	if kb.Categories.MainCategories == nil {
		kb.Categories.MainCategories = make(map[string]*LabelStats)
	}
	if kb.Categories.Subcategories == nil {
		kb.Categories.Subcategories = make(map[string]*LabelStats)
	}
	if kb.VolumeCategories == nil {
		kb.VolumeCategories = make(map[string]*VolumeStats)
	}
	if kb.PackagingTypes == nil {
		kb.PackagingTypes = make(map[string]int)
	}
	if kb.FlavorPatterns.CommonContextWords == nil {
		kb.FlavorPatterns.CommonContextWords = []string{}
	}
}

// FlavorsByCount returns learned flavor labels, most frequent first.
func (kb *KnowledgeBase) FlavorsByCount() []string {
	if kb == nil {
		return nil
	}
	return LabelsByCount(kb.Flavors)
}

// LabelsByCount returns the labels of stats, most frequent first.
func LabelsByCount(stats map[string]*LabelStats) []string {
	labels := make([]string, 0, len(stats))
	for label := range stats {
		labels = append(labels, label)
	}
	count := func(label string) int {
		if s := stats[label]; s != nil {
			return s.Count
		}
		return 0
	}
	sort.Slice(labels, func(i, j int) bool {
		ci, cj := count(labels[i]), count(labels[j])
		if ci != cj {
			return ci > cj
		}
		return labels[i] < labels[j]
	})
	return labels
}
