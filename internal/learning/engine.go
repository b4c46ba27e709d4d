// Package learning builds the knowledge base and grows the brand and flavor
// vocabularies from labeled catalog history.
package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/shelfsort/internal/fuzzy"
	"github.com/Veraticus/shelfsort/internal/matcher"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/Veraticus/shelfsort/internal/store"
	"github.com/Veraticus/shelfsort/internal/translit"
)

// Similarity a name token needs to be kept as a spelling of its label.
const (
	BrandVariationThreshold = 75.0
	FlavorAliasThreshold    = 70.0
)

const (
	maxLabelExamples    = 10
	maxCategoryExamples = 5
	maxContextWords     = 20
	contextWindow       = 2
	minContextWordLen   = 3
)

// Progress receives per-row progress for each learning pass.
type Progress interface {
	Start(stage string, total int)
	Advance()
	Finish()
}

type noProgress struct{}

func (noProgress) Start(string, int) {}
func (noProgress) Advance() {}
func (noProgress) Finish() {}

// Stats summarizes one learning run.
type Stats struct {
	TotalProducts     int
	BrandsLearned     int
	FlavorsLearned    int
	CategoriesLearned int
	PatternsLearned   int
}

// Result is the outcome of LearnFromData.
type Result struct {
	Knowledge *model.KnowledgeBase
	Stats     Stats
}

// Engine runs the learning passes.
type Engine struct {
	progress  Progress
	knowledge store.Store[model.KnowledgeBase]
	parser    *parser.Parser
	brands    *matcher.BrandMatcher
	flavors   *matcher.FlavorMatcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress reports pass progress to p.
func WithProgress(p Progress) Option {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// New creates a learning engine writing into the given matchers and
// knowledge-base store.
func New(p *parser.Parser, brands *matcher.BrandMatcher, flavors *matcher.FlavorMatcher, knowledge store.Store[model.KnowledgeBase], opts ...Option) *Engine {
	e := &Engine{
		parser:    p,
		brands:    brands,
		flavors:   flavors,
		knowledge: knowledge,
		progress:  noProgress{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LearnFromData scans the labeled product and SKU catalogs and rebuilds the
// knowledge base. Learned brand variations and flavor aliases are merged into
// the matcher stores. All three stores are saved before it returns.
func (e *Engine) LearnFromData(ctx context.Context, products []model.ProductRecord, skus []model.SKURecord) (*Result, error) {
	kb := model.NewKnowledgeBase()
	stats := Stats{TotalProducts: len(products)}

	slog.Info("Starting learning run", "products", len(products), "skus", len(skus))

	// Each vocabulary is saved once its own pass completes
	err := e.brands.Deferred(ctx, func() error {
		var err error
		stats.BrandsLearned, err = e.learnBrands(ctx, kb, products)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to learn brands: %w", err)
	}

	err = e.flavors.Deferred(ctx, func() error {
		var err error
		stats.FlavorsLearned, err = e.learnFlavors(ctx, kb, skus)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to learn flavors: %w", err)
	}

	stats.CategoriesLearned = e.learnCategories(kb, products)
	e.learnVolumes(kb, products)
	stats.PatternsLearned = e.learnPatterns(kb, products, skus)
	e.learnPackaging(kb, products)
	e.learnStructure(kb, products)

	if err := e.knowledge.Save(ctx, kb); err != nil {
		return nil, fmt.Errorf("failed to save knowledge base: %w", err)
	}

	slog.Info("Learning complete",
		"total_products", stats.TotalProducts,
		"brands_learned", stats.BrandsLearned,
		"flavors_learned", stats.FlavorsLearned,
		"categories_learned", stats.CategoriesLearned,
		"patterns_learned", stats.PatternsLearned)

	return &Result{Knowledge: kb, Stats: stats}, nil
}

func (e *Engine) learnBrands(ctx context.Context, kb *model.KnowledgeBase, products []model.ProductRecord) (int, error) {
	e.progress.Start("brands", len(products))
	defer e.progress.Finish()

	for _, row := range products {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		e.progress.Advance()

		brand := translit.Upper(row.Brand)
		if isExcludedLabel(brand) {
			continue
		}
		name := translit.Upper(row.XName)
		record(kb.Brands, brand, name, maxLabelExamples)

		if err := e.brands.AddBrand(ctx, brand); err != nil {
			return 0, err
		}
		for _, token := range fuzzy.Words(name) {
			if fuzzy.Ratio(token, brand) < BrandVariationThreshold {
				continue
			}
			if err := e.brands.LearnBrandVariation(ctx, token, brand); err != nil {
				return 0, err
			}
		}
	}

	logTop("Learned brands", kb.Brands)
	return len(kb.Brands), nil
}

func (e *Engine) learnFlavors(ctx context.Context, kb *model.KnowledgeBase, skus []model.SKURecord) (int, error) {
	e.progress.Start("flavors", len(skus))
	defer e.progress.Finish()

	for _, row := range skus {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		e.progress.Advance()

		flavor := translit.Upper(row.Vkus)
		if isExcludedLabel(flavor) || flavor == "CLASSIC" {
			continue
		}
		name := translit.Upper(row.XName)
		record(kb.Flavors, flavor, name, maxLabelExamples)

		if err := e.flavors.AddFlavor(ctx, flavor); err != nil {
			return 0, err
		}
		for _, token := range fuzzy.Words(name) {
			if token == flavor || utf8.RuneCountInString(token) < minContextWordLen {
				continue
			}
			if fuzzy.Ratio(token, flavor) < FlavorAliasThreshold {
				continue
			}
			if err := e.flavors.LearnFlavorAlias(ctx, token, flavor); err != nil {
				return 0, err
			}
		}
	}

	logTop("Learned flavors", kb.Flavors)
	return len(kb.Flavors), nil
}

func (e *Engine) learnCategories(kb *model.KnowledgeBase, products []model.ProductRecord) int {
	for _, row := range products {
		name := translit.Upper(row.XName)
		if category := strings.TrimSpace(row.Category); !isExcludedLabel(translit.Upper(category)) {
			record(kb.Categories.MainCategories, category, name, maxCategoryExamples)
		}
		if sub := strings.TrimSpace(row.Subcategory); !isExcludedLabel(translit.Upper(sub)) {
			record(kb.Categories.Subcategories, sub, name, maxCategoryExamples)
		}
	}

	slog.Info("Learned categories",
		"categories", len(kb.Categories.MainCategories),
		"subcategories", len(kb.Categories.Subcategories))
	return len(kb.Categories.MainCategories)
}

func (e *Engine) learnVolumes(kb *model.KnowledgeBase, products []model.ProductRecord) {
	for _, row := range products {
		bucket := strings.TrimSpace(row.CatLitrag)
		if isExcludedLabel(translit.Upper(bucket)) || row.Litrag == nil || *row.Litrag == 0 {
			continue
		}
		volume := *row.Litrag

		stats, ok := kb.VolumeCategories[bucket]
		if !ok {
			kb.VolumeCategories[bucket] = &model.VolumeStats{Count: 1, Min: volume, Max: volume, Avg: volume}
			continue
		}
		stats.Avg = (stats.Avg*float64(stats.Count) + volume) / float64(stats.Count+1)
		stats.Count++
		stats.Min = min(stats.Min, volume)
		stats.Max = max(stats.Max, volume)
	}

	for bucket, stats := range kb.VolumeCategories {
		slog.Debug("Learned volume bucket",
			"bucket", bucket, "min", stats.Min, "max", stats.Max, "avg", stats.Avg)
	}
}

func (e *Engine) learnPatterns(kb *model.KnowledgeBase, products []model.ProductRecord, skus []model.SKURecord) int {
	var brandPositions []float64
	for _, row := range products {
		brand := translit.Upper(row.Brand)
		if isExcludedLabel(brand) {
			continue
		}
		if pos, ok := relativePosition(translit.Upper(row.XName), brand); ok {
			brandPositions = append(brandPositions, pos)
		}
	}

	var flavorPositions []float64
	contextWords := make(map[string]int)
	for _, row := range skus {
		flavor := translit.Upper(row.Vkus)
		if isExcludedLabel(flavor) || flavor == "CLASSIC" {
			continue
		}
		name := translit.Upper(row.XName)
		idx := strings.Index(name, flavor)
		if idx < 0 {
			continue
		}
		pos, _ := relativePosition(name, flavor)
		flavorPositions = append(flavorPositions, pos)

		before := fuzzy.Words(name[:idx])
		before = before[max(0, len(before)-contextWindow):]
		after := fuzzy.Words(name[idx+len(flavor):])
		after = after[:min(len(after), contextWindow)]
		for _, word := range append(before, after...) {
			if word != flavor && utf8.RuneCountInString(word) >= minContextWordLen {
				contextWords[word]++
			}
		}
	}

	kb.BrandPatterns.TypicalPositions = positionShares(brandPositions)
	kb.FlavorPatterns.TypicalPositions = positionShares(flavorPositions)
	kb.FlavorPatterns.CommonContextWords = mostCommon(contextWords, maxContextWords)

	p := kb.BrandPatterns.TypicalPositions
	slog.Info("Learned name patterns",
		"patterns", len(contextWords),
		"brand_beginning", fmt.Sprintf("%.1f%%", p.Beginning*100),
		"brand_middle", fmt.Sprintf("%.1f%%", p.Middle*100),
		"brand_end", fmt.Sprintf("%.1f%%", p.End*100))
	return len(contextWords)
}

func (e *Engine) learnPackaging(kb *model.KnowledgeBase, products []model.ProductRecord) {
	for _, row := range products {
		if pack := strings.TrimSpace(row.Pack); !isExcludedLabel(translit.Upper(pack)) {
			kb.PackagingTypes[pack]++
		}
	}
	slog.Info("Learned packaging types", "types", len(kb.PackagingTypes))
}

func (e *Engine) learnStructure(kb *model.KnowledgeBase, products []model.ProductRecord) {
	if len(products) == 0 {
		return
	}

	var parens, colons, volumes, packs int
	for _, row := range products {
		name := translit.Upper(row.XName)
		if _, ok := parser.Parenthesized(name); ok {
			parens++
		}
		if strings.Contains(name, ":") {
			colons++
		}
		if _, ok := parser.ExtractVolume(name); ok {
			volumes++
		}
		if e.parser.HasPackaging(name) {
			packs++
		}
	}

	total := float64(len(products))
	kb.XNameStructure = model.NameStructure{
		ParenthesesRatio: float64(parens) / total,
		ColonRatio:       float64(colons) / total,
		VolumeRatio:      float64(volumes) / total,
		PackagingRatio:   float64(packs) / total,
	}
}

// isExcludedLabel reports whether an upper-cased label carries no information.
func isExcludedLabel(label string) bool {
	switch label {
	case "", "NAN", "NONE", model.LocalBrand:
		return true
	}
	return false
}

func record(stats map[string]*model.LabelStats, label, example string, limit int) {
	s, ok := stats[label]
	if !ok {
		s = &model.LabelStats{Examples: []string{}}
		stats[label] = s
	}
	s.Count++
	if len(s.Examples) < limit {
		s.Examples = append(s.Examples, example)
	}
}

// relativePosition returns where needle first occurs in text as a fraction
// of the text length, counted in runes.
func relativePosition(text, needle string) (float64, bool) {
	idx := strings.Index(text, needle)
	if idx < 0 {
		return 0, false
	}
	return float64(utf8.RuneCountInString(text[:idx])) / float64(utf8.RuneCountInString(text)), true
}

func positionShares(positions []float64) model.Positions {
	if len(positions) == 0 {
		return model.Positions{}
	}
	var begin, middle, end int
	for _, p := range positions {
		switch {
		case p < 0.3:
			begin++
		case p < 0.7:
			middle++
		default:
			end++
		}
	}
	n := float64(len(positions))
	return model.Positions{
		Beginning: float64(begin) / n,
		Middle:    float64(middle) / n,
		End:       float64(end) / n,
	}
}

func mostCommon(counts map[string]int, limit int) []string {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func logTop(msg string, stats map[string]*model.LabelStats) {
	top := model.LabelsByCount(stats)
	if len(top) > 10 {
		top = top[:10]
	}
	slog.Info(msg, "count", len(stats), "top", top)
}
