// Package categorizer assigns catalog labels to new products by combining
// the parser, the brand and flavor matchers and a fixed set of rules.
package categorizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/Veraticus/shelfsort/internal/fuzzy"
	"github.com/Veraticus/shelfsort/internal/matcher"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/Veraticus/shelfsort/internal/translit"
)

const (
	// FallbackConfidence is reported when the brand comes from the parser's
	// guess or defaults to LOCAL.
	FallbackConfidence = 50.0

	// DefaultFlavor is used when no flavor can be found.
	DefaultFlavor = "CLASSIC"

	// DefaultPackaging is used when the name has no packaging keyword.
	DefaultPackaging = model.PackCan

	defaultPackQuantity = 1
)

// Progress receives per-row progress of a batch.
type Progress interface {
	Start(stage string, total int)
	Advance()
	Finish()
}

type noProgress struct{}

func (noProgress) Start(string, int) {}
func (noProgress) Advance() {}
func (noProgress) Finish() {}

// RowFailure describes a product that could not be categorized.
type RowFailure struct {
	Err   error
	XCode string
	XName string
}

// BatchStats counts the outcome of ProcessNewProducts.
type BatchStats struct {
	Processed int
	New       int
	Failed    int
}

// SuccessRate is the share of processed rows that produced a record, in percent.
func (s BatchStats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.New) / float64(s.Processed) * 100
}

// BatchResult holds the records and failures of one batch.
type BatchResult struct {
	Records  []model.CategorizedRecord
	Failures []RowFailure
	Stats    BatchStats
}

// Categorizer labels new products. It is not safe for concurrent use.
type Categorizer struct {
	now       func() time.Time
	progress  Progress
	known     map[string]bool
	parser    *parser.Parser
	brands    *matcher.BrandMatcher
	flavors   *matcher.FlavorMatcher
	autoLearn bool
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithClock sets the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Categorizer) {
		c.now = now
	}
}

// WithAutoLearn feeds brands found by the non-exact matcher tiers back into
// the brand vocabulary.
func WithAutoLearn(enabled bool) Option {
	return func(c *Categorizer) {
		c.autoLearn = enabled
	}
}

// WithProgress reports batch progress to p.
func WithProgress(p Progress) Option {
	return func(c *Categorizer) {
		if p != nil {
			c.progress = p
		}
	}
}

// New creates a categorizer. knownXCodes are the product codes already in
// the catalogs.
func New(p *parser.Parser, brands *matcher.BrandMatcher, flavors *matcher.FlavorMatcher, knownXCodes []string, opts ...Option) *Categorizer {
	c := &Categorizer{
		now:      time.Now,
		progress: noProgress{},
		known:    make(map[string]bool, len(knownXCodes)),
		parser:   p,
		brands:   brands,
		flavors:  flavors,
	}
	for _, code := range knownXCodes {
		if code = strings.TrimSpace(code); code != "" {
			c.known[code] = true
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Known reports whether xcode is already catalogued.
func (c *Categorizer) Known(xcode string) bool {
	return c.known[strings.TrimSpace(xcode)]
}

// CategorizeProduct labels a single product.
func (c *Categorizer) CategorizeProduct(ctx context.Context, xcode, xname string) (model.CategorizedRecord, error) {
	xcode = strings.TrimSpace(xcode)
	if xcode == "" {
		return model.CategorizedRecord{}, fmt.Errorf("%w: empty xcode", common.ErrInvalidRow)
	}
	if strings.TrimSpace(xname) == "" {
		return model.CategorizedRecord{}, fmt.Errorf("%w: empty xname for xcode %s", common.ErrInvalidRow, xcode)
	}

	features := c.parser.Parse(xname)

	brand, confidence := model.LocalBrand, FallbackConfidence
	if match := c.brands.MatchFromText(xname); match != nil {
		brand, confidence = match.Brand, match.Confidence
		if c.autoLearn {
			if err := c.learn(ctx, match, xname); err != nil {
				return model.CategorizedRecord{}, err
			}
		}
	} else if features.Brand != nil {
		brand = *features.Brand
	}

	flavor, ok := c.flavors.MatchFlavor(xname)
	if !ok {
		flavor = DefaultFlavor
		if features.Flavor != nil {
			flavor = *features.Flavor
		}
	}

	category := DetermineCategory(features, xname)
	producer := DetermineProducer(brand, xname)

	pack := DefaultPackaging
	if features.Packaging != nil {
		pack = *features.Packaging
	}

	return model.CategorizedRecord{
		Timestamp:       c.now(),
		XCode:           xcode,
		XName:           xname,
		Category:        category,
		Brand:           brand,
		BrandConfidence: confidence,
		Litrag:          features.VolumeOrZero(),
		CatLitrag:       VolumeBucket(features.Volume),
		Proizvod:        producer,
		Brand2:          brand,
		Proizvod2:       producer,
		PackQnt:         defaultPackQuantity,
		Pack:            string(pack),
		Subcategory:     DetermineSubcategory(features, category, xname),
		SKU:             SKULabel(brand, flavor),
		Vkus:            flavor,
		SugarFree:       features.SugarFree,
		Carbonation:     features.Carbonation,
		ProductType:     features.ProductType,
	}, nil
}

// learn records the word of xname closest to a brand found by a non-exact tier.
func (c *Categorizer) learn(ctx context.Context, match *model.BrandMatch, xname string) error {
	if match.Method == model.MethodExact || match.Method == model.MethodAlias {
		return nil
	}

	best, bestScore := "", 0.0
	for _, word := range fuzzy.Words(translit.Upper(xname)) {
		if score := fuzzy.Ratio(word, match.Brand); score > bestScore {
			best, bestScore = word, score
		}
	}
	if best == "" || best == match.Brand {
		return nil
	}

	slog.Debug("Learning brand variation", "brand", match.Brand, "variation", best, "method", match.Method)
	if err := c.brands.LearnBrandVariation(ctx, best, match.Brand); err != nil {
		return fmt.Errorf("failed to learn brand variation: %w", err)
	}
	return nil
}

// CheckForNewProducts keeps the rows whose xcode is not catalogued yet.
// Repeated xcodes within rows are kept once, first occurrence first. Rows
// with a blank xcode are always kept so that they surface as failures.
func (c *Categorizer) CheckForNewProducts(rows []model.NewProduct) []model.NewProduct {
	seen := make(map[string]bool, len(rows))
	var fresh []model.NewProduct
	for _, row := range rows {
		code := strings.TrimSpace(row.XCode)
		if code == "" {
			fresh = append(fresh, row)
			continue
		}
		if c.known[code] || seen[code] {
			continue
		}
		seen[code] = true
		fresh = append(fresh, row)
	}

	slog.Info("Checked for new products", "new", len(fresh), "total", len(rows))
	return fresh
}

// ProcessNewProducts categorizes every row. A row that fails is logged and
// reported in the result; the remaining rows are still processed. Only
// persistence failures and cancellation abort the batch.
func (c *Categorizer) ProcessNewProducts(ctx context.Context, rows []model.NewProduct) (*BatchResult, error) {
	result := &BatchResult{}

	run := func() error {
		c.progress.Start("categorize", len(rows))
		defer c.progress.Finish()

		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.progress.Advance()
			result.Stats.Processed++

			record, err := c.CategorizeProduct(ctx, row.XCode, row.XName)
			if err != nil {
				if errors.Is(err, common.ErrPersistence) || ctx.Err() != nil {
					return err
				}
				common.LogError(err, "Failed to categorize product", common.Fields{
					"xcode": row.XCode,
					"xname": row.XName,
				})
				result.Failures = append(result.Failures, RowFailure{Err: err, XCode: row.XCode, XName: row.XName})
				result.Stats.Failed++
				continue
			}

			c.known[record.XCode] = true
			result.Records = append(result.Records, record)
			result.Stats.New++
		}
		return nil
	}

	var err error
	if c.autoLearn {
		err = c.brands.Deferred(ctx, run)
	} else {
		err = run()
	}
	if err != nil {
		return nil, fmt.Errorf("batch aborted after %d rows: %w", result.Stats.Processed, err)
	}

	slog.Info("Categorization complete",
		"processed", result.Stats.Processed,
		"new", result.Stats.New,
		"failed", result.Stats.Failed,
		"success_rate", fmt.Sprintf("%.1f%%", result.Stats.SuccessRate()))

	return result, nil
}
