package learning

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/translit"
)

// PartialConfidence is the confidence at which a wrong brand still counts as
// a near miss rather than a plain error.
const PartialConfidence = 75.0

const volumeTolerance = 0.01

// ValidationReport counts how well the parser and brand matcher reproduce
// the labels of a sample of catalog rows.
type ValidationReport struct {
	Total            int
	BrandCorrect     int
	BrandPartial     int
	BrandWrong       int
	VolumeCorrect    int
	PackagingCorrect int
}

// BrandChecked is the number of rows whose brand was compared.
func (r ValidationReport) BrandChecked() int {
	return r.BrandCorrect + r.BrandPartial + r.BrandWrong
}

// BrandRate returns n as a percentage of the compared brands.
func (r ValidationReport) BrandRate(n int) float64 {
	return percent(n, r.BrandChecked())
}

// SampleRate returns n as a percentage of the sample.
func (r ValidationReport) SampleRate(n int) float64 {
	return percent(n, r.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Validate re-parses a random sample of labeled products and compares the
// result with the labels. The same seed always selects the same sample.
func (e *Engine) Validate(products []model.ProductRecord, sampleSize int, seed uint64) ValidationReport {
	sample := Sample(products, sampleSize, seed)
	report := ValidationReport{Total: len(sample)}

	e.progress.Start("validation", len(sample))
	defer e.progress.Finish()

	for _, row := range sample {
		e.progress.Advance()

		features := e.parser.Parse(row.XName)

		actualBrand := translit.Upper(row.Brand)
		if match := e.brands.MatchFromText(row.XName); match != nil && !isExcludedLabel(actualBrand) {
			switch {
			case match.Brand == actualBrand:
				report.BrandCorrect++
			case match.Confidence >= PartialConfidence:
				report.BrandPartial++
			default:
				report.BrandWrong++
			}
		}

		if features.Volume != nil && row.Litrag != nil && *row.Litrag != 0 &&
			math.Abs(*features.Volume-*row.Litrag) < volumeTolerance {
			report.VolumeCorrect++
		}

		actualPack := translit.Upper(row.Pack)
		if features.Packaging != nil && !isExcludedLabel(actualPack) && string(*features.Packaging) == actualPack {
			report.PackagingCorrect++
		}
	}

	slog.Info("Validation complete",
		"total", report.Total,
		"brand_correct", report.BrandCorrect,
		"brand_partial", report.BrandPartial,
		"brand_wrong", report.BrandWrong,
		"volume_correct", report.VolumeCorrect,
		"packaging_correct", report.PackagingCorrect)

	return report
}

// Sample picks up to size rows using a PCG source seeded with seed.
func Sample(products []model.ProductRecord, size int, seed uint64) []model.ProductRecord {
	if size <= 0 || len(products) == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(len(products))
	if size < len(perm) {
		perm = perm[:size]
	}

	sample := make([]model.ProductRecord, len(perm))
	for i, idx := range perm {
		sample[i] = products[idx]
	}
	return sample
}
