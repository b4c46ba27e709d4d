package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/shelfsort/internal/categorizer"
	"github.com/Veraticus/shelfsort/internal/learning"
	"github.com/Veraticus/shelfsort/internal/model"
)

// RenderLearningSummary shows what a training run learned.
func RenderLearningSummary(stats learning.Stats) string {
	return RenderBox(ChartIcon+" Training Complete", RenderFields(
		F("Products", stats.TotalProducts),
		F("Brands", stats.BrandsLearned),
		F("Flavors", stats.FlavorsLearned),
		F("Categories", stats.CategoriesLearned),
		F("Context words", stats.PatternsLearned),
	))
}

// RenderValidation shows a validation report with rates.
func RenderValidation(r learning.ValidationReport) string {
	return RenderBox(ChartIcon+" Validation", RenderFields(
		F("Sample", r.Total),
		Field{"Brand correct", rate(r.BrandCorrect, r.BrandRate(r.BrandCorrect))},
		Field{"Brand partial", rate(r.BrandPartial, r.BrandRate(r.BrandPartial))},
		Field{"Brand wrong", rate(r.BrandWrong, r.BrandRate(r.BrandWrong))},
		Field{"Volume correct", rate(r.VolumeCorrect, r.SampleRate(r.VolumeCorrect))},
		Field{"Packaging correct", rate(r.PackagingCorrect, r.SampleRate(r.PackagingCorrect))},
	))
}

func rate(n int, pct float64) string {
	return fmt.Sprintf("%d (%s)", n, Percent(pct))
}

// RenderBatchSummary shows the processed, new and failed counts of a
// categorization run.
func RenderBatchSummary(stats categorizer.BatchStats, failures []categorizer.RowFailure) string {
	successRate := Percent(stats.SuccessRate())
	switch {
	case stats.Failed == 0:
		successRate = SuccessStyle.Render(successRate)
	case stats.New == 0:
		successRate = ErrorStyle.Render(successRate)
	default:
		successRate = WarningStyle.Render(successRate)
	}

	content := RenderFields(
		F("Processed", stats.Processed),
		F("New products", stats.New),
		F("Failed", stats.Failed),
		Field{"Success rate", successRate},
	)

	if len(failures) > 0 {
		lines := make([]string, 0, len(failures)+1)
		lines = append(lines, "", ErrorStyle.Render("Failed rows:"))
		for _, f := range failures {
			lines = append(lines, SubtleStyle.Render(fmt.Sprintf("  %s  %s: %v", f.XCode, f.XName, f.Err)))
		}
		content += strings.Join(lines, "\n")
	}

	return RenderBox(ChartIcon+" Categorization Complete", content)
}

// RenderFeatures shows everything known about one product name.
func RenderFeatures(f model.ProductFeatures, match *model.BrandMatch, flavor string) string {
	brand := "-"
	if match != nil {
		brand = fmt.Sprintf("%s (%s, %s)", match.Brand, match.Method, Percent(match.Confidence))
	}
	if flavor == "" {
		flavor = "-"
	}

	attributes := make([]string, len(f.Attributes))
	for i, a := range f.Attributes {
		attributes[i] = string(a)
	}

	return RenderBox(f.Original, RenderFields(
		Field{"Brand match", brand},
		Field{"Flavor match", flavor},
		Field{"Parsed brand", orDash(f.Brand)},
		Field{"Parsed flavor", orDash(f.Flavor)},
		Field{"Type", orDash(f.ProductType)},
		Field{"Volume", volume(f.Volume)},
		Field{"Packaging", orDash(f.Packaging)},
		Field{"Carbonation", orDash(f.Carbonation)},
		F("Sugar free", f.SugarFree),
		Field{"Attributes", dashIfEmpty(strings.Join(attributes, ", "))},
	))
}

func orDash[T ~string](v *T) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}

func volume(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g %s", *v, model.VolumeUnitLiters)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
