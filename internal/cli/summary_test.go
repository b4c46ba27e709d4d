package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Veraticus/shelfsort/internal/categorizer"
	"github.com/Veraticus/shelfsort/internal/learning"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderBatchSummary(t *testing.T) {
	out := RenderBatchSummary(categorizer.BatchStats{Processed: 4, New: 3, Failed: 1}, []categorizer.RowFailure{
		{XCode: "77", XName: "", Err: errors.New("invalid row: empty xname")},
	})

	assert.Contains(t, out, "Categorization Complete")
	assert.Contains(t, out, "Processed")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Failed rows:")
	assert.Contains(t, out, "77")
	assert.Contains(t, out, "empty xname")
}

func TestRenderBatchSummary_NoFailures(t *testing.T) {
	out := RenderBatchSummary(categorizer.BatchStats{Processed: 2, New: 2}, nil)

	assert.Contains(t, out, "100.0%")
	assert.NotContains(t, out, "Failed rows:")
}

func TestRenderLearningSummary(t *testing.T) {
	out := RenderLearningSummary(learning.Stats{TotalProducts: 6, BrandsLearned: 4, FlavorsLearned: 3})

	assert.Contains(t, out, "Training Complete")
	assert.Contains(t, out, "Brands")
	assert.Contains(t, out, "4")
}

func TestRenderValidation(t *testing.T) {
	out := RenderValidation(learning.ValidationReport{Total: 10, BrandCorrect: 8, BrandWrong: 2, VolumeCorrect: 5})

	assert.Contains(t, out, "8 (80.0%)")
	assert.Contains(t, out, "2 (20.0%)")
	assert.Contains(t, out, "5 (50.0%)")
}

func TestRenderFeatures(t *testing.T) {
	features := model.ProductFeatures{
		Original:    "ДОБРЫЙ КОЛА 0,5Л",
		Volume:      model.Ptr(0.5),
		Packaging:   model.Ptr(model.PackPET),
		Carbonation: model.Ptr(model.Carbonated),
		Attributes:  []model.Attribute{model.AttrNatural},
	}
	match := &model.BrandMatch{Brand: "ДОБРЫЙ", Method: model.MethodExact, Confidence: 100}

	out := RenderFeatures(features, match, "КОЛА")

	assert.Contains(t, out, "ДОБРЫЙ (exact, 100.0%)")
	assert.Contains(t, out, "0.5 L")
	assert.Contains(t, out, "PET")
	assert.Contains(t, out, "carbonated")
	assert.Contains(t, out, "natural")
}

func TestRenderFeatures_Unknowns(t *testing.T) {
	out := RenderFeatures(model.ProductFeatures{Original: "???"}, nil, "")

	assert.Contains(t, out, "Brand match")
	assert.Contains(t, out, "-")
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf)

	// Advance and Finish without a running bar are no-ops
	p.Advance()
	p.Finish()
	assert.Empty(t, buf.String())

	p.Start("brands", 2)
	p.Advance()
	p.Advance()
	p.Finish()

	assert.Contains(t, buf.String(), "Learning brands")
	assert.Nil(t, p.bar)
}

func TestProgressBar_SatisfiesProgressInterfaces(t *testing.T) {
	var _ learning.Progress = (*ProgressBar)(nil)
	var _ categorizer.Progress = (*ProgressBar)(nil)
}
