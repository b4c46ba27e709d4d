package learning

import (
	"context"
	"testing"

	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AfterLearning(t *testing.T) {
	catalog := testutil.NewCatalog().WithBasicCatalog()
	engine := newEngine(t, testutil.NewStores())

	products := catalog.Products()
	_, err := engine.LearnFromData(context.Background(), products, catalog.SKUs())
	require.NoError(t, err)

	report := engine.Validate(products, 500, 42)

	assert.Equal(t, 6, report.Total)
	// The LOCAL row is not compared
	assert.Equal(t, 5, report.BrandChecked())
	assert.Equal(t, 5, report.BrandCorrect)
	assert.Zero(t, report.BrandWrong)
	assert.Equal(t, 6, report.VolumeCorrect)
	// Two names carry no packaging keyword
	assert.Equal(t, 4, report.PackagingCorrect)

	assert.InDelta(t, 100.0, report.BrandRate(report.BrandCorrect), 1e-9)
	assert.InDelta(t, 400.0/6, report.SampleRate(report.PackagingCorrect), 1e-9)
}

func TestValidate_WrongAndPartialBrands(t *testing.T) {
	stores := testutil.NewStores()
	engine := newEngine(t, stores)
	require.NoError(t, engine.brands.AddBrand(context.Background(), "ДОБРЫЙ"))
	require.NoError(t, engine.brands.AddBrand(context.Background(), "PEPSI"))

	products := testutil.NewCatalog().
		WithProduct("1", "Напиток ДОБРЫЙ КОЛА 1Л", "ДОБРЫЙ", "КОЛА").
		WithProduct("2", "Напиток ДОБРЫЙ КОЛА 1Л", "PEPSI", "КОЛА").
		WithProduct("3", "PEPSY COLA 0,33Л", "ДОБРЫЙ", "КОЛА").
		Products()

	report := engine.Validate(products, len(products), 1)

	assert.Equal(t, 3, report.BrandChecked())
	assert.Equal(t, 1, report.BrandCorrect)
	// An exact match of another brand is still a confident answer
	assert.Equal(t, 2, report.BrandPartial)
	assert.Zero(t, report.BrandWrong)
}

func TestValidate_EmptySample(t *testing.T) {
	engine := newEngine(t, testutil.NewStores())

	report := engine.Validate(nil, 500, 42)

	assert.Equal(t, ValidationReport{}, report)
	assert.Zero(t, report.BrandRate(0))
	assert.Zero(t, report.SampleRate(0))
}

func TestSample(t *testing.T) {
	products := make([]model.ProductRecord, 50)
	for i := range products {
		products[i].ID = i + 1
	}

	first := Sample(products, 10, 42)
	second := Sample(products, 10, 42)
	require.Len(t, first, 10)
	assert.Equal(t, first, second, "same seed selects the same rows")

	seen := map[int]bool{}
	for _, p := range first {
		assert.False(t, seen[p.ID], "row %d sampled twice", p.ID)
		seen[p.ID] = true
	}

	assert.NotEqual(t, ids(first), ids(Sample(products, 10, 7)))
}

func TestSample_Sizes(t *testing.T) {
	products := testutil.NewCatalog().WithBasicCatalog().Products()

	tests := []struct {
		name string
		size int
		want int
	}{
		{name: "smaller than catalog", size: 3, want: 3},
		{name: "larger than catalog", size: 500, want: 6},
		{name: "zero", size: 0, want: 0},
		{name: "negative", size: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Sample(products, tt.size, 42), tt.want)
		})
	}
}

func ids(products []model.ProductRecord) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
