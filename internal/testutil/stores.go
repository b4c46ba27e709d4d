package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/shelfsort/internal/matcher"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/store"
)

// Stores holds in-memory versions of every persisted document.
type Stores struct {
	Brands    *store.Memory[model.BrandsDB]
	Flavors   *store.Memory[model.FlavorsDB]
	Knowledge *store.Memory[model.KnowledgeBase]
}

// NewStores creates empty in-memory stores.
func NewStores() *Stores {
	return &Stores{
		Brands:    store.NewMemory(model.NewBrandsDB),
		Flavors:   store.NewMemory(model.NewFlavorsDB),
		Knowledge: store.NewMemory(model.NewKnowledgeBase),
	}
}

// Matchers builds brand and flavor matchers over the stores and registers
// brands in the brand vocabulary.
func (s *Stores) Matchers(t *testing.T, brands ...string) (*matcher.BrandMatcher, *matcher.FlavorMatcher) {
	t.Helper()
	ctx := context.Background()

	bm, err := matcher.NewBrandMatcher(ctx, s.Brands)
	if err != nil {
		t.Fatalf("failed to create brand matcher: %v", err)
	}
	for _, b := range brands {
		if err := bm.AddBrand(ctx, b); err != nil {
			t.Fatalf("failed to add brand %q: %v", b, err)
		}
	}

	fm, err := matcher.NewFlavorMatcher(ctx, s.Flavors)
	if err != nil {
		t.Fatalf("failed to create flavor matcher: %v", err)
	}
	return bm, fm
}
