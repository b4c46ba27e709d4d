package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/shelfsort/internal/catalog"
	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/Veraticus/shelfsort/internal/config"
	"github.com/Veraticus/shelfsort/internal/matcher"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/Veraticus/shelfsort/internal/store"
	"github.com/spf13/cobra"
)

// workspace holds the stores and matchers every command works with.
type workspace struct {
	cfg       *config.Config
	knowledge *store.JSONFile[model.KnowledgeBase]
	kb        *model.KnowledgeBase
	parser    *parser.Parser
	brands    *matcher.BrandMatcher
	flavors   *matcher.FlavorMatcher
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	knowledge := store.Knowledge(cfg.Paths.KnowledgeBase)
	kb, err := knowledge.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	brands, err := matcher.NewBrandMatcher(ctx, store.Brands(cfg.Paths.BrandsDB))
	if err != nil {
		return nil, fmt.Errorf("failed to load brand vocabulary: %w", err)
	}

	flavors, err := matcher.NewFlavorMatcher(ctx, store.Flavors(cfg.Paths.FlavorsDB))
	if err != nil {
		return nil, fmt.Errorf("failed to load flavor vocabulary: %w", err)
	}

	slog.Debug("Workspace loaded",
		"brands", len(brands.KnownBrands()),
		"flavors", len(flavors.Flavors()),
		"knowledge_base", knowledge.Path())

	return &workspace{
		cfg:       cfg,
		knowledge: knowledge,
		kb:        kb,
		parser:    parser.New(kb),
		brands:    brands,
		flavors:   flavors,
	}, nil
}

// readCatalog reads a tabular file and checks that it has the given columns.
func readCatalog(path string, columns ...string) (*catalog.Table, error) {
	table, err := catalog.Read(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot read %s", path), err)
	}
	if err := table.RequireColumns(columns...); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s has an unexpected layout", path), err)
	}
	return table, nil
}

// readTrainingData loads the labeled product and SKU catalogs.
func readTrainingData(paths config.Paths) ([]model.ProductRecord, []model.SKURecord, error) {
	productTable, err := readCatalog(paths.ProductCatalog,
		append([]string{catalog.ColXCode, catalog.ColXName}, catalog.ProductTrainingColumns...)...)
	if err != nil {
		return nil, nil, err
	}
	skuTable, err := readCatalog(paths.SKUCatalog,
		append([]string{catalog.ColXCode, catalog.ColXName}, catalog.SKUTrainingColumns...)...)
	if err != nil {
		return nil, nil, err
	}

	products, err := catalog.Products(productTable)
	if err != nil {
		return nil, nil, err
	}
	skus, err := catalog.SKUs(skuTable)
	if err != nil {
		return nil, nil, err
	}

	return products, skus, nil
}

// pathFlag returns the value of a path flag when it was set, else fallback.
func pathFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback
	}
	return config.ExpandPath(value)
}

// addCatalogFlags registers the flags overriding the labeled catalog paths.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().String("product", "", "labeled product catalog (default from paths.product_catalog)")
	cmd.Flags().String("sku", "", "labeled SKU catalog (default from paths.sku_catalog)")
}

// catalogPaths applies the catalog flags of cmd to the configured paths.
func catalogPaths(cmd *cobra.Command, paths config.Paths) config.Paths {
	paths.ProductCatalog = pathFlag(cmd, "product", paths.ProductCatalog)
	paths.SKUCatalog = pathFlag(cmd, "sku", paths.SKUCatalog)
	return paths
}
