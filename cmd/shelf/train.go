package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/shelfsort/internal/cli"
	"github.com/Veraticus/shelfsort/internal/config"
	"github.com/Veraticus/shelfsort/internal/learning"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/spf13/cobra"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Learn brands, flavors and patterns from the labeled catalogs",
		Long: `Train scans the labeled product and SKU catalogs and rebuilds the
knowledge base. Brand variations and flavor aliases found along the way are
merged into the brand and flavor vocabularies.

The brand vocabulary is saved when the brand pass finishes, the flavor
vocabulary when the flavor pass finishes, and the knowledge base last.
An interrupted run keeps the vocabularies of the passes that completed
and leaves the previous knowledge base in place.

Examples:
  shelf train
  shelf train --product product1.xlsx --sku sku_vkus.xlsx`,
		RunE: runTrain,
	}

	addCatalogFlags(cmd)

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	result, err := ws.train(ctx, catalogPaths(cmd, ws.cfg.Paths), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderLearningSummary(result.Stats))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Knowledge base saved to "+ws.knowledge.Path()))

	return nil
}

// train runs a learning pass and switches the workspace parser to the new
// knowledge base.
func (ws *workspace) train(ctx context.Context, paths config.Paths, progress io.Writer) (*learning.Result, error) {
	products, skus, err := readTrainingData(paths)
	if err != nil {
		return nil, err
	}

	slog.Info("Training", "product_catalog", paths.ProductCatalog, "sku_catalog", paths.SKUCatalog)

	engine := learning.New(ws.parser, ws.brands, ws.flavors, ws.knowledge,
		learning.WithProgress(cli.NewProgressBar(progress)))

	result, err := engine.LearnFromData(ctx, products, skus)
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}

	ws.kb = result.Knowledge
	ws.parser = parser.New(result.Knowledge)

	return result, nil
}
