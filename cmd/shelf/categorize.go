package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/shelfsort/internal/catalog"
	"github.com/Veraticus/shelfsort/internal/categorizer"
	"github.com/Veraticus/shelfsort/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize new products and append them to the catalogs",
		Long: `Categorize reads a file of xcode/xname rows, skips codes already in the
product catalog and categorizes the rest. New rows are appended to copies of
the product and SKU catalogs.

Examples:
  shelf categorize --input new_products.xlsx
  shelf categorize --input new.csv --output-product out/product.xlsx --output-sku out/sku.xlsx
  shelf categorize --input new.xlsx --train`,
		RunE: runCategorize,
	}

	cmd.Flags().StringP("input", "i", "", "file with xcode and xname columns (.xlsx or .csv)")
	cmd.Flags().String("output-product", "", "updated product catalog (default: <product>_updated.<ext>)")
	cmd.Flags().String("output-sku", "", "updated SKU catalog (default: <sku>_updated.<ext>)")
	cmd.Flags().BoolP("train", "t", false, "retrain from the labeled catalogs before categorizing")
	cmd.Flags().Bool("auto-learn", false, "feed matched brand spellings back into the brand vocabulary")
	addCatalogFlags(cmd)

	_ = cmd.MarkFlagRequired("input")
	_ = viper.BindPFlag("categorize.auto_learn", cmd.Flags().Lookup("auto-learn"))

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}
	paths := catalogPaths(cmd, ws.cfg.Paths)

	if retrain, _ := cmd.Flags().GetBool("train"); retrain {
		result, trainErr := ws.train(ctx, paths, cmd.ErrOrStderr())
		if trainErr != nil {
			return trainErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderLearningSummary(result.Stats))
	}

	inputPath := pathFlag(cmd, "input", "")
	input, err := readCatalog(inputPath, catalog.ColXCode, catalog.ColXName)
	if err != nil {
		return err
	}
	productTable, err := readCatalog(paths.ProductCatalog, catalog.ColXCode, catalog.ColXName)
	if err != nil {
		return err
	}
	skuTable, err := readCatalog(paths.SKUCatalog, catalog.ColXCode, catalog.ColXName)
	if err != nil {
		return err
	}

	rows, err := catalog.NewProducts(input)
	if err != nil {
		return err
	}

	c := categorizer.New(ws.parser, ws.brands, ws.flavors, catalog.XCodes(productTable),
		categorizer.WithAutoLearn(ws.cfg.AutoLearn),
		categorizer.WithProgress(cli.NewProgressBar(cmd.ErrOrStderr())))

	fresh := c.CheckForNewProducts(rows)
	if len(fresh) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("No new products in %s", inputPath)))
		return nil
	}

	result, err := c.ProcessNewProducts(ctx, fresh)
	if err != nil {
		return err
	}

	if len(result.Records) > 0 {
		productOut := pathFlag(cmd, "output-product", catalog.UpdatedPath(paths.ProductCatalog))
		skuOut := pathFlag(cmd, "output-sku", catalog.UpdatedPath(paths.SKUCatalog))

		catalog.AppendProducts(productTable, result.Records, time.Now())
		catalog.AppendSKUs(skuTable, result.Records)

		if err := catalog.Write(productOut, productTable); err != nil {
			return fmt.Errorf("failed to write product catalog: %w", err)
		}
		if err := catalog.Write(skuOut, skuTable); err != nil {
			return fmt.Errorf("failed to write SKU catalog: %w", err)
		}

		slog.Info("Catalogs written", "product_catalog", productOut, "sku_catalog", skuOut)
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s and %s", productOut, skuOut)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBatchSummary(result.Stats, result.Failures))

	return nil
}
