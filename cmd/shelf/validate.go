package main

import (
	"fmt"

	"github.com/Veraticus/shelfsort/internal/cli"
	"github.com/Veraticus/shelfsort/internal/learning"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check parsing and brand matching against a labeled sample",
		Long: `Validate re-parses a random sample of the labeled product catalog and
reports how often brand, volume and packaging agree with the labels. The
same seed always draws the same sample.`,
		RunE: runValidate,
	}

	cmd.Flags().Int("sample", 0, "sample size (default from validation.sample_size)")
	cmd.Flags().Uint64("seed", 0, "sample seed (default from validation.seed)")
	addCatalogFlags(cmd)

	_ = viper.BindPFlag("validation.sample_size", cmd.Flags().Lookup("sample"))
	_ = viper.BindPFlag("validation.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	products, _, err := readTrainingData(catalogPaths(cmd, ws.cfg.Paths))
	if err != nil {
		return err
	}

	engine := learning.New(ws.parser, ws.brands, ws.flavors, ws.knowledge,
		learning.WithProgress(cli.NewProgressBar(cmd.ErrOrStderr())))
	report := engine.Validate(products, ws.cfg.Validation.SampleSize, ws.cfg.Validation.Seed)

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderValidation(report))

	return nil
}
