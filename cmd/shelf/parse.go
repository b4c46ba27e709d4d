package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/shelfsort/internal/cli"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse NAME...",
		Short: "Show the features extracted from product names",
		Example: `  shelf parse "Напиток ДОБРЫЙ КОЛА газ. ПЭТ 1Л"
  shelf parse "PEPSI 0,33Л Ж/Б" "ЧИСТОЗЕРЬЕ вода 1,5л"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range args {
		if strings.TrimSpace(name) == "" {
			continue
		}
		features := ws.parser.Parse(name)
		match := ws.brands.MatchFromText(name)
		flavor, _ := ws.flavors.MatchFlavor(name)

		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderFeatures(features, match, flavor))
	}

	return nil
}
