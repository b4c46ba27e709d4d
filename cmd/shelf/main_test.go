package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/shelfsort/internal/catalog"
	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/Veraticus/shelfsort/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workdir struct {
	dir      string
	config   string
	products string
	skus     string
}

func setupWorkdir(t *testing.T) workdir {
	t.Helper()
	dir := t.TempDir()
	w := workdir{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		products: filepath.Join(dir, "product1.csv"),
		skus:     filepath.Join(dir, "sku_vkus.csv"),
	}

	config := fmt.Sprintf(`logging:
  level: error
paths:
  brands_db: %[1]s/brands_db.json
  flavors_db: %[1]s/flavors_db.json
  knowledge_base: %[1]s/knowledge_base.json
  product_catalog: %[2]s
  sku_catalog: %[3]s
validation:
  sample_size: 10
  seed: 7
`, dir, w.products, w.skus)
	require.NoError(t, os.WriteFile(w.config, []byte(config), 0o600))

	history := testutil.NewCatalog().WithBasicCatalog()

	products := catalog.NewTable(catalog.ProductColumns...)
	for _, p := range history.Products() {
		products.AppendRow(map[string]string{
			catalog.ColID:          strconv.Itoa(p.ID),
			catalog.ColXCode:       p.XCode,
			catalog.ColXName:       p.XName,
			catalog.ColCategory:    p.Category,
			catalog.ColBrand:       p.Brand,
			catalog.ColLitrag:      strconv.FormatFloat(*p.Litrag, 'f', -1, 64),
			catalog.ColCatLitrag:   p.CatLitrag,
			catalog.ColPack:        p.Pack,
			catalog.ColPackQnt:     "1",
			catalog.ColSubcategory: p.Subcategory,
		}, catalog.ProductColumns)
	}
	require.NoError(t, catalog.Write(w.products, products))

	skus := catalog.NewTable(catalog.SKUColumns...)
	for _, s := range history.SKUs() {
		skus.AppendRow(map[string]string{
			catalog.ColID:    strconv.Itoa(s.ID),
			catalog.ColXCode: s.XCode,
			catalog.ColXName: s.XName,
			catalog.ColSKU:   s.SKU,
			catalog.ColVkus:  s.Vkus,
			catalog.ColPack:  s.Pack,
		}, catalog.SKUColumns)
	}
	require.NoError(t, catalog.Write(w.skus, skus))

	return w
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_TrainParseCategorize(t *testing.T) {
	w := setupWorkdir(t)

	out, err := execute("--config", w.config, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "Training Complete")
	assert.Contains(t, out, "Knowledge base saved to "+filepath.Join(w.dir, "knowledge_base.json"))
	for _, name := range []string{"brands_db.json", "flavors_db.json", "knowledge_base.json"} {
		assert.FileExists(t, filepath.Join(w.dir, name))
	}

	out, err = execute("--config", w.config, "parse", "PEPSI COLA Ж/Б 0,33Л")
	require.NoError(t, err)
	assert.Contains(t, out, "PEPSI")
	assert.Contains(t, out, "CAN")

	out, err = execute("--config", w.config, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation")

	_, err = execute("--config", w.config, "categorize", "--input", filepath.Join(w.dir, "absent.xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingFile)

	input := testutil.WriteCSV(t, "new.csv", []string{"xcode", "xname"},
		[]string{"1001", "Напиток ДОБРЫЙ КОЛА ГАЗ. ПЭТ 1Л"},
		[]string{"2001", "Напиток ДОБРЫЙ ЛИМОН ГАЗ. ПЭТ 1,5Л"},
		[]string{"2002", ""},
	)
	productOut := filepath.Join(w.dir, "out", "product.csv")
	skuOut := filepath.Join(w.dir, "out", "sku.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(productOut), 0o750))

	out, err = execute("--config", w.config, "categorize",
		"--input", input, "--output-product", productOut, "--output-sku", skuOut)
	require.NoError(t, err)
	assert.Contains(t, out, "Categorization Complete")
	assert.Contains(t, out, "50.0%")

	updated, err := catalog.Read(productOut)
	require.NoError(t, err)
	records, err := catalog.Products(updated)
	require.NoError(t, err)
	require.Len(t, records, len(testutil.BasicRows)+1)

	added := records[len(records)-1]
	assert.Equal(t, "2001", added.XCode)
	assert.Equal(t, "ДОБРЫЙ", added.Brand)
	assert.Equal(t, "газировка", added.Category)
	assert.Equal(t, len(testutil.BasicRows)+1, added.ID)

	skuTable, err := catalog.Read(skuOut)
	require.NoError(t, err)
	skus, err := catalog.SKUs(skuTable)
	require.NoError(t, err)
	assert.Equal(t, "ДОБРЫЙ ЛИМОН", skus[len(skus)-1].SKU)
}

func TestCommands_Version(t *testing.T) {
	w := setupWorkdir(t)

	out, err := execute("--config", w.config, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shelf dev")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantHint bool
	}{
		{name: "missing file", err: common.NewUserError("cannot read new.xlsx", common.ErrMissingFile), wantHint: true},
		{name: "missing column", err: fmt.Errorf("product catalog: %w", common.ErrMissingColumn), wantHint: true},
		{name: "save failure", err: fmt.Errorf("save: %w", common.ErrPersistence), wantHint: false},
		{name: "other", err: errors.New("boom"), wantHint: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := errorMessage(tt.err)
			assert.Contains(t, msg, tt.err.Error())
			assert.Equal(t, tt.wantHint, strings.Contains(msg, "Nothing was processed"))
		})
	}
}
