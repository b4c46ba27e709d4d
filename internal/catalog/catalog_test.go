package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_CSV(t *testing.T) {
	path := testutil.WriteCSV(t, "input.csv", []string{"xcode", "xname"},
		[]string{"123", "Напиток ДОБРЫЙ КОЛА 1Л"},
		[]string{"", ""},
		[]string{"456.0", " PEPSI 0,33Л "},
	)

	table, err := Read(path)
	require.NoError(t, err)

	products, err := NewProducts(table)
	require.NoError(t, err)
	assert.Equal(t, []model.NewProduct{
		{XCode: "123", XName: "Напиток ДОБРЫЙ КОЛА 1Л"},
		{XCode: "456", XName: "PEPSI 0,33Л"},
	}, products)
}

func TestRead_CSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFxcode,xname\n1,ВОДА\n"), 0o600))

	table, err := Read(path)
	require.NoError(t, err)

	assert.True(t, table.Has("xcode"))
	assert.Equal(t, "1", table.Value(0, "xcode"))
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(txt, []byte("xcode,xname\n"), 0o600))

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "unsupported extension", path: txt, want: common.ErrUnsupportedFormat},
		{name: "missing csv", path: filepath.Join(dir, "absent.csv"), want: common.ErrMissingFile},
		{name: "missing xlsx", path: filepath.Join(dir, "absent.xlsx"), want: common.ErrMissingFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.path)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, common.IsInputError(err))
		})
	}
}

func TestRequireColumns(t *testing.T) {
	table := NewTable("XCode", "brand")

	assert.NoError(t, table.RequireColumns("xcode", "BRAND"))

	err := table.RequireColumns("xcode", "xname", "vkus")
	require.ErrorIs(t, err, common.ErrMissingColumn)
	assert.Contains(t, err.Error(), "xname, vkus")

	_, err = NewProducts(table)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestNormalizeXCode(t *testing.T) {
	tests := map[string]string{
		"123":     "123",
		" 123 ":   "123",
		"123.0":   "123",
		"1.23e3":  "1230",
		"00123":   "00123",
		"12.5":    "12.5",
		"A-100.E": "A-100.E",
		"":        "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeXCode(in), "input %q", in)
	}
}

func TestProductsAndSKUs(t *testing.T) {
	table := NewTable("id", "xcode", "xname", "brand", "litrag", "catlitrag", "packqnt", "vkus", "sku")
	table.Rows = [][]string{
		{"1", "1001", "ДОБРЫЙ КОЛА 1Л", "ДОБРЫЙ", "1", "1,0-1,5л", "1", "КОЛА", "ДОБРЫЙ КОЛА"},
		{"2.0", "1002", "PEPSI 0,33Л", "PEPSI", "0,33", "0-0,4л", "", "КОЛА", "PEPSI КОЛА"},
		{"3", "1003", "ВОДА", "LOCAL", "nan", "неизвестно", "6"},
	}

	products, err := Products(table)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "ДОБРЫЙ", products[0].Brand)
	require.NotNil(t, products[0].Litrag)
	assert.InDelta(t, 1.0, *products[0].Litrag, 1e-9)

	assert.Equal(t, 2, products[1].ID)
	require.NotNil(t, products[1].Litrag)
	assert.InDelta(t, 0.33, *products[1].Litrag, 1e-9)
	assert.Zero(t, products[1].PackQnt)

	assert.Nil(t, products[2].Litrag)
	assert.Equal(t, 6, products[2].PackQnt)
	assert.Empty(t, products[2].Category)

	skus, err := SKUs(table)
	require.NoError(t, err)
	assert.Equal(t, model.SKURecord{ID: 1, XCode: "1001", XName: "ДОБРЫЙ КОЛА 1Л", SKU: "ДОБРЫЙ КОЛА", Vkus: "КОЛА"}, skus[0])
	assert.Empty(t, skus[2].Vkus)

	assert.Equal(t, []string{"1001", "1002", "1003"}, XCodes(table))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(NewTable("id", "xcode")))

	table := NewTable("id", "xcode")
	table.Rows = [][]string{{"7", "a"}, {"12.0", "b"}, {"x", "c"}, {"3", "d"}}
	assert.Equal(t, 13, NextID(table))
}

func categorized(xcode, brand, flavor string) model.CategorizedRecord {
	return model.CategorizedRecord{
		XCode:       xcode,
		XName:       brand + " " + flavor,
		Category:    "газировка",
		Brand:       brand,
		Litrag:      0.5,
		CatLitrag:   "0,4-0,6л",
		Proizvod:    "LOCAL",
		Brand2:      brand,
		Proizvod2:   "LOCAL",
		PackQnt:     1,
		Pack:        "PET",
		Subcategory: "Прочие напитки",
		SKU:         brand + " " + flavor,
		Vkus:        flavor,
	}
}

func TestAppendProducts(t *testing.T) {
	table := NewTable("id", "xcode", "xname", "note")
	table.Rows = [][]string{{"41", "1", "старый", "keep me"}}
	changed := time.Date(2024, 5, 6, 7, 8, 9, 120_000_000, time.UTC)

	added := AppendProducts(table, []model.CategorizedRecord{
		categorized("2", "ДОБРЫЙ", "КОЛА"),
		categorized("3", "PEPSI", "ЛИМОН"),
	}, changed)

	assert.Equal(t, 2, added)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "keep me", table.Value(0, "note"))
	for _, column := range ProductColumns {
		assert.True(t, table.Has(column), column)
	}

	assert.Equal(t, "42", table.Value(1, ColID))
	assert.Equal(t, "43", table.Value(2, ColID))
	assert.Equal(t, "2024-05-06 07:08:09.120", table.Value(1, ColChanged))
	assert.Equal(t, "0.5", table.Value(1, ColLitrag))
	assert.Equal(t, "1", table.Value(1, ColPackQnt))
	assert.Equal(t, "ДОБРЫЙ", table.Value(1, ColBrand2))
	assert.Empty(t, table.Value(1, "note"))
}

func TestAppendSKUs(t *testing.T) {
	table := NewTable(SKUColumns...)

	added := AppendSKUs(table, []model.CategorizedRecord{categorized("2", "ДОБРЫЙ", "КОЛА")})

	assert.Equal(t, 1, added)
	assert.Equal(t, SKUColumns, table.Header)
	assert.Equal(t, []string{"2", "ДОБРЫЙ КОЛА", "ДОБРЫЙ КОЛА", "КОЛА", "PET", "1"}, table.Rows[0])
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, ext := range []string{ExtCSV, ExtXLSX} {
		t.Run(ext, func(t *testing.T) {
			table := NewTable(SKUColumns...)
			AppendSKUs(table, []model.CategorizedRecord{
				categorized("00123", "ДОБРЫЙ", "КОЛА"),
				categorized("456", "ЧИСТОЗЕРЬЕ", "CLASSIC"),
			})
			path := filepath.Join(t.TempDir(), "sku"+ext)

			require.NoError(t, Write(path, table))
			got, err := Read(path)
			require.NoError(t, err)

			skus, err := SKUs(got)
			require.NoError(t, err)
			require.Len(t, skus, 2)
			assert.Equal(t, "00123", skus[0].XCode)
			assert.Equal(t, "ДОБРЫЙ КОЛА", skus[0].SKU)
			assert.Equal(t, 2, skus[1].ID)
			assert.Equal(t, "CLASSIC", skus[1].Vkus)
		})
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "out.json"), NewTable("xcode"))
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestWrite_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := Write(filepath.Join(blocker, "out.csv"), NewTable("xcode"))
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestUpdatedPath(t *testing.T) {
	assert.Equal(t, "product1_updated.xlsx", UpdatedPath("product1.xlsx"))
	assert.Equal(t, "/data/sku_vkus_updated.csv", UpdatedPath("/data/sku_vkus.csv"))
}
