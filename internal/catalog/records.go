package catalog

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/shopspring/decimal"
)

// ChangedLayout formats the changed column of appended product rows.
const ChangedLayout = "2006-01-02 15:04:05.000"

// Column names.
const (
	ColXCode       = "xcode"
	ColXName       = "xname"
	ColCategory    = "category"
	ColBrand       = "brand"
	ColLitrag      = "litrag"
	ColCatLitrag   = "catlitrag"
	ColProizvod    = "proizvod"
	ColBrand2      = "brand2"
	ColProizvod2   = "proizvod2"
	ColPackQnt     = "packqnt"
	ColPack        = "pack"
	ColSubcategory = "subcategory"
	ColID          = "id"
	ColChanged     = "changed"
	ColSKU         = "sku"
	ColVkus        = "vkus"
)

// ProductColumns is the column order of the product catalog.
var ProductColumns = []string{
	ColXCode, ColXName, ColCategory, ColBrand, ColLitrag, ColCatLitrag, ColProizvod,
	ColBrand2, ColProizvod2, ColPackQnt, ColPack, ColSubcategory, ColID, ColChanged,
}

// SKUColumns is the column order of the SKU catalog.
var SKUColumns = []string{ColXCode, ColXName, ColSKU, ColVkus, ColPack, ColID}

// Columns the learning engine needs besides xcode and xname.
var (
	ProductTrainingColumns = []string{ColBrand, ColCategory, ColSubcategory, ColLitrag, ColCatLitrag, ColPack}
	SKUTrainingColumns     = []string{ColVkus}
)

// NormalizeXCode trims a product code and drops the fractional zero that
// spreadsheets add to numeric codes, so "123.0" becomes "123". Codes with
// leading zeros are kept as written.
func NormalizeXCode(code string) string {
	code = strings.TrimSpace(code)
	if !strings.ContainsAny(code, ".eE") {
		return code
	}
	d, err := decimal.NewFromString(code)
	if err != nil || !d.IsInteger() {
		return code
	}
	return d.String()
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	return parser.ParseDecimal(s)
}

func parseInt(s string) (int, bool) {
	s = NormalizeXCode(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewProducts reads the candidate rows of an input table.
func NewProducts(t *Table) ([]model.NewProduct, error) {
	if err := t.RequireColumns(ColXCode, ColXName); err != nil {
		return nil, err
	}

	products := make([]model.NewProduct, 0, t.Len())
	for i := range t.Rows {
		products = append(products, model.NewProduct{
			XCode: NormalizeXCode(t.Value(i, ColXCode)),
			XName: t.Value(i, ColXName),
		})
	}
	return products, nil
}

// Products decodes the product catalog. Only xcode and xname are required;
// the other columns read as empty when absent.
func Products(t *Table) ([]model.ProductRecord, error) {
	if err := t.RequireColumns(ColXCode, ColXName); err != nil {
		return nil, err
	}

	products := make([]model.ProductRecord, 0, t.Len())
	for i := range t.Rows {
		p := model.ProductRecord{
			XCode:       NormalizeXCode(t.Value(i, ColXCode)),
			XName:       t.Value(i, ColXName),
			Category:    t.Value(i, ColCategory),
			Brand:       t.Value(i, ColBrand),
			CatLitrag:   t.Value(i, ColCatLitrag),
			Proizvod:    t.Value(i, ColProizvod),
			Brand2:      t.Value(i, ColBrand2),
			Proizvod2:   t.Value(i, ColProizvod2),
			Pack:        t.Value(i, ColPack),
			Subcategory: t.Value(i, ColSubcategory),
			Changed:     t.Value(i, ColChanged),
		}
		if v, ok := parseNumber(t.Value(i, ColLitrag)); ok {
			p.Litrag = model.Ptr(v)
		}
		p.ID, _ = parseInt(t.Value(i, ColID))
		p.PackQnt, _ = parseInt(t.Value(i, ColPackQnt))
		products = append(products, p)
	}
	return products, nil
}

// SKUs decodes the SKU catalog.
func SKUs(t *Table) ([]model.SKURecord, error) {
	if err := t.RequireColumns(ColXCode, ColXName); err != nil {
		return nil, err
	}

	skus := make([]model.SKURecord, 0, t.Len())
	for i := range t.Rows {
		s := model.SKURecord{
			XCode: NormalizeXCode(t.Value(i, ColXCode)),
			XName: t.Value(i, ColXName),
			SKU:   t.Value(i, ColSKU),
			Vkus:  t.Value(i, ColVkus),
			Pack:  t.Value(i, ColPack),
		}
		s.ID, _ = parseInt(t.Value(i, ColID))
		skus = append(skus, s)
	}
	return skus, nil
}

// XCodes returns the normalized product codes of t.
func XCodes(t *Table) []string {
	codes := make([]string, 0, t.Len())
	for i := range t.Rows {
		if code := NormalizeXCode(t.Value(i, ColXCode)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// NextID returns one more than the largest id in t, or 1 for a table
// without ids.
func NextID(t *Table) int {
	maxID := 0
	for i := range t.Rows {
		if id, ok := parseInt(t.Value(i, ColID)); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// AppendProducts appends records to the product catalog with fresh ids and
// the changed timestamp. It returns the number of rows added.
func AppendProducts(t *Table, records []model.CategorizedRecord, changed time.Time) int {
	id := NextID(t)
	stamp := changed.Format(ChangedLayout)

	for _, r := range records {
		p := r.ProductRow()
		t.AppendRow(map[string]string{
			ColXCode:       p.XCode,
			ColXName:       p.XName,
			ColCategory:    p.Category,
			ColBrand:       p.Brand,
			ColLitrag:      formatFloat(*p.Litrag),
			ColCatLitrag:   p.CatLitrag,
			ColProizvod:    p.Proizvod,
			ColBrand2:      p.Brand2,
			ColProizvod2:   p.Proizvod2,
			ColPackQnt:     strconv.Itoa(p.PackQnt),
			ColPack:        p.Pack,
			ColSubcategory: p.Subcategory,
			ColID:          strconv.Itoa(id),
			ColChanged:     stamp,
		}, ProductColumns)
		id++
	}
	return len(records)
}

// AppendSKUs appends records to the SKU catalog with fresh ids.
func AppendSKUs(t *Table, records []model.CategorizedRecord) int {
	id := NextID(t)

	for _, r := range records {
		s := r.SKURow()
		t.AppendRow(map[string]string{
			ColXCode: s.XCode,
			ColXName: s.XName,
			ColSKU:   s.SKU,
			ColVkus:  s.Vkus,
			ColPack:  s.Pack,
			ColID:    strconv.Itoa(id),
		}, SKUColumns)
		id++
	}
	return len(records)
}

// UpdatedPath derives the default output path for an updated catalog:
// product1.xlsx becomes product1_updated.xlsx.
func UpdatedPath(path string) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_updated%s", strings.TrimSuffix(path, ext), ext)
}
