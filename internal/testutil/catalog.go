// Package testutil provides catalog fixtures and in-memory stores for tests.
//
// Example usage:
//
//	catalog := testutil.NewCatalog().
//		WithBasicCatalog().
//		WithProduct("2001", "ЛИМОНАД ТАРХУН 0,5Л", "LOCAL", "ТАРХУН")
//
//	result, err := engine.LearnFromData(ctx, catalog.Products(), catalog.SKUs())
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/shelfsort/internal/model"
)

// Row is one labeled product as it appears in both catalogs.
type Row struct {
	XCode       string
	XName       string
	Brand       string
	Vkus        string
	Category    string
	Subcategory string
	CatLitrag   string
	Pack        string
	Litrag      float64
}

// BasicRows is a small labeled history covering every category.
// Fields: xcode, xname, brand, vkus, category, subcategory, catlitrag, pack, litrag.
var BasicRows = []Row{
	{"1001", "Напиток ДОБРЫЙ КОЛА ГАЗ. ПЭТ 1Л", "ДОБРЫЙ", "КОЛА",
		"газировка", "Газированные напитки российских брендов более 0,8л", "1,0-1,5л", "PET", 1.0},
	{"1002", "PEPSI COLA ZERO Ж/Б 0,33Л", "PEPSI", "КОЛА",
		"газировка", "Газированные напитки мировых брендов менее 0,8л", "0-0,4л", "CAN", 0.33},
	{"1003", "Минеральная вода ЧИСТОЗЕРЬЕ ГАЗ. ПЭТ 0,5Л", "ЧИСТОЗЕРЬЕ", "CLASSIC",
		"вода", "Вода минеральная газированная", "0,4-0,6л", "PET", 0.5},
	{"1004", "ФРУСТИНО НАПИТОК Б/А ДЮШЕС 0,5Л(ВЭЗН):20", "ФРУСТИНО", "ДЮШЕС",
		"газировка", "Газированные напитки российских брендов менее 0,8л", "0,4-0,6л", "PET", 0.5},
	{"1005", "КРАСАВЧИК НЕКТАР ЯБЛОКО 0,95Л(САНФРУТ-ТРЕЙД):12", "LOCAL", "ЯБЛОКО",
		"прочее", "Соки и нектары более 0,5л и до 1,5л", "0,6-1л", "TETRA", 0.95},
	{"1006", "Напиток ДОБРЫЙ АПЕЛЬСИН ГАЗ. ПЭТ 2Л", "ДОБРЫЙ", "АПЕЛЬСИН",
		"газировка", "Газированные напитки российских брендов более 0,8л", "2,0-2,5л", "PET", 2.0},
}

// CatalogBuilder assembles matching product and SKU catalogs.
type CatalogBuilder struct {
	rows []Row
}

// NewCatalog starts an empty catalog.
func NewCatalog() *CatalogBuilder {
	return &CatalogBuilder{}
}

// WithBasicCatalog adds BasicRows.
func (b *CatalogBuilder) WithBasicCatalog() *CatalogBuilder {
	b.rows = append(b.rows, BasicRows...)
	return b
}

// WithRow adds a fully specified row.
func (b *CatalogBuilder) WithRow(row Row) *CatalogBuilder {
	b.rows = append(b.rows, row)
	return b
}

// WithProduct adds a row with only the name, brand and flavor labels set.
func (b *CatalogBuilder) WithProduct(xcode, xname, brand, vkus string) *CatalogBuilder {
	return b.WithRow(Row{XCode: xcode, XName: xname, Brand: brand, Vkus: vkus})
}

// Products returns the product catalog with ids starting at 1.
func (b *CatalogBuilder) Products() []model.ProductRecord {
	products := make([]model.ProductRecord, 0, len(b.rows))
	for i, r := range b.rows {
		p := model.ProductRecord{
			ID:          i + 1,
			XCode:       r.XCode,
			XName:       r.XName,
			Category:    r.Category,
			Brand:       r.Brand,
			CatLitrag:   r.CatLitrag,
			Pack:        r.Pack,
			Subcategory: r.Subcategory,
			PackQnt:     1,
		}
		if r.Litrag != 0 {
			p.Litrag = model.Ptr(r.Litrag)
		}
		products = append(products, p)
	}
	return products
}

// SKUs returns the SKU catalog with ids starting at 1.
func (b *CatalogBuilder) SKUs() []model.SKURecord {
	skus := make([]model.SKURecord, 0, len(b.rows))
	for i, r := range b.rows {
		skus = append(skus, model.SKURecord{
			ID:    i + 1,
			XCode: r.XCode,
			XName: r.XName,
			SKU:   r.Brand + " " + r.Vkus,
			Vkus:  r.Vkus,
			Pack:  r.Pack,
		})
	}
	return skus
}

// XCodes returns the set of product codes in the catalog.
func (b *CatalogBuilder) XCodes() map[string]bool {
	codes := make(map[string]bool, len(b.rows))
	for _, r := range b.rows {
		codes[r.XCode] = true
	}
	return codes
}

// WriteCSV writes header and rows to name inside a fresh temporary directory
// and returns the file path.
func WriteCSV(t *testing.T, name string, header []string, rows ...[]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to write rows: %v", err)
	}
	return path
}
