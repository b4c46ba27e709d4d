package model

import "time"

// ProductRecord is one row of the product catalog.
type ProductRecord struct {
	Changed     string
	XCode       string
	XName       string
	Category    string
	Brand       string
	CatLitrag   string
	Proizvod    string
	Brand2      string
	Proizvod2   string
	Pack        string
	Subcategory string
	Litrag      *float64
	ID          int
	PackQnt     int
}

// SKURecord is one row of the SKU catalog.
type SKURecord struct {
	XCode string
	XName string
	SKU   string
	Vkus  string
	Pack  string
	ID    int
}

// NewProduct is a catalog candidate awaiting categorization.
type NewProduct struct {
	XCode string
	XName string
}

// CategorizedRecord is the categorizer's verdict for one product.
type CategorizedRecord struct {
	Timestamp       time.Time
	Carbonation     *Carbonation
	ProductType     *ProductType
	XCode           string
	XName           string
	Category        string
	Brand           string
	CatLitrag       string
	Proizvod        string
	Brand2          string
	Proizvod2       string
	Pack            string
	Subcategory     string
	SKU             string
	Vkus            string
	BrandConfidence float64
	Litrag          float64
	PackQnt         int
	SugarFree       bool
}

// ProductRow projects the record onto the product catalog columns.
func (r CategorizedRecord) ProductRow() ProductRecord {
	return ProductRecord{
		XCode:       r.XCode,
		XName:       r.XName,
		Category:    r.Category,
		Brand:       r.Brand,
		Litrag:      Ptr(r.Litrag),
		CatLitrag:   r.CatLitrag,
		Proizvod:    r.Proizvod,
		Brand2:      r.Brand2,
		Proizvod2:   r.Proizvod2,
		PackQnt:     r.PackQnt,
		Pack:        r.Pack,
		Subcategory: r.Subcategory,
	}
}

// SKURow projects the record onto the SKU catalog columns.
func (r CategorizedRecord) SKURow() SKURecord {
	return SKURecord{
		XCode: r.XCode,
		XName: r.XName,
		SKU:   r.SKU,
		Vkus:  r.Vkus,
		Pack:  r.Pack,
	}
}
