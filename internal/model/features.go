// Package model defines the core domain models used throughout the application.
package model

// ProductType is the coarse kind of beverage named in a product title.
type ProductType string

// Product types recognized by the parser.
const (
	TypeWater       ProductType = "water"
	TypeBeverage    ProductType = "beverage"
	TypeJuice       ProductType = "juice"
	TypeNectar      ProductType = "nectar"
	TypeMors        ProductType = "mors"
	TypeKvass       ProductType = "kvass"
	TypeCola        ProductType = "cola"
	TypeLemonade    ProductType = "lemonade"
	TypeEnergyDrink ProductType = "energy_drink"
	TypeTea         ProductType = "tea"
	TypeCoffee      ProductType = "coffee"
)

// Packaging is the container type of a product.
type Packaging string

// Packaging kinds.
const (
	PackPET    Packaging = "PET"
	PackCan    Packaging = "CAN"
	PackGlass  Packaging = "GLASS"
	PackBottle Packaging = "BOTTLE"
	PackTetra  Packaging = "TETRA"
)

// Carbonation tells whether a drink is sparkling.
type Carbonation string

// Carbonation states.
const (
	Carbonated    Carbonation = "carbonated"
	NonCarbonated Carbonation = "non_carbonated"
)

// Attribute is a free-form tag found in a product title.
type Attribute string

// Known attributes.
const (
	AttrClarified    Attribute = "clarified"
	AttrWithPulp     Attribute = "with_pulp"
	AttrNoPulp       Attribute = "no_pulp"
	AttrNonAlcoholic Attribute = "non_alcoholic"
	AttrNatural      Attribute = "natural"
	AttrMineral      Attribute = "mineral"
	AttrDrinking     Attribute = "drinking"
	AttrTable        Attribute = "table"
	AttrTherapeutic  Attribute = "therapeutic"
)

// VolumeUnitLiters is the only unit volumes are reported in.
const VolumeUnitLiters = "L"

// ProductFeatures holds everything the parser could infer from one product name.
// A nil field means the value could not be inferred.
type ProductFeatures struct {
	Brand       *string
	ProductType *ProductType
	Volume      *float64
	VolumeUnit  *string
	Flavor      *string
	Packaging   *Packaging
	Carbonation *Carbonation
	Original    string
	Attributes  []Attribute
	Confidence  float64
	SugarFree   bool
}

// VolumeOrZero returns the volume in liters, or 0 when unknown.
func (f ProductFeatures) VolumeOrZero() float64 {
	if f.Volume == nil {
		return 0
	}
	return *f.Volume
}

// IsType reports whether the product type is known and one of types.
func (f ProductFeatures) IsType(types ...ProductType) bool {
	if f.ProductType == nil {
		return false
	}
	for _, t := range types {
		if *f.ProductType == t {
			return true
		}
	}
	return false
}

// IsCarbonated reports whether carbonation is known to be present.
func (f ProductFeatures) IsCarbonated() bool {
	return f.Carbonation != nil && *f.Carbonation == Carbonated
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
