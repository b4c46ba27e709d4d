package categorizer

import (
	"strings"

	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/Veraticus/shelfsort/internal/parser"
	"github.com/Veraticus/shelfsort/internal/translit"
)

// Main categories.
const (
	CategoryWater  = "вода"
	CategorySoda   = "газировка"
	CategoryOther  = "прочее"
	CategoryEnergy = "энергетик"
)

// Subcategories.
const (
	SubGlobalSodaSmall  = "Газированные напитки мировых брендов менее 0,8л"
	SubGlobalSodaLarge  = "Газированные напитки мировых брендов более 0,8л"
	SubRussianSodaSmall = "Газированные напитки российских брендов менее 0,8л"
	SubRussianSodaLarge = "Газированные напитки российских брендов более 0,8л"
	SubMineralSparkling = "Вода минеральная газированная"
	SubMineralStill     = "Вода минеральная негазированная"
	SubDrinkingWater    = "Вода питьевая"
	SubJuiceSmall       = "Соки и нектары менее 0,5л"
	SubJuiceMedium      = "Соки и нектары более 0,5л и до 1,5л"
	SubJuiceLarge       = "Соки и нектары более 1,5л"
	SubEnergy           = "Энергетические напитки"
	SubOther            = "Прочие напитки"
)

// UnknownVolumeBucket is the catlitrag of products without a volume.
const UnknownVolumeBucket = "неизвестно"

const (
	largeSodaVolume   = 0.8
	smallJuiceVolume  = 0.5
	mediumJuiceVolume = 1.5
)

// GlobalBrands are the brands whose sodas are filed as world brands.
var GlobalBrands = []string{"COCA-COLA", "PEPSI", "SCHWEPPES", "SPRITE", "FANTA"}

// subject is what every rule looks at: the upper-cased name and its features.
type subject struct {
	name     string
	features model.ProductFeatures
	category string
}

func (s subject) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(s.name, w) {
			return true
		}
	}
	return false
}

type rule struct {
	when  func(s subject) bool
	label string
}

func firstMatch(rules []rule, s subject, fallback string) string {
	for _, r := range rules {
		if r.when(s) {
			return r.label
		}
	}
	return fallback
}

// categoryRules are evaluated in order; the first match wins.
var categoryRules = []rule{
	{
		when: func(s subject) bool {
			return s.has("ВОДА") && s.has("МИНЕРАЛЬНАЯ", "ПИТЬЕВАЯ")
		},
		label: CategoryWater,
	},
	{
		when: func(s subject) bool {
			return s.features.IsCarbonated() &&
				s.features.IsType(model.TypeBeverage, model.TypeCola, model.TypeLemonade)
		},
		label: CategorySoda,
	},
	{
		when:  func(s subject) bool { return s.features.IsType(model.TypeJuice, model.TypeNectar, model.TypeMors) },
		label: CategoryOther,
	},
	{
		when:  func(s subject) bool { return s.has("ЭНЕРГЕТИК") || s.features.IsType(model.TypeEnergyDrink) },
		label: CategoryEnergy,
	},
	{
		when:  func(s subject) bool { return s.features.IsType(model.TypeTea, model.TypeCoffee) },
		label: CategoryOther,
	},
	{
		when:  func(s subject) bool { return s.features.IsCarbonated() },
		label: CategorySoda,
	},
}

func isSoda(s subject) bool { return s.category == CategorySoda }
func isWater(s subject) bool { return s.category == CategoryWater }
func isJuice(s subject) bool { return s.features.IsType(model.TypeJuice, model.TypeNectar) }
func isGlobal(s subject) bool { return s.has(GlobalBrands...) }
func isLarge(s subject) bool { return s.features.VolumeOrZero() >= largeSodaVolume }

// subcategoryRules are evaluated in order; the first match wins.
var subcategoryRules = []rule{
	{when: func(s subject) bool { return isSoda(s) && isGlobal(s) && !isLarge(s) }, label: SubGlobalSodaSmall},
	{when: func(s subject) bool { return isSoda(s) && isGlobal(s) }, label: SubGlobalSodaLarge},
	{when: func(s subject) bool { return isSoda(s) && !isLarge(s) }, label: SubRussianSodaSmall},
	{when: isSoda, label: SubRussianSodaLarge},
	{when: func(s subject) bool { return isWater(s) && s.has("МИНЕРАЛЬНАЯ") && s.has("ГАЗ") }, label: SubMineralSparkling},
	{when: func(s subject) bool { return isWater(s) && s.has("МИНЕРАЛЬНАЯ") }, label: SubMineralStill},
	{when: isWater, label: SubDrinkingWater},
	{when: func(s subject) bool { return isJuice(s) && s.features.VolumeOrZero() <= smallJuiceVolume }, label: SubJuiceSmall},
	{when: func(s subject) bool { return isJuice(s) && s.features.VolumeOrZero() <= mediumJuiceVolume }, label: SubJuiceMedium},
	{when: isJuice, label: SubJuiceLarge},
	{when: func(s subject) bool { return s.category == CategoryEnergy }, label: SubEnergy},
}

// volumeBands are upper bounds, exclusive, in ascending order.
var volumeBands = []struct {
	below float64
	label string
}{
	{0.4, "0-0,4л"},
	{0.6, "0,4-0,6л"},
	{1.0, "0,6-1л"},
	{1.5, "1,0-1,5л"},
	{2.0, "1,5-2,0л"},
	{2.5, "2,0-2,5л"},
}

const largestVolumeBucket = "2,5л+"

// producers maps brand fragments to their producer. The first fragment
// contained in the brand wins.
var producers = []struct {
	brand    string
	producer string
}{
	{"COCA-COLA", "COCA-COLA"},
	{"PEPSI", "PEPSICO"},
	{"ДОБРЫЙ", "PEPSICO"},
	{"ФРУКТОВЫЙ САД", "PEPSICO"},
	{"J7", "PEPSICO"},
	{"ADRENALINE", "ADRENALINE RUSH"},
	{"RICH", "COCA-COLA"},
	{"BONAQUA", "COCA-COLA"},
	{"SCHWEPPES", "COCA-COLA"},
}

// DetermineCategory assigns the main category of a product.
func DetermineCategory(features model.ProductFeatures, xname string) string {
	s := subject{name: translit.Upper(xname), features: features}
	return firstMatch(categoryRules, s, CategoryOther)
}

// DetermineSubcategory assigns the subcategory within category.
func DetermineSubcategory(features model.ProductFeatures, category, xname string) string {
	s := subject{name: translit.Upper(xname), features: features, category: category}
	return firstMatch(subcategoryRules, s, SubOther)
}

// VolumeBucket returns the catlitrag label for a volume in liters.
// Each band includes its lower bound. A missing or zero volume is unknown.
func VolumeBucket(volume *float64) string {
	if volume == nil || *volume <= 0 {
		return UnknownVolumeBucket
	}
	for _, band := range volumeBands {
		if *volume < band.below {
			return band.label
		}
	}
	return largestVolumeBucket
}

// DetermineProducer resolves the producer from the brand, falling back to a
// parenthesized name in xname and then to LOCAL.
func DetermineProducer(brand, xname string) string {
	brand = translit.Upper(brand)
	for _, p := range producers {
		if strings.Contains(brand, p.brand) {
			return p.producer
		}
	}

	if inner, ok := parser.Parenthesized(translit.Upper(xname)); ok && !parser.HasLegalMarker(inner) {
		return inner
	}
	return model.LocalBrand
}

// SKULabel joins brand and flavor. An empty brand is reported as LOCAL.
func SKULabel(brand, flavor string) string {
	if brand == "" {
		brand = model.LocalBrand
	}
	if flavor == "" {
		return brand
	}
	return brand + " " + flavor
}
