package parser

import "github.com/Veraticus/shelfsort/internal/model"

// keyword pairs a substring with the value it implies.
// Tables are scanned in order and the first hit wins, so more specific
// keywords must come before the ones they contain.
type keyword[T any] struct {
	text  string
	value T
}

func defaultPackaging() []keyword[model.Packaging] {
	return []keyword[model.Packaging]{
		{"ПЭТ", model.PackPET},
		{"PET", model.PackPET},
		{"Ж/Б", model.PackCan},
		{"Ж.Б", model.PackCan},
		{"ЖБ", model.PackCan},
		{"СТЕКЛО", model.PackGlass},
		{"БАНКА", model.PackCan},
		{"CAN", model.PackCan},
		{"БУТЫЛКА", model.PackBottle},
		{"BOTTLE", model.PackBottle},
		{"ЖЕСТЬ", model.PackCan},
		{"АЛЮМИНИЙ", model.PackCan},
		{"ТЕТРАПАК", model.PackTetra},
		{"TETRAPAK", model.PackTetra},
	}
}

// Negative phrases contain "ГАЗ" and are listed first.
func defaultCarbonation() []keyword[model.Carbonation] {
	return []keyword[model.Carbonation]{
		{"БЕЗ ГАЗА", model.NonCarbonated},
		{"НЕГАЗ", model.NonCarbonated},
		{"Н/ГАЗ", model.NonCarbonated},
		{"ГАЗИРОВАНН", model.Carbonated},
		{"ГАЗ", model.Carbonated},
	}
}

func defaultProductTypes() []keyword[model.ProductType] {
	return []keyword[model.ProductType]{
		{"ВОДА", model.TypeWater},
		{"НАПИТОК", model.TypeBeverage},
		{"СОК", model.TypeJuice},
		{"НЕКТАР", model.TypeNectar},
		{"МОРС", model.TypeMors},
		{"КВАС", model.TypeKvass},
		{"КОЛА", model.TypeCola},
		{"ЛИМОНАД", model.TypeLemonade},
		{"ЭНЕРГЕТИК", model.TypeEnergyDrink},
		{"ЧАЙ", model.TypeTea},
		{"КОФЕ", model.TypeCoffee},
	}
}

func defaultAttributes() []keyword[model.Attribute] {
	return []keyword[model.Attribute]{
		{"ОСВЕТЛ", model.AttrClarified},
		{"С МЯКОТЬЮ", model.AttrWithPulp},
		{"С МЯК", model.AttrWithPulp},
		{"БЕЗ МЯКОТИ", model.AttrNoPulp},
		{"Б/А", model.AttrNonAlcoholic},
		{"БЕЗАЛКОГОЛЬНЫЙ", model.AttrNonAlcoholic},
		{"НАТУРАЛЬНЫЙ", model.AttrNatural},
		{"МИНЕРАЛЬНАЯ", model.AttrMineral},
		{"ПИТЬЕВАЯ", model.AttrDrinking},
		{"СТОЛОВАЯ", model.AttrTable},
		{"ЛЕЧЕБНАЯ", model.AttrTherapeutic},
	}
}

var sugarFreePhrases = []string{
	"БЕЗ САХАРА",
	"ZERO",
	"ЗЕРО",
	"LIGHT",
	"ЛАЙТ",
	"SUGAR FREE",
}

// Category words that usually precede the brand. Longer phrases first.
var brandPrefixes = []string{
	"ЭНЕРГЕТИЧЕСКИЙ НАПИТОК",
	"МИНЕРАЛЬНАЯ ВОДА",
	"НАПИТОК",
	"ВОДА",
	"СОК",
	"НЕКТАР",
	"МОРС",
	"КВАС",
}

var genericWords = map[string]bool{
	"НАПИТОК": true,
	"ВОДА":    true,
	"СОК":     true,
	"НЕКТАР":  true,
	"МОРС":    true,
	"КВАС":    true,
}

var brandLegalMarkers = []string{":", ";", "ООО", "ОАО", "ЗАО"}

// DefaultFlavors is the built-in flavor vocabulary used when no knowledge
// base is available.
var DefaultFlavors = []string{
	"ЯБЛОКО", "АПЕЛЬСИН", "ЛИМОН", "ВИШНЯ", "ПЕРСИК", "ГРУША",
	"ДЮШЕС", "КЛУБНИКА", "МАЛИНА", "СМОРОДИНА", "ВИНОГРАД",
	"КОЛА", "ТАРХУН", "БУРАТИНО", "БАЙКАЛ", "САЯНЫ",
	"АНАНАС", "МАНГО", "МАНДАРИН", "ГРЕЙПФРУТ", "БАНАН",
	"ТОМАТ", "ТОМАТНЫЙ", "МУЛЬТИФРУКТ", "ТРОПИК",
}
