package pricing

// Portuguese IVA (VAT) bands, in percent.
const (
	RateReduced      = 6  // books, medicines, certain food items
	RateIntermediate = 13 // most food products, cosmetics
	RateStandard     = 23 // everything else
)

// DefaultRate is applied when neither the item rate nor the category resolves.
const DefaultRate = RateStandard

// categoryRates maps product category identifiers to their IVA band.
// Categories not listed fall back to DefaultRate.
var categoryRates = map[string]int{
	"mercearia":         RateIntermediate,
	"talho":             RateIntermediate,
	"peixaria":          RateIntermediate,
	"cosmeticos":        RateIntermediate,
	"produtosCaboVerde": RateIntermediate,
	"outros":            RateStandard,
}

// ValidRate reports whether rate is one of the three legal IVA bands.
func ValidRate(rate int) bool {
	return rate == RateReduced || rate == RateIntermediate || rate == RateStandard
}

// RateForCategory returns the IVA band for a product category, falling back
// to DefaultRate for unknown categories.
func RateForCategory(categoryID string) int {
	if rate, ok := categoryRates[categoryID]; ok {
		return rate
	}
	return DefaultRate
}

// EffectiveRate resolves the IVA band for an item: the item rate when it is a
// legal band, otherwise the category band.
func EffectiveRate(itemRate int, categoryID string) int {
	if ValidRate(itemRate) {
		return itemRate
	}
	return RateForCategory(categoryID)
}

// RateDescription returns the Portuguese invoice label for an IVA band.
func RateDescription(rate int) string {
	switch rate {
	case RateReduced:
		return "IVA Reduzido (6%)"
	case RateIntermediate:
		return "IVA Intermédio (13%)"
	case RateStandard:
		return "IVA Normal (23%)"
	default:
		return "IVA"
	}
}
