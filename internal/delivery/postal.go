package delivery

import (
	"regexp"
	"strconv"
	"strings"
)

// postalCodePattern matches Portuguese postal codes: XXXX-XXX, dash optional.
var postalCodePattern = regexp.MustCompile(`^(\d{4})-?(\d{3})$`)

// PostalRange is an inclusive range of 4-digit postal code prefixes.
type PostalRange struct {
	Start int
	End   int
}

// PostalValidator checks whether a postal code falls inside the configured
// serviceable ranges. The ranges are configuration, not fixed logic.
type PostalValidator struct {
	ranges []PostalRange
}

// DefaultPostalRanges covers the Almada municipality (prefixes 2700-2839).
func DefaultPostalRanges() []PostalRange {
	return []PostalRange{
		{Start: 2700, End: 2729}, // Almada central
		{Start: 2730, End: 2759}, // Caparica
		{Start: 2760, End: 2789}, // Costa
		{Start: 2790, End: 2839}, // extended Almada
	}
}

// NewPostalValidator creates a validator for the given serviceable ranges.
func NewPostalValidator(ranges []PostalRange) *PostalValidator {
	return &PostalValidator{ranges: ranges}
}

// Deliverable reports whether the postal code is well formed and its 4-digit
// prefix falls inside a serviceable range.
func (v *PostalValidator) Deliverable(postalCode string) bool {
	normalized := strings.ReplaceAll(strings.TrimSpace(postalCode), " ", "")
	match := postalCodePattern.FindStringSubmatch(normalized)
	if match == nil {
		return false
	}

	prefix, err := strconv.Atoi(match[1])
	if err != nil {
		return false
	}

	for _, r := range v.ranges {
		if prefix >= r.Start && prefix <= r.End {
			return true
		}
	}
	return false
}

// FormatPostalCode normalises a postal code to the XXXX-XXX form. Input that
// does not contain exactly 7 digits is returned unchanged.
func FormatPostalCode(postalCode string) string {
	var digits strings.Builder
	for _, r := range postalCode {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 7 {
		return postalCode
	}
	s := digits.String()
	return s[:4] + "-" + s[4:]
}
