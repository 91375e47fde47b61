package promo

// mapCatalog implements Catalog using a map for O(1) lookups.
type mapCatalog struct {
	codes map[string]Discount
}

// NewMapCatalog creates a new map-based promo catalog.
func NewMapCatalog(capacity int) Catalog {
	return &mapCatalog{
		codes: make(map[string]Discount, capacity),
	}
}

// Lookup returns the discount entry for a code, if present.
func (c *mapCatalog) Lookup(code string) (Discount, bool) {
	d, ok := c.codes[code]
	return d, ok
}

// Size returns the number of codes in the catalog.
func (c *mapCatalog) Size() int {
	return len(c.codes)
}

// Add adds a promo code entry to the catalog.
func (c *mapCatalog) Add(code string, discount Discount) {
	c.codes[code] = discount
}
