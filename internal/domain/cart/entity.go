// internal/domain/cart/entity.go
package cart

// LineKey identifies a cart line. Two lines with the same product but a
// different size or color are distinct lines. Every operation keys on the
// full tuple; keying updates on product ID alone would hit the wrong line
// when a product is in the cart in two colors.
type LineKey struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Line represents one purchasable unit the shopper has chosen.
// Name, Image and UnitPrice are captured when the item is added and never
// re-fetched; a price change upstream does not touch lines already in the
// cart. UnitPrice is in minor currency units (paisa).
type Line struct {
	LineKey
	Name        string `json:"name"`
	Image       string `json:"image"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	MaxQuantity int    `json:"max_quantity"` // stock ceiling at add time, advisory for UI controls
}

// Subtotal returns the line total
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Snapshot is the full cart contents in insertion order. It is persisted as
// a whole after every mutation.
type Snapshot []Line

// Total returns the sum of unit price times quantity across all lines
func (s Snapshot) Total() int64 {
	var total int64
	for _, line := range s {
		total += line.Subtotal()
	}
	return total
}

// Count returns the sum of quantities across all lines
func (s Snapshot) Count() int {
	count := 0
	for _, line := range s {
		count += line.Quantity
	}
	return count
}

// find returns the index of the line with the given key, or -1
func (s Snapshot) find(key LineKey) int {
	for i, line := range s {
		if line.LineKey == key {
			return i
		}
	}
	return -1
}
