package cart

// LineKey identifies one (product, variant) pairing in the cart. Variant is
// the size label for posters ("A4", "A3", ...) and empty for products
// without size options.
type LineKey struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant"`
}

// Line is one cart entry. UnitPrice is locked in when the line is created
// and never changes afterwards, even if the catalog's base price does.
type Line struct {
	Key       LineKey `json:"key"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice int     `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's contribution to the raw total.
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Snapshot is a point-in-time copy of the cart. Lines keep insertion order.
type Snapshot struct {
	Lines     []Line `json:"lines"`
	ItemCount int    `json:"itemCount"`
	RawTotal  int    `json:"rawTotal"`
}

// Product holds the catalog fields the cart copies onto a new line.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    int
}
