package domain

// DefaultQuantity is added to the cart when the caller gives no quantity.
const DefaultQuantity = 1

// A CartLine associates a product with a positive quantity.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal returns price times quantity in minor units.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// An OrderSummary is the cart summary panel.
type OrderSummary struct {
	Lines      []CartLine
	TotalItems int
	TotalPrice int64
	Notes      string
}

// Submittable reports whether a suggested order could be sent.
func (s OrderSummary) Submittable() bool {
	return len(s.Lines) != 0
}
