package domain

import "time"

// CartLine is one product-quantity pair within a user's cart.
type CartLine struct {
	ProductID int `json:"product_id" bson:"product_id"`
	Quantity  int `json:"qty"        bson:"qty"`
}

// MaxLineQuantity bounds the quantity a single cart line may hold.
const MaxLineQuantity = 9999

// AddLine increments the quantity of an existing line for productID or
// appends a new one. Line order is preserved. A qty outside
// [1, MaxLineQuantity], or one that would push the merged line past
// MaxLineQuantity, yields ErrInvalidQuantity and leaves lines untouched.
func AddLine(lines []CartLine, productID, qty int) ([]CartLine, error) {
	if qty < 1 || qty > MaxLineQuantity {
		return lines, ErrInvalidQuantity
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			if qty > MaxLineQuantity-lines[i].Quantity {
				return lines, ErrInvalidQuantity
			}
			lines[i].Quantity += qty
			return lines, nil
		}
	}
	return append(lines, CartLine{ProductID: productID, Quantity: qty}), nil
}

// NormalizeLines drops non-positive quantities and merges duplicate product
// ids into the position of their first occurrence.
func NormalizeLines(in []CartLine) ([]CartLine, error) {
	out := make([]CartLine, 0, len(in))
	for _, l := range in {
		if l.Quantity <= 0 {
			continue
		}
		var err error
		if out, err = AddLine(out, l.ProductID, l.Quantity); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CloneLines returns a copy that shares no backing array with in.
// A nil input yields an empty, non-nil slice.
func CloneLines(in []CartLine) []CartLine {
	out := make([]CartLine, len(in))
	copy(out, in)
	return out
}

// Order is the ephemeral result of a checkout. It is returned once and
// never retained.
type Order struct {
	ID        int64      `json:"id"`
	Username  string     `json:"-"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}
