package models

// CartLine is one aggregated cart entry. Two lines are the same entry
// iff product ID, selected color and selected size all match; a line
// with no color/size is distinct from one that specifies either.
type CartLine struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"` // >= 1 always
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
}

// Matches reports whether the line's uniqueness key equals the given one.
func (l CartLine) Matches(productID, color, size string) bool {
	return l.Product.ID == productID && l.SelectedColor == color && l.SelectedSize == size
}
