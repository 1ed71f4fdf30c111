package entity

// CartItem embeds the product so a persisted cart is a flat JSON array of
// products carrying a quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

func (i CartItem) Clone() CartItem {
	i.Product = i.Product.Clone()
	return i
}

const FreeShippingThreshold = 100.0

type ShippingProgress struct {
	Threshold float64 `json:"threshold"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}
