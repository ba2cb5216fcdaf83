package model

// CartItem is a product snapshot taken when it was added to the cart,
// plus the selected quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
