package models

// MaxLineQuantity caps the quantity of a single line item.
const MaxLineQuantity = 999

// CartItem is one line item. Price, name and image are snapshotted when the
// item is first added.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Image     string  `json:"image,omitempty"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
}

// Key identifies a line item inside a cart.
func (i CartItem) Key() CartItemKey {
	return CartItemKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

type CartItemKey struct {
	ProductID int    `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type Cart struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"item_count"`
	TotalPrice float64    `json:"total_price"`
}

type AddCartItemRequest struct {
	ProductID int     `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1,max=999"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type UpdateCartItemRequest struct {
	CartItemKey
	Quantity int `json:"quantity" binding:"max=999"`
}
