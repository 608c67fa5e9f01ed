package cart

// LineItem is one product-quantity pairing in a shopping cart.
type LineItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
}

// Cart holds an ordered list of line items, at most one per product.
// A line never carries quantity zero; it is removed instead.
type Cart struct {
	Items []LineItem `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []LineItem{}}
}

// Add merges qty into an existing line for the same product, or appends a
// new line at the end. qty values below 1 default to 1.
func (c *Cart) Add(item LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += qty
			return
		}
	}

	item.Quantity = qty
	c.Items = append(c.Items, item)
}

func (c *Cart) Remove(productID int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line.
func (c *Cart) SetQuantity(productID, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return Round2(subtotal)
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
