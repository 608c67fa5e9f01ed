package repositories

import (
	"context"
	"fmt"

	"grocery-shop/cart"
	"grocery-shop/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, description, category_id, store_id, price, unit, stock,
		       COALESCE(image_url, ''), is_featured, is_active, created_at, updated_at
		FROM products WHERE id = $1
	`

	var p models.Product
	err := models.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.StoreID, &p.Price,
		&p.Unit, &p.Stock, &p.ImageURL, &p.IsFeatured, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RefreshCart reprices a cart snapshot against live product rows. Names,
// units, and unit prices are replaced with the authoritative values; lines
// for inactive products or insufficient stock fail the whole refresh.
func (r *ProductRepository) RefreshCart(ctx context.Context, c *cart.Cart) error {
	for i := range c.Items {
		var name, unit string
		var price float64
		var stock int
		var isActive bool

		err := models.DB.QueryRow(ctx,
			`SELECT name, unit, price, stock, is_active FROM products WHERE id = $1`,
			c.Items[i].ProductID,
		).Scan(&name, &unit, &price, &stock, &isActive)
		if err != nil {
			return fmt.Errorf("product %d is no longer available", c.Items[i].ProductID)
		}

		if !isActive {
			return fmt.Errorf("%s is no longer available", name)
		}
		if stock < c.Items[i].Quantity {
			return fmt.Errorf("insufficient stock for %s", name)
		}

		c.Items[i].Name = name
		c.Items[i].Unit = unit
		c.Items[i].UnitPrice = price
	}
	return nil
}
