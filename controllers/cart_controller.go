package controllers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"grocery-shop/cart"
	"grocery-shop/models"
	"grocery-shop/repositories"
)

type CartController struct {
	store    cart.Store
	products *repositories.ProductRepository
}

func NewCartController(store cart.Store) *CartController {
	return &CartController{
		store:    store,
		products: repositories.NewProductRepository(),
	}
}

func cartOwner(c *gin.Context) string {
	return strconv.Itoa(c.GetInt("user_id"))
}

func cartPayload(cr *cart.Cart) gin.H {
	return gin.H{
		"items":      cr.Items,
		"subtotal":   cr.Subtotal(),
		"item_count": cr.ItemCount(),
	}
}

// @Summary Get cart
// @Description Get the current user's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cr, err := ctrl.store.Load(context.Background(), cartOwner(c))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cartPayload(cr)})
}

// @Summary Add item to cart
// @Description Add a product to the cart, merging quantity if already present
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.Response
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()

	product, err := ctrl.products.GetByID(ctx, req.ProductID)
	if err != nil || !product.IsActive {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if product.Stock < 1 {
		c.JSON(400, gin.H{"success": false, "message": "Product is out of stock"})
		return
	}

	owner := cartOwner(c)
	cr, err := ctrl.store.Load(ctx, owner)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	cr.Add(cart.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Unit:      product.Unit,
	}, req.Quantity)

	if err := ctrl.store.Save(ctx, owner, cr); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Item added", "data": cartPayload(cr)})
}

// @Summary Set item quantity
// @Description Set the quantity of a cart line; zero removes it
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.SetCartQuantityRequest true "Quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req models.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()
	owner := cartOwner(c)

	cr, err := ctrl.store.Load(ctx, owner)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	cr.SetQuantity(productID, req.Quantity)

	if err := ctrl.store.Save(ctx, owner, cr); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart updated", "data": cartPayload(cr)})
}

// @Summary Remove item
// @Description Remove a product from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx := context.Background()
	owner := cartOwner(c)

	cr, err := ctrl.store.Load(ctx, owner)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	cr.Remove(productID)

	if err := ctrl.store.Save(ctx, owner, cr); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Item removed", "data": cartPayload(cr)})
}

// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.store.Delete(context.Background(), cartOwner(c)); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared", "data": cartPayload(cart.New())})
}
