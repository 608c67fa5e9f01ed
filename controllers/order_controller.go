package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
)

type OrderController struct{}

const orderColumns = `id, order_number, user_id, customer_name, address, postcode, phone,
	delivery_mode, time_slot_id, scheduled_date, promo_code,
	subtotal, discount, delivery_fee, convenience_fee, service_fee, total,
	payment_intent_id, status, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *models.Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.Address, &o.Postcode, &o.Phone,
		&o.DeliveryMode, &o.TimeSlotID, &o.ScheduledDate, &o.PromoCode,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.ConvenienceFee, &o.ServiceFee, &o.Total,
		&o.PaymentIntentID, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
}

func loadOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT id, order_id, product_id, product_name, COALESCE(unit, ''), quantity, unit_price
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Unit, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// @Summary Get order history
// @Description Get the authenticated user's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, limit, offset := getPaginationParams(c, 10)
	status := c.Query("status")

	ctx := context.Background()

	where := "WHERE user_id = $1"
	args := []interface{}{userID}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}

	var total int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total)

	query := "SELECT " + orderColumns + " FROM orders " + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			continue
		}
		orders = append(orders, o)
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// @Summary Get order detail
// @Description Get a single order with its line items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	ctx := context.Background()

	var o models.Order
	row := models.DB.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err := scanOrder(row, &o); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if o.UserID != userID && role != "admin" {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	items, err := loadOrderItems(ctx, o.ID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get order items"})
		return
	}
	o.Items = items

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved", "data": o})
}

// @Summary Cancel order
// @Description Cancel an order that has not shipped yet. Restores reserved stock.
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/cancel [patch]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	ctx := context.Background()
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to cancel order"})
		return
	}
	defer tx.Rollback(ctx)

	var status string
	var ownerID int
	err = tx.QueryRow(ctx, "SELECT status, user_id FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&status, &ownerID)
	if err != nil || ownerID != userID {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if status != models.OrderStatusPending && status != models.OrderStatusProcessing {
		c.JSON(409, gin.H{"success": false, "message": "Order can no longer be cancelled"})
		return
	}

	if _, err := tx.Exec(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		models.OrderStatusCancelled, time.Now(), id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to cancel order"})
		return
	}

	if _, err := tx.Exec(ctx,
		`UPDATE products p SET stock = p.stock + oi.quantity
		 FROM order_items oi WHERE oi.order_id = $1 AND oi.product_id = p.id`, id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to restore stock"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to cancel order"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Order cancelled"})
}

// @Summary Get order messages
// @Description Get the support message thread for an order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Router /orders/{id}/messages [get]
func (ctrl *OrderController) GetOrderMessages(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	ctx := context.Background()

	var ownerID int
	if err := models.DB.QueryRow(ctx, "SELECT user_id FROM orders WHERE id = $1", id).Scan(&ownerID); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if ownerID != userID && role != "admin" {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	rows, err := models.DB.Query(ctx,
		"SELECT id, order_id, sender, message, created_at FROM order_messages WHERE order_id = $1 ORDER BY created_at",
		id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get messages"})
		return
	}
	defer rows.Close()

	messages := []models.OrderMessage{}
	for rows.Next() {
		var m models.OrderMessage
		rows.Scan(&m.ID, &m.OrderID, &m.Sender, &m.Message, &m.CreatedAt)
		messages = append(messages, m)
	}

	c.JSON(200, gin.H{"success": true, "message": "Messages retrieved", "data": messages})
}

// @Summary Add order message
// @Description Append a message to the order's support thread
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.OrderMessageRequest true "Message"
// @Success 201 {object} models.Response
// @Router /orders/{id}/messages [post]
func (ctrl *OrderController) AddOrderMessage(c *gin.Context) {
	userID := c.GetInt("user_id")
	role := c.GetString("user_role")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var req models.OrderMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	ctx := context.Background()

	var ownerID int
	if err := models.DB.QueryRow(ctx, "SELECT user_id FROM orders WHERE id = $1", id).Scan(&ownerID); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	sender := "customer"
	if role == "admin" {
		sender = "admin"
	} else if ownerID != userID {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	var msg models.OrderMessage
	err = models.DB.QueryRow(ctx,
		`INSERT INTO order_messages (order_id, sender, message, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id, order_id, sender, message, created_at`,
		id, sender, req.Message, time.Now()).Scan(&msg.ID, &msg.OrderID, &msg.Sender, &msg.Message, &msg.CreatedAt)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add message"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Message added", "data": msg})
}

// @Summary Get all orders
// @Description Get all orders with pagination links (Admin only)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Param search query string false "Search by order number or customer name"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit, offset := getPaginationParams(c, 10)
	status := c.Query("status")
	search := c.Query("search")

	ctx := context.Background()

	where := "WHERE 1=1"
	args := []interface{}{}
	paramIndex := 1

	if status != "" {
		where += " AND status = $" + strconv.Itoa(paramIndex)
		args = append(args, status)
		paramIndex++
	}
	if search != "" {
		where += " AND (order_number ILIKE $" + strconv.Itoa(paramIndex) +
			" OR customer_name ILIKE $" + strconv.Itoa(paramIndex) + ")"
		args = append(args, "%"+search+"%")
		paramIndex++
	}

	var total int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total)

	query := "SELECT " + orderColumns + " FROM orders " + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(paramIndex) + " OFFSET $" + strconv.Itoa(paramIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			continue
		}
		orders = append(orders, o)
	}

	c.JSON(200, buildPaginatedResponse(c, "Orders retrieved", orders, page, limit, total))
}

// @Summary Update order status
// @Description Update an order's status (Admin only)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order status"})
		return
	}

	result, err := models.DB.Exec(context.Background(),
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		req.Status, time.Now(), id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order status updated"})
}

// @Summary Dashboard summary
// @Description Order counts and revenue for the admin dashboard
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *OrderController) GetDashboard(c *gin.Context) {
	ctx := context.Background()

	var totalOrders, pendingOrders, deliveredOrders int
	var totalRevenue float64

	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&totalOrders)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE status = $1", models.OrderStatusPending).Scan(&pendingOrders)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE status = $1", models.OrderStatusDelivered).Scan(&deliveredOrders)
	models.DB.QueryRow(ctx,
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> $1", models.OrderStatusCancelled).Scan(&totalRevenue)

	var totalCustomers, totalProducts int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = 'customer'").Scan(&totalCustomers)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active = true").Scan(&totalProducts)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Dashboard retrieved",
		"data": gin.H{
			"total_orders":     totalOrders,
			"pending_orders":   pendingOrders,
			"delivered_orders": deliveredOrders,
			"total_revenue":    totalRevenue,
			"total_customers":  totalCustomers,
			"total_products":   totalProducts,
		},
	})
}
