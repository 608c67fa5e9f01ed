package controllers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/config"
	"grocery-shop/libs"
	"grocery-shop/models"
	"grocery-shop/utils"
)

type PickupController struct {
	payments *libs.PaymentsClient
}

func NewPickupController(payments *libs.PaymentsClient) *PickupController {
	return &PickupController{payments: payments}
}

// @Summary Create pickup order
// @Description Book a shopper to buy from multiple stores and deliver in one trip
// @Tags Pickup
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreatePickupRequest true "Pickup data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 402 {object} models.ErrorResponse
// @Router /pickups [post]
func (ctrl *PickupController) CreatePickup(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.CreatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.FullName == "" || req.Address == "" || req.Postcode == "" || req.Phone == "" {
		c.JSON(400, gin.H{"success": false, "message": "Name, address, postcode, and phone are required"})
		return
	}

	ctx := c.Request.Context()

	// Every stop must reference a registered active store.
	storeNames := make(map[int]string, len(req.Stops))
	for _, stop := range req.Stops {
		var name string
		err := models.DB.QueryRow(ctx,
			"SELECT name FROM stores WHERE id = $1 AND is_active = true", stop.StoreID).Scan(&name)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": fmt.Sprintf("Store %d not found", stop.StoreID)})
			return
		}
		storeNames[stop.StoreID] = name
	}

	serviceFee := config.AppConfig.PickupServiceFee
	orderNumber := utils.NewOrderNumber("PCK")

	intent, err := ctrl.payments.ConfirmPickupPayment(ctx, orderNumber, serviceFee)
	if err != nil {
		c.JSON(402, gin.H{"success": false, "message": "Payment failed"})
		return
	}

	now := time.Now()
	pickup := models.PickupOrder{
		OrderNumber:     orderNumber,
		UserID:          userID,
		CustomerName:    req.FullName,
		Address:         req.Address,
		Postcode:        req.Postcode,
		Phone:           req.Phone,
		EstimatedBudget: req.EstimatedBudget,
		ServiceFee:      serviceFee,
		PaymentIntentID: &intent.ID,
		Status:          models.PickupStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := ctrl.insertPickup(ctx, &pickup, req.Stops, storeNames); err != nil {
		// The fee is already captured at this point. Keep the intent id in
		// the log so the charge can be traced and refunded by hand.
		log.Printf("Pickup %s: payment %s captured but order insert failed: %v",
			orderNumber, intent.ID, err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to create pickup order"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Pickup order created", "data": pickup})
}

func (ctrl *PickupController) insertPickup(ctx context.Context, pickup *models.PickupOrder, stops []models.PickupStopRequest, storeNames map[int]string) error {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO pickup_orders (order_number, user_id, customer_name, address, postcode, phone,
		                            estimated_budget, service_fee, payment_intent_id, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`,
		pickup.OrderNumber, pickup.UserID, pickup.CustomerName, pickup.Address, pickup.Postcode, pickup.Phone,
		pickup.EstimatedBudget, pickup.ServiceFee, pickup.PaymentIntentID, pickup.Status, pickup.CreatedAt, pickup.UpdatedAt,
	).Scan(&pickup.ID)
	if err != nil {
		return err
	}

	for i, stop := range stops {
		s := models.PickupStop{
			PickupOrderID: pickup.ID,
			StoreID:       stop.StoreID,
			StoreName:     storeNames[stop.StoreID],
			ItemList:      stop.ItemList,
			Position:      i + 1,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO pickup_stops (pickup_order_id, store_id, item_list, position)
			 VALUES ($1,$2,$3,$4) RETURNING id`,
			s.PickupOrderID, s.StoreID, s.ItemList, s.Position).Scan(&s.ID)
		if err != nil {
			return err
		}
		pickup.Stops = append(pickup.Stops, s)
	}

	return tx.Commit(ctx)
}

// @Summary Get my pickup orders
// @Description Get the authenticated user's pickup orders
// @Tags Pickup
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /pickups [get]
func (ctrl *PickupController) GetMyPickups(c *gin.Context) {
	userID := c.GetInt("user_id")

	pickups, err := ctrl.listPickups(context.Background(), "WHERE user_id = $1", userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get pickup orders"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Pickup orders retrieved", "data": pickups})
}

// @Summary Get all pickup orders
// @Description Get all pickup orders (Admin only)
// @Tags Admin - Pickup
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} models.Response
// @Router /admin/pickups [get]
func (ctrl *PickupController) GetAllPickups(c *gin.Context) {
	status := c.Query("status")

	var pickups []models.PickupOrder
	var err error
	if status != "" {
		pickups, err = ctrl.listPickups(context.Background(), "WHERE status = $1", status)
	} else {
		pickups, err = ctrl.listPickups(context.Background(), "")
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get pickup orders"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Pickup orders retrieved", "data": pickups})
}

// @Summary Update pickup status
// @Description Move a pickup order through its lifecycle (Admin only)
// @Tags Admin - Pickup
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Pickup order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Router /admin/pickups/{id}/status [patch]
func (ctrl *PickupController) UpdatePickupStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if !models.ValidPickupStatus(req.Status) {
		c.JSON(400, gin.H{"success": false, "message": "Invalid pickup status"})
		return
	}

	result, err := models.DB.Exec(context.Background(),
		"UPDATE pickup_orders SET status = $1, updated_at = $2 WHERE id = $3",
		req.Status, time.Now(), id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Pickup order not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Pickup status updated"})
}

// @Summary Cancel pickup order
// @Description Cancel a pending pickup order
// @Tags Pickup
// @Security BearerAuth
// @Produce json
// @Param id path int true "Pickup order ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /pickups/{id}/cancel [patch]
func (ctrl *PickupController) CancelPickup(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid pickup order ID"})
		return
	}

	ctx := context.Background()

	var status string
	var ownerID int
	err = models.DB.QueryRow(ctx, "SELECT status, user_id FROM pickup_orders WHERE id = $1", id).Scan(&status, &ownerID)
	if err != nil || ownerID != userID {
		c.JSON(404, gin.H{"success": false, "message": "Pickup order not found"})
		return
	}

	if status != models.PickupStatusPending {
		c.JSON(409, gin.H{"success": false, "message": "Only pending pickup orders can be cancelled"})
		return
	}

	_, err = models.DB.Exec(ctx,
		"UPDATE pickup_orders SET status = $1, updated_at = $2 WHERE id = $3",
		models.PickupStatusCancelled, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to cancel pickup order"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Pickup order cancelled"})
}

func (ctrl *PickupController) listPickups(ctx context.Context, where string, args ...interface{}) ([]models.PickupOrder, error) {
	query := `SELECT id, order_number, user_id, customer_name, address, postcode, phone,
	                 estimated_budget, service_fee, payment_intent_id, status, created_at, updated_at
	          FROM pickup_orders ` + where + " ORDER BY created_at DESC"

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pickups := []models.PickupOrder{}
	for rows.Next() {
		var p models.PickupOrder
		if err := rows.Scan(&p.ID, &p.OrderNumber, &p.UserID, &p.CustomerName, &p.Address, &p.Postcode, &p.Phone,
			&p.EstimatedBudget, &p.ServiceFee, &p.PaymentIntentID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pickups = append(pickups, p)
	}

	for i := range pickups {
		stops, err := ctrl.loadStops(ctx, pickups[i].ID)
		if err != nil {
			return nil, err
		}
		pickups[i].Stops = stops
	}

	return pickups, nil
}

func (ctrl *PickupController) loadStops(ctx context.Context, pickupID int) ([]models.PickupStop, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT ps.id, ps.pickup_order_id, ps.store_id, s.name, ps.item_list, ps.position
		 FROM pickup_stops ps JOIN stores s ON s.id = ps.store_id
		 WHERE ps.pickup_order_id = $1 ORDER BY ps.position`, pickupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []models.PickupStop{}
	for rows.Next() {
		var s models.PickupStop
		if err := rows.Scan(&s.ID, &s.PickupOrderID, &s.StoreID, &s.StoreName, &s.ItemList, &s.Position); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}
