package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
)

type StoreController struct{}

// @Summary Get all stores
// @Description Get all active partner stores
// @Tags Stores
// @Produce json
// @Success 200 {object} models.Response
// @Router /stores [get]
func (ctrl *StoreController) GetAllStores(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		`SELECT id, name, address, COALESCE(postcode, ''), COALESCE(phone, ''), COALESCE(image_url, ''), is_active, created_at
		 FROM stores WHERE is_active=true ORDER BY name`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get stores"})
		return
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		var s models.Store
		rows.Scan(&s.ID, &s.Name, &s.Address, &s.Postcode, &s.Phone, &s.ImageURL, &s.IsActive, &s.CreatedAt)
		stores = append(stores, s)
	}

	c.JSON(200, gin.H{"success": true, "message": "Stores retrieved", "data": stores})
}

// @Summary Get store by ID
// @Description Get a single partner store
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /stores/{id} [get]
func (ctrl *StoreController) GetStoreByID(c *gin.Context) {
	id := c.Param("id")

	var s models.Store
	err := models.DB.QueryRow(context.Background(),
		`SELECT id, name, address, COALESCE(postcode, ''), COALESCE(phone, ''), COALESCE(image_url, ''), is_active, created_at
		 FROM stores WHERE id=$1`,
		id).Scan(&s.ID, &s.Name, &s.Address, &s.Postcode, &s.Phone, &s.ImageURL, &s.IsActive, &s.CreatedAt)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Store not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Store retrieved", "data": s})
}

// @Summary Create store
// @Description Create a new partner store (Admin only)
// @Tags Admin - Stores
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateStoreRequest true "Store data"
// @Success 201 {object} models.Response
// @Router /admin/stores [post]
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	var req models.CreateStoreRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var id int
	err := models.DB.QueryRow(context.Background(),
		`INSERT INTO stores (name, address, postcode, phone, is_active, created_at)
		 VALUES ($1,$2,$3,$4,true,$5) RETURNING id`,
		req.Name, req.Address, req.Postcode, req.Phone, time.Now()).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create store", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Store created", "data": gin.H{"id": id}})
}

// @Summary Update store
// @Description Update a partner store (Admin only)
// @Tags Admin - Stores
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Response
// @Router /admin/stores/{id} [patch]
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	id := c.Param("id")
	ctx := context.Background()

	var existing models.Store
	err := models.DB.QueryRow(ctx,
		"SELECT id, name, address, COALESCE(postcode, ''), COALESCE(phone, ''), is_active FROM stores WHERE id=$1",
		id).Scan(&existing.ID, &existing.Name, &existing.Address, &existing.Postcode, &existing.Phone, &existing.IsActive)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Store not found"})
		return
	}

	var req models.UpdateStoreRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	if req.Postcode != "" {
		existing.Postcode = req.Postcode
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}

	_, err = models.DB.Exec(ctx,
		"UPDATE stores SET name=$1, address=$2, postcode=$3, phone=$4 WHERE id=$5",
		existing.Name, existing.Address, existing.Postcode, existing.Phone, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update store"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Store updated", "data": existing})
}

// @Summary Delete store
// @Description Deactivate a partner store (Admin only)
// @Tags Admin - Stores
// @Security BearerAuth
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Response
// @Router /admin/stores/{id} [delete]
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	id := c.Param("id")

	result, err := models.DB.Exec(context.Background(),
		"UPDATE stores SET is_active=false WHERE id=$1", id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Store not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Store deleted"})
}
