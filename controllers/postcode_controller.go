package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/services"
)

type PostcodeController struct {
	delivery *services.DeliveryService
}

func NewPostcodeController(delivery *services.DeliveryService) *PostcodeController {
	return &PostcodeController{delivery: delivery}
}

// @Summary Check postcode
// @Description Check whether a postcode is inside the delivery area
// @Tags Delivery
// @Produce json
// @Param code query string true "Postcode"
// @Success 200 {object} models.Response
// @Router /postcodes/check [get]
func (ctrl *PostcodeController) CheckPostcode(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		c.JSON(400, gin.H{"success": false, "message": "Postcode is required"})
		return
	}

	serviceable := true
	if err := ctrl.delivery.CheckPostcode(c.Request.Context(), code); err != nil {
		if err != services.ErrPostcodeNotServed {
			c.JSON(500, gin.H{"success": false, "message": "Failed to check postcode"})
			return
		}
		serviceable = false
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Postcode checked",
		"data":    gin.H{"code": code, "serviceable": serviceable},
	})
}

// @Summary List postcodes
// @Description List the serviceable postcodes (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/postcodes [get]
func (ctrl *PostcodeController) GetAllPostcodes(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		"SELECT id, code, COALESCE(area, ''), is_active, created_at FROM postcodes ORDER BY code")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get postcodes"})
		return
	}
	defer rows.Close()

	postcodes := []models.Postcode{}
	for rows.Next() {
		var p models.Postcode
		rows.Scan(&p.ID, &p.Code, &p.Area, &p.IsActive, &p.CreatedAt)
		postcodes = append(postcodes, p)
	}

	c.JSON(200, gin.H{"success": true, "message": "Postcodes retrieved", "data": postcodes})
}

// @Summary Add postcode
// @Description Add a postcode to the delivery area (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreatePostcodeRequest true "Postcode data"
// @Success 201 {object} models.Response
// @Router /admin/postcodes [post]
func (ctrl *PostcodeController) CreatePostcode(c *gin.Context) {
	var req models.CreatePostcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	var id int
	err := models.DB.QueryRow(context.Background(),
		`INSERT INTO postcodes (code, area, is_active, created_at) VALUES (UPPER($1), $2, true, $3)
		 ON CONFLICT (code) DO UPDATE SET is_active = true, area = EXCLUDED.area
		 RETURNING id`,
		strings.TrimSpace(req.Code), req.Area, time.Now()).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add postcode", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Postcode added", "data": gin.H{"id": id}})
}

// @Summary Remove postcode
// @Description Remove a postcode from the delivery area (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Produce json
// @Param id path int true "Postcode ID"
// @Success 200 {object} models.Response
// @Router /admin/postcodes/{id} [delete]
func (ctrl *PostcodeController) DeletePostcode(c *gin.Context) {
	id := c.Param("id")

	result, err := models.DB.Exec(context.Background(),
		"UPDATE postcodes SET is_active = false WHERE id = $1", id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Postcode not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Postcode removed"})
}
