package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/services"
)

type PromoController struct {
	promos *services.PromoService
}

func NewPromoController(promos *services.PromoService) *PromoController {
	return &PromoController{promos: promos}
}

// @Summary Validate promo code
// @Description Check a promo code against the current subtotal
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body models.ValidatePromoRequest true "Code and subtotal"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /promos/validate [post]
func (ctrl *PromoController) ValidatePromo(c *gin.Context) {
	var req models.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	promo, discount, err := ctrl.promos.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		if errors.Is(err, services.ErrPromoNotFound) {
			c.JSON(404, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Promo code is valid",
		"data": gin.H{
			"code":           promo.Code,
			"description":    promo.Description,
			"discount_type":  promo.DiscountType,
			"discount_value": promo.DiscountValue,
			"discount":       discount,
		},
	})
}

// @Summary List promo codes
// @Description List all promo codes (Admin only)
// @Tags Admin - Promos
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/promos [get]
func (ctrl *PromoController) GetAllPromos(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		`SELECT id, code, COALESCE(description, ''), discount_type, discount_value,
		        min_order_amount, usage_limit, valid_from, valid_until, is_active, created_at
		 FROM promo_codes ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get promo codes"})
		return
	}
	defer rows.Close()

	promos := []models.PromoCode{}
	for rows.Next() {
		var p models.PromoCode
		rows.Scan(&p.ID, &p.Code, &p.Description, &p.DiscountType, &p.DiscountValue,
			&p.MinOrderAmount, &p.UsageLimit, &p.ValidFrom, &p.ValidUntil, &p.IsActive, &p.CreatedAt)
		promos = append(promos, p)
	}

	c.JSON(200, gin.H{"success": true, "message": "Promo codes retrieved", "data": promos})
}

// @Summary Create promo code
// @Description Create a promo code (Admin only)
// @Tags Admin - Promos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreatePromoRequest true "Promo data"
// @Success 201 {object} models.Response
// @Router /admin/promos [post]
func (ctrl *PromoController) CreatePromo(c *gin.Context) {
	var req models.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.DiscountType == models.DiscountTypePercentage && req.DiscountValue > 100 {
		c.JSON(400, gin.H{"success": false, "message": "Percentage discount cannot exceed 100"})
		return
	}

	var validFrom, validUntil *time.Time
	if req.ValidFrom != "" {
		t, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid valid_from date"})
			return
		}
		validFrom = &t
	}
	if req.ValidUntil != "" {
		t, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid valid_until date"})
			return
		}
		validUntil = &t
	}

	var id int
	err := models.DB.QueryRow(context.Background(),
		`INSERT INTO promo_codes (code, description, discount_type, discount_value, min_order_amount,
		                          usage_limit, valid_from, valid_until, is_active, created_at)
		 VALUES (UPPER($1),$2,$3,$4,$5,$6,$7,$8,true,$9) RETURNING id`,
		strings.TrimSpace(req.Code), req.Description, req.DiscountType, req.DiscountValue,
		req.MinOrderAmount, req.UsageLimit, validFrom, validUntil, time.Now()).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create promo code", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Promo code created", "data": gin.H{"id": id}})
}

// @Summary Deactivate promo code
// @Description Deactivate a promo code (Admin only)
// @Tags Admin - Promos
// @Security BearerAuth
// @Produce json
// @Param id path int true "Promo ID"
// @Success 200 {object} models.Response
// @Router /admin/promos/{id} [delete]
func (ctrl *PromoController) DeletePromo(c *gin.Context) {
	id := c.Param("id")

	result, err := models.DB.Exec(context.Background(),
		"UPDATE promo_codes SET is_active = false WHERE id = $1", id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Promo code not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Promo code deactivated"})
}
