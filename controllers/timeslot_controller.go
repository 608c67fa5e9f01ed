package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/repositories"
	"grocery-shop/services"
)

type TimeSlotController struct {
	repo     *repositories.DeliveryRepository
	delivery *services.DeliveryService
}

func NewTimeSlotController(repo *repositories.DeliveryRepository, delivery *services.DeliveryService) *TimeSlotController {
	return &TimeSlotController{repo: repo, delivery: delivery}
}

// @Summary Get time slot availability
// @Description Get delivery time slots with remaining capacity for a date
// @Tags Delivery
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to tomorrow"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /time-slots [get]
func (ctrl *TimeSlotController) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	date := time.Now().AddDate(0, 0, 1)
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	ctx := c.Request.Context()
	slots, err := ctrl.repo.ListTimeSlots(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get time slots"})
		return
	}

	availability, err := ctrl.delivery.Availability(ctx, slots, date)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get availability"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Time slots retrieved",
		"data":    gin.H{"date": date.Format("2006-01-02"), "slots": availability},
	})
}

// @Summary Create time slot
// @Description Create a delivery time slot (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateTimeSlotRequest true "Time slot data"
// @Success 201 {object} models.Response
// @Router /admin/time-slots [post]
func (ctrl *TimeSlotController) CreateTimeSlot(c *gin.Context) {
	var req models.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	id, err := ctrl.repo.CreateTimeSlot(c.Request.Context(), req)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create time slot", "error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Time slot created", "data": gin.H{"id": id}})
}

// @Summary Update time slot capacity
// @Description Update capacity, fee, or active flag of a time slot (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Time slot ID"
// @Success 200 {object} models.Response
// @Router /admin/time-slots/{id} [patch]
func (ctrl *TimeSlotController) UpdateTimeSlot(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Capacity *int     `json:"capacity"`
		Fee      *float64 `json:"fee"`
		IsActive *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	updated, err := ctrl.repo.UpdateTimeSlot(c.Request.Context(), id, req.Capacity, req.Fee, req.IsActive)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update time slot"})
		return
	}
	if !updated {
		c.JSON(404, gin.H{"success": false, "message": "Time slot not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Time slot updated"})
}

// @Summary Delete time slot
// @Description Deactivate a time slot (Admin only)
// @Tags Admin - Delivery
// @Security BearerAuth
// @Produce json
// @Param id path int true "Time slot ID"
// @Success 200 {object} models.Response
// @Router /admin/time-slots/{id} [delete]
func (ctrl *TimeSlotController) DeleteTimeSlot(c *gin.Context) {
	id := c.Param("id")

	deleted, err := ctrl.repo.DeactivateTimeSlot(c.Request.Context(), id)
	if err != nil || !deleted {
		c.JSON(404, gin.H{"success": false, "message": "Time slot not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Time slot deleted"})
}
