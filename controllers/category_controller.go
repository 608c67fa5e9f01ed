package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
)

type CategoryController struct{}

// @Summary Get all categories
// @Description Get all active product categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		"SELECT id, name, COALESCE(image_url, ''), is_active, created_at FROM categories WHERE is_active=true ORDER BY name")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.IsActive, &cat.CreatedAt)
		categories = append(categories, cat)
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Create category
// @Description Create a new category (Admin only)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Category name"
// @Param image formData file false "Category image"
// @Success 201 {object} models.Response
// @Router /admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(400, gin.H{"success": false, "message": "Category name is required"})
		return
	}

	imageURL, cloudinaryID := handleImageUpload(c, "categories")

	var id int
	err := models.DB.QueryRow(context.Background(),
		`INSERT INTO categories (name, image_url, cloudinary_id, is_active, created_at)
		 VALUES ($1,$2,$3,true,$4) RETURNING id`,
		name, imageURL, cloudinaryID, time.Now()).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create category", "error": err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Category created", "data": gin.H{"id": id}})
}

// @Summary Update category
// @Description Update a category name or image (Admin only)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [patch]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	ctx := context.Background()

	var existing models.Category
	err := models.DB.QueryRow(ctx,
		"SELECT id, name, COALESCE(image_url, ''), COALESCE(cloudinary_id, ''), is_active FROM categories WHERE id=$1",
		id).Scan(&existing.ID, &existing.Name, &existing.ImageURL, &existing.CloudinaryID, &existing.IsActive)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Category not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		existing.Name = name
	}

	if imageURL, cloudinaryID := handleImageUpload(c, "categories"); imageURL != "" {
		if existing.CloudinaryID != "" {
			if cld, err := models.NewCloudinaryService(); err == nil {
				cld.DeleteImage(ctx, existing.CloudinaryID)
			}
		}
		existing.ImageURL = imageURL
		existing.CloudinaryID = cloudinaryID
	}

	_, err = models.DB.Exec(ctx,
		"UPDATE categories SET name=$1, image_url=$2, cloudinary_id=$3 WHERE id=$4",
		existing.Name, existing.ImageURL, existing.CloudinaryID, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update category"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Category updated", "data": existing})
}

// @Summary Delete category
// @Description Deactivate a category (Admin only)
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	result, err := models.DB.Exec(context.Background(),
		"UPDATE categories SET is_active=false WHERE id=$1", id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Category not found"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Category deleted"})
}
