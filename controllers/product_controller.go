package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/utils"
)

type ProductController struct{}

func getProductCacheKey(c *gin.Context, page, limit int) string {
	search := c.Query("search")
	category := c.Query("category")
	store := c.Query("store")
	sortPrice := c.Query("sort_price")
	return fmt.Sprintf("products_list_p%d_l%d_s%s_c%s_st%s_sp%s", page, limit, search, category, store, sortPrice)
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get paginated products with search, category, store, and price sort
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Param search query string false "Search by product name"
// @Param category query string false "Filter by category name"
// @Param store query int false "Filter by store ID"
// @Param sort_price query string false "Sort by price" Enums(asc, desc)
// @Param featured query bool false "Only featured products"
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, limit, offset := getPaginationParams(c, 12)

	cacheKey := getProductCacheKey(c, page, limit)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))
	storeID, _ := strconv.Atoi(c.Query("store"))
	sortPrice := c.Query("sort_price")
	featured := c.Query("featured") == "true"

	where := "WHERE p.is_active=true"
	args := []interface{}{}
	paramIndex := 1

	if search != "" {
		where += fmt.Sprintf(" AND LOWER(p.name) LIKE LOWER($%d)", paramIndex)
		args = append(args, "%"+search+"%")
		paramIndex++
	}
	if category != "" {
		where += fmt.Sprintf(" AND p.category_id IN (SELECT id FROM categories WHERE LOWER(name)=LOWER($%d))", paramIndex)
		args = append(args, category)
		paramIndex++
	}
	if storeID > 0 {
		where += fmt.Sprintf(" AND p.store_id = $%d", paramIndex)
		args = append(args, storeID)
		paramIndex++
	}
	if featured {
		where += " AND p.is_featured=true"
	}

	orderBy := " ORDER BY p.created_at DESC"
	if sortPrice == "asc" {
		orderBy = " ORDER BY p.price ASC"
	} else if sortPrice == "desc" {
		orderBy = " ORDER BY p.price DESC"
	}

	var total int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products p "+where, args...).Scan(&total)

	query := `SELECT p.id, p.name, p.description, p.category_id, p.store_id, p.price, p.unit,
	                 p.stock, COALESCE(p.image_url, ''), p.is_featured, p.is_active, p.created_at, p.updated_at
	          FROM products p ` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(ctx, query, args...)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.StoreID, &p.Price, &p.Unit,
			&p.Stock, &p.ImageURL, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
		products = append(products, p)
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product by ID
// @Description Get a single product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	var p models.Product
	err := models.DB.QueryRow(context.Background(),
		`SELECT id, name, description, category_id, store_id, price, unit, stock,
		        COALESCE(image_url, ''), is_featured, is_active, created_at, updated_at
		 FROM products WHERE id=$1`,
		id).Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.StoreID, &p.Price, &p.Unit,
		&p.Stock, &p.ImageURL, &p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": p})
}

// @Summary Create product
// @Description Create a new product (Admin only)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	imageURL, cloudinaryID := handleImageUpload(c, "products")

	now := time.Now()
	var productID int
	err := models.DB.QueryRow(context.Background(),
		`INSERT INTO products (name, description, category_id, store_id, price, unit, stock,
		                       image_url, cloudinary_id, is_featured, is_active, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,true,$11,$12) RETURNING id`,
		req.Name, req.Description, req.CategoryID, req.StoreID, req.Price, req.Unit, req.Stock,
		imageURL, cloudinaryID, req.IsFeatured, now, now).Scan(&productID)

	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product", "error": err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created", "data": gin.H{"id": productID}})
}

// @Summary Update product
// @Description Update an existing product (Admin only)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx := context.Background()

	var existing models.Product
	err = models.DB.QueryRow(ctx,
		`SELECT id, name, description, category_id, store_id, price, unit, stock,
		        COALESCE(image_url, ''), COALESCE(cloudinary_id, ''), is_featured, is_active
		 FROM products WHERE id=$1`,
		id).Scan(&existing.ID, &existing.Name, &existing.Description, &existing.CategoryID,
		&existing.StoreID, &existing.Price, &existing.Unit, &existing.Stock,
		&existing.ImageURL, &existing.CloudinaryID, &existing.IsFeatured, &existing.IsActive)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.CategoryID > 0 {
		existing.CategoryID = req.CategoryID
	}
	if req.StoreID > 0 {
		existing.StoreID = req.StoreID
	}
	if req.Price > 0 {
		existing.Price = req.Price
	}
	if req.Unit != "" {
		existing.Unit = req.Unit
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		existing.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if imageURL, cloudinaryID := handleImageUpload(c, "products"); imageURL != "" {
		if existing.CloudinaryID != "" {
			if cld, err := models.NewCloudinaryService(); err == nil {
				cld.DeleteImage(ctx, existing.CloudinaryID)
			}
		}
		existing.ImageURL = imageURL
		existing.CloudinaryID = cloudinaryID
	}

	_, err = models.DB.Exec(ctx,
		`UPDATE products SET name=$1, description=$2, category_id=$3, store_id=$4, price=$5,
		        unit=$6, stock=$7, image_url=$8, cloudinary_id=$9, is_featured=$10, is_active=$11, updated_at=$12
		 WHERE id=$13`,
		existing.Name, existing.Description, existing.CategoryID, existing.StoreID, existing.Price,
		existing.Unit, existing.Stock, existing.ImageURL, existing.CloudinaryID,
		existing.IsFeatured, existing.IsActive, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product updated", "data": existing})
}

// @Summary Delete product
// @Description Soft-delete a product (Admin only)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	result, err := models.DB.Exec(context.Background(),
		"UPDATE products SET is_active=false, updated_at=$1 WHERE id=$2", time.Now(), id)
	if err != nil || result.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product deleted"})
}

// handleImageUpload stores an uploaded image via Cloudinary when configured,
// falling back to local disk. Returns empty strings when no file was sent.
func handleImageUpload(c *gin.Context, folder string) (string, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", ""
	}

	if cld, err := models.NewCloudinaryService(); err == nil {
		if err := cld.ValidateImageFile(fileHeader); err != nil {
			log.Println("Rejected image upload:", err)
			return "", ""
		}

		file, err := fileHeader.Open()
		if err != nil {
			return "", ""
		}
		defer file.Close()

		url, publicID, err := cld.UploadImage(context.Background(), file, fileHeader.Filename, folder)
		if err != nil {
			log.Println("Cloudinary upload failed:", err)
			return "", ""
		}
		return url, publicID
	}

	path, err := utils.UploadFile(c, fileHeader, folder)
	if err != nil {
		log.Println("Local upload failed:", err)
		return "", ""
	}
	return "/uploads/" + path, ""
}
