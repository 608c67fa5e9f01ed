package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/repositories"
	"grocery-shop/utils"
)

type UserController struct {
	userRepo *repositories.UserRepository
}

func NewUserController() *UserController {
	return &UserController{
		userRepo: repositories.NewUserRepository(),
	}
}

// @Summary Get all users
// @Description Get all users with their profiles (Admin only)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page, limit, _ := getPaginationParams(c, 10)

	users, total, err := ctrl.userRepo.FindAll(page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get users"})
		return
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Users retrieved",
		Data:    users,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// @Summary Get user by ID
// @Description Get a single user with profile (Admin only)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}

	user, err := ctrl.userRepo.GetUserWithProfile(id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User retrieved", "data": user})
}

// @Summary Create user
// @Description Create a user account (Admin only)
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} models.Response
// @Router /admin/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if existing, _ := ctrl.userRepo.FindByEmail(req.Email); existing != nil {
		c.JSON(400, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}

	user := &models.User{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		Role:     role,
	}
	if err := ctrl.userRepo.Create(user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := ctrl.userRepo.CreateProfile(profile); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user profile"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "User created", "data": gin.H{"id": user.ID}})
}

// @Summary Update user
// @Description Update a user's account and profile (Admin only)
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRequest true "User data"
// @Success 200 {object} models.Response
// @Router /admin/users/{id} [patch]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	user, err := ctrl.userRepo.FindByID(id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role == "customer" || req.Role == "admin" {
		user.Role = req.Role
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	_, err = models.DB.Exec(context.Background(),
		"UPDATE users SET email = $1, role = $2, phone = $3, updated_at = NOW() WHERE id = $4",
		user.Email, user.Role, user.Phone, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update user"})
		return
	}

	if req.FullName != "" || req.Address != "" || req.Phone != "" {
		if profile, err := ctrl.userRepo.GetProfile(id); err == nil {
			if req.FullName != "" {
				profile.FullName = req.FullName
			}
			if req.Address != "" {
				profile.Address = req.Address
			}
			if req.Phone != "" {
				profile.Phone = req.Phone
			}
			ctrl.userRepo.UpdateProfile(profile)
		}
	}

	updated, _ := ctrl.userRepo.GetUserWithProfile(id)
	c.JSON(200, gin.H{"success": true, "message": "User updated", "data": updated})
}

// @Summary Delete user
// @Description Delete a user account (Admin only)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}

	if id == c.GetInt("user_id") {
		c.JSON(400, gin.H{"success": false, "message": "Cannot delete your own account"})
		return
	}

	if err := ctrl.userRepo.Delete(id); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User deleted"})
}
