package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/services"
	"grocery-shop/utils"
)

const otpTTL = 5 * time.Minute

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{
		authService: services.NewAuthService(),
	}
}

func otpKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

// @Summary Register a new account
// @Description Create a customer account with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	result, err := ctrl.authService.Register(req)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Registration successful", "data": result})
}

// @Summary Login
// @Description Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	result, err := ctrl.authService.Login(req)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Login successful", "data": result})
}

// @Summary Send OTP
// @Description Send a one-time code to the given phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SendOTPRequest true "Phone number"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/send-otp [post]
func (ctrl *AuthController) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if models.RedisClient == nil {
		c.JSON(503, gin.H{"success": false, "message": "OTP login is not available"})
		return
	}

	code, err := utils.GenerateOTP(6)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate code"})
		return
	}

	ctx := context.Background()
	if err := models.RedisClient.Set(ctx, otpKey(req.Phone), code, otpTTL).Err(); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to store code"})
		return
	}

	// SMS delivery is handled by an external provider in production. When an
	// email is supplied the code is also sent there.
	if req.Email != "" {
		if mailer, err := models.NewEmailService(); err == nil {
			if err := mailer.SendOTPEmail(req.Email, code); err != nil {
				log.Println("Failed to send OTP email:", err)
			}
		}
	}

	data := gin.H{"expires_in": int(otpTTL.Seconds())}
	if gin.Mode() != gin.ReleaseMode {
		data["code"] = code
	}

	c.JSON(200, gin.H{"success": true, "message": "Code sent", "data": data})
}

// @Summary Verify OTP
// @Description Verify a one-time code and log in, creating the account if needed
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/verify-otp [post]
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if models.RedisClient == nil {
		c.JSON(503, gin.H{"success": false, "message": "OTP login is not available"})
		return
	}

	ctx := context.Background()
	stored, err := models.RedisClient.Get(ctx, otpKey(req.Phone)).Result()
	if err != nil || stored != req.Code {
		c.JSON(401, gin.H{"success": false, "message": "Invalid or expired code"})
		return
	}

	models.RedisClient.Del(ctx, otpKey(req.Phone))

	result, err := ctrl.authService.LoginWithPhone(req.Phone)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to log in"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Login successful", "data": result})
}

// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := ctrl.authService.GetProfile(userID)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Profile not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile retrieved", "data": profile})
}

// @Summary Update profile
// @Description Update the authenticated user's profile
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response
// @Router /profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := ctrl.authService.UpdateProfile(userID, req); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	profile, _ := ctrl.authService.GetProfile(userID)
	c.JSON(200, gin.H{"success": true, "message": "Profile updated", "data": profile})
}

// @Summary Update profile photo
// @Description Upload a new profile photo
// @Tags Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile photo"
// @Success 200 {object} models.Response
// @Router /profile/photo [patch]
func (ctrl *AuthController) UpdateProfilePhoto(c *gin.Context) {
	userID := c.GetInt("user_id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Photo file is required"})
		return
	}

	var photoURL string
	if cld, err := models.NewCloudinaryService(); err == nil {
		if err := cld.ValidateImageFile(fileHeader); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to read photo"})
			return
		}
		defer file.Close()

		url, _, err := cld.UploadImage(context.Background(), file, fileHeader.Filename, "profiles")
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to upload photo"})
			return
		}
		photoURL = url
	} else {
		path, err := utils.UploadFile(c, fileHeader, "profiles")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}
		photoURL = "/uploads/" + path
	}

	if err := ctrl.authService.UpdateProfilePhoto(userID, photoURL); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile photo updated", "data": gin.H{"photo_url": photoURL}})
}

// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.Response
// @Router /profile/password [patch]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if err := ctrl.authService.ChangePassword(userID, req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Password changed"})
}
