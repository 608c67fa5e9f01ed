package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=8"`
	Email string `json:"email" binding:"omitempty,email"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Postcode string `json:"postcode" form:"postcode"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type CreateUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Description string  `json:"description" form:"description"`
	CategoryID  int     `json:"category_id" form:"category_id" binding:"required"`
	StoreID     int     `json:"store_id" form:"store_id" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"required,gt=0"`
	Unit        string  `json:"unit" form:"unit" binding:"required"`
	Stock       int     `json:"stock" form:"stock"`
	IsFeatured  bool    `json:"is_featured" form:"is_featured"`
	IsActive    bool    `json:"is_active" form:"is_active"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	CategoryID  int     `json:"category_id" form:"category_id"`
	StoreID     int     `json:"store_id" form:"store_id"`
	Price       float64 `json:"price" form:"price"`
	Unit        string  `json:"unit" form:"unit"`
	Stock       *int    `json:"stock" form:"stock"`
	IsFeatured  *bool   `json:"is_featured" form:"is_featured"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type CreateStoreRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=3"`
	Address  string `json:"address" form:"address" binding:"required"`
	Postcode string `json:"postcode" form:"postcode"`
	Phone    string `json:"phone" form:"phone"`
}

type UpdateStoreRequest struct {
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
	Postcode string `json:"postcode" form:"postcode"`
	Phone    string `json:"phone" form:"phone"`
}

type CreateTimeSlotRequest struct {
	Label     string  `json:"label" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Capacity  int     `json:"capacity" binding:"required,gt=0"`
	Fee       float64 `json:"fee"`
}

type CreatePromoRequest struct {
	Code           string  `json:"code" binding:"required,min=3"`
	Description    string  `json:"description"`
	DiscountType   string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64 `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64 `json:"min_order_amount"`
	UsageLimit     int     `json:"usage_limit"`
	ValidFrom      string  `json:"valid_from"`
	ValidUntil     string  `json:"valid_until"`
}

type ValidatePromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	Postcode      string `json:"postcode"`
	Phone         string `json:"phone"`
	DeliveryMode  string `json:"delivery_mode"`
	TimeSlotID    int    `json:"time_slot_id"`
	ScheduledDate string `json:"scheduled_date"`
	PromoCode     string `json:"promo_code"`
	Notes         string `json:"notes"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type PickupStopRequest struct {
	StoreID  int    `json:"store_id" binding:"required"`
	ItemList string `json:"item_list" binding:"required"`
}

type CreatePickupRequest struct {
	FullName        string              `json:"full_name"`
	Address         string              `json:"address"`
	Postcode        string              `json:"postcode"`
	Phone           string              `json:"phone"`
	EstimatedBudget float64             `json:"estimated_budget" binding:"required,gt=0"`
	Stops           []PickupStopRequest `json:"stops" binding:"required,min=1,dive"`
}

type OrderMessageRequest struct {
	Message string `json:"message" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssistantChatRequest struct {
	Message string             `json:"message" binding:"required"`
	History []AssistantMessage `json:"history"`
}

type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CreatePostcodeRequest struct {
	Code string `json:"code" binding:"required,min=3"`
	Area string `json:"area"`
}
