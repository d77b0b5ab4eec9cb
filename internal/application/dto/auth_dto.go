package dto

// RegisterRequest body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is a user without credential material.
type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	DefaultShopID string `json:"default_shop_id,omitempty"`
}

// LoginResponse carries the bearer token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse is the authenticated user, their shops and the resolved
// default shop (null when unset or dangling).
type ProfileResponse struct {
	User        UserResponse   `json:"user"`
	Shops       []ShopResponse `json:"shops"`
	DefaultShop *ShopResponse  `json:"default_shop,omitempty"`
}
