package dto

import "github.com/BruksfildServices01/barber-connect/internal/models"

type LocationDTO struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	UserType string `json:"user_type" binding:"required"`

	ShopName     string              `json:"shop_name" binding:"max=100"`
	Address      string              `json:"address" binding:"max=255"`
	Services     []models.Service    `json:"services"`
	Availability models.Availability `json:"availability"`
	Location     *LocationDTO        `json:"location"`
}

// LoginRequest accepts either username or email as the login.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Login() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}
