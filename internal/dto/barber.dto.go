package dto

import "github.com/BruksfildServices01/barber-connect/internal/models"

type UpdateBarberRequest struct {
	ShopName     *string              `json:"shop_name" binding:"omitempty,max=100"`
	Address      *string              `json:"address" binding:"omitempty,max=255"`
	Services     *[]models.Service    `json:"services"`
	Availability *models.Availability `json:"availability"`
	Location     *LocationDTO         `json:"location"`
}
