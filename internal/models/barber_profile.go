package models

import "time"

// Service is one entry of the menu a barber offers. Its name identifies it.
type Service struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Availability maps a day or slot label ("monday", "monday 09:00") to open/closed.
type Availability map[string]bool

type BarberProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"-"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ShopName     string       `gorm:"size:100" json:"shop_name"`
	Address      string       `gorm:"size:255" json:"address"`
	Services     []Service    `gorm:"type:text;serializer:json" json:"services"`
	Availability Availability `gorm:"type:text;serializer:json" json:"availability"`

	Latitude  *float64 `gorm:"index:idx_barber_location" json:"latitude"`
	Longitude *float64 `gorm:"index:idx_barber_location" json:"longitude"`

	PhotoURL string `gorm:"size:512" json:"photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *BarberProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// FindService looks a service up by its exact name.
func (p *BarberProfile) FindService(name string) (Service, bool) {
	for _, s := range p.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}
