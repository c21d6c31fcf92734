package review

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type Repository interface {
	BarberExists(ctx context.Context, barberID uint) (bool, error)
	Create(ctx context.Context, r *models.Review) error
	Get(ctx context.Context, id uint) (*models.Review, error)
	// List returns reviews in id order, all of them when barberID is nil.
	List(ctx context.Context, barberID *uint) ([]models.Review, error)
	Update(ctx context.Context, r *models.Review) error
	Delete(ctx context.Context, id uint) error
}
