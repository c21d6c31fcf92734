package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type Repository interface {
	// Candidates returns profiles that may match f, in id order. Callers
	// apply Filter.Matches for the exact result.
	Candidates(ctx context.Context, f Filter) ([]models.BarberProfile, error)
	GetProfile(ctx context.Context, id uint) (*models.BarberProfile, error)
	GetProfileByUser(ctx context.Context, userID uint) (*models.BarberProfile, error)
	UpdateProfile(ctx context.Context, p *models.BarberProfile) error
}
