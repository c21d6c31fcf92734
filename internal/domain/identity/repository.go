package identity

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// Repository lookups return (nil, nil) when nothing matches.
type Repository interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	// CreateAccount stores the user and, when profile is non-nil, its barber
	// profile in one transaction.
	CreateAccount(ctx context.Context, user *models.User, profile *models.BarberProfile) error

	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	GetBarberProfileByUser(ctx context.Context, userID uint) (*models.BarberProfile, error)
}
