package barber

import (
	"context"

	domain "github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type DiscoverBarbers struct {
	repo domain.Repository
}

func NewDiscoverBarbers(repo domain.Repository) *DiscoverBarbers {
	return &DiscoverBarbers{repo: repo}
}

// Execute lists barber profiles matching the raw lat/lng/search query
// values, ordered by id.
func (uc *DiscoverBarbers) Execute(ctx context.Context, lat, lng, search string) ([]models.BarberProfile, error) {
	filter, err := domain.ParseFilter(lat, lng, search)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.repo.Candidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]models.BarberProfile, 0, len(candidates))
	for i := range candidates {
		if filter.Matches(&candidates[i]) {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}

type GetBarber struct {
	repo domain.Repository
}

func NewGetBarber(repo domain.Repository) *GetBarber {
	return &GetBarber{repo: repo}
}

func (uc *GetBarber) Execute(ctx context.Context, id uint) (*models.BarberProfile, error) {
	p, err := uc.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errBarberNotFound
	}
	return p, nil
}

var errBarberNotFound = httperr.NewNotFound("barber_not_found", "Barber not found.")
