package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
)

// Today yields the current date as YYYY-MM-DD.
type Today interface {
	Today() string
}

type GetStats struct {
	repo  appointment.Repository
	clock Today
}

func NewGetStats(repo appointment.Repository, clock Today) *GetStats {
	return &GetStats{repo: repo, clock: clock}
}

func (uc *GetStats) Execute(ctx context.Context, actor *access.Actor) (appointment.Stats, error) {
	if actor == nil {
		return appointment.Stats{}, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	profile, err := uc.repo.GetBarberProfileByUser(ctx, actor.UserID)
	if err != nil {
		return appointment.Stats{}, err
	}
	if profile == nil {
		return appointment.Stats{}, httperr.NewUnauthorized("barber_profile_missing", "No barber profile for this account.")
	}

	return uc.repo.StatsForBarber(ctx, profile.ID, uc.clock.Today())
}
