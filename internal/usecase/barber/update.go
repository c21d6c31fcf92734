package barber

import (
	"context"
	"net/http"
	"strings"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/geo"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	ShopName     *string
	Address      *string
	Services     *[]models.Service
	Availability *models.Availability
	Location     *geo.Point
}

type UpdateBarber struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateBarber(repo domain.Repository, audit audit.Recorder) *UpdateBarber {
	return &UpdateBarber{repo: repo, audit: audit}
}

func (uc *UpdateBarber) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
	in UpdateInput,
) (*models.BarberProfile, error) {

	p, err := loadOwned(ctx, uc.repo, actor, http.MethodPatch, id)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}

	if in.ShopName != nil {
		p.ShopName = strings.TrimSpace(*in.ShopName)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Services != nil {
		if msg := domain.ValidateServices(*in.Services); msg != "" {
			fields["services"] = []string{msg}
		}
		p.Services = *in.Services
		if p.Services == nil {
			p.Services = []models.Service{}
		}
	}
	if in.Availability != nil {
		p.Availability = *in.Availability
		if p.Availability == nil {
			p.Availability = models.Availability{}
		}
	}
	if in.Location != nil {
		if !in.Location.Valid() {
			fields["location"] = []string{"Latitude must be within ±90 and longitude within ±180."}
		}
		lat, lng := in.Location.Lat, in.Location.Lng
		p.Latitude, p.Longitude = &lat, &lng
	}

	if len(fields) > 0 {
		return nil, httperr.NewValidation(fields)
	}

	if err := uc.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "barber_profile_updated",
		Entity:   "barber_profile",
		EntityID: &p.ID,
	})

	return p, nil
}

// loadOwned fetches a profile and applies the owner-or-read-only policy
// for method before anything is written.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	actor *access.Actor,
	method string,
	id uint,
) (*models.BarberProfile, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	p, err := repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errBarberNotFound
	}

	err = access.RequireAuthenticatedOwnerOrReadOnly{}.Check(access.Request{
		Method:  method,
		Actor:   actor,
		OwnerID: &p.UserID,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
