package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/notify"
)

type CreateInput struct {
	BarberID   uint
	CustomerID uint
	Service    string
	Date       string
	Time       string
	Notes      string
}

type CreateAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute books a pending appointment. A customer books with a barber
// profile; a barber books on behalf of a customer.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	var (
		customer *models.User
		barber   *models.BarberProfile
		err      error
	)

	switch actor.Role {
	case models.RoleCustomer:
		if customer, err = uc.repo.GetUser(ctx, actor.UserID); err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, httperr.NewUnauthenticated("User no longer exists.")
		}
		if in.BarberID == 0 {
			return nil, httperr.NewFieldError("barber", "This field is required.")
		}
		if barber, err = uc.repo.GetBarberProfile(ctx, in.BarberID); err != nil {
			return nil, err
		}
		if barber == nil {
			return nil, httperr.NewFieldError("barber", "Barber does not exist.")
		}

	case models.RoleBarber:
		if barber, err = uc.repo.GetBarberProfileByUser(ctx, actor.UserID); err != nil {
			return nil, err
		}
		if barber == nil {
			return nil, errNoBarberProfile
		}
		if in.CustomerID == 0 {
			return nil, httperr.NewFieldError("customer", "This field is required.")
		}
		if customer, err = uc.repo.GetUser(ctx, in.CustomerID); err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, httperr.NewFieldError("customer", "Customer does not exist.")
		}

	default:
		return nil, httperr.NewUnauthorized("forbidden_role", "Your account type cannot book appointments.")
	}

	ap, err := domain.NewAppointment(customer, barber, in.Service, in.Date, in.Time, in.Notes)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, barber.UserID, notify.KindAppointmentRequested, map[string]any{
		"appointment_id": ap.ID,
		"customer_id":    ap.CustomerID,
		"service":        ap.Service,
		"date":           ap.Date,
		"time":           ap.Time,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":   ap.BarberID,
			"customer_id": ap.CustomerID,
			"service":     ap.Service,
		},
	})

	return ap, nil
}

var errNoBarberProfile = httperr.NewUnauthorized("barber_profile_missing", "No barber profile for this account.")
