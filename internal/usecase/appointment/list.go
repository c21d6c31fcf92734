package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// Scope selects which side of the caller's appointments to list.
type Scope string

const (
	// ScopeOwn follows the caller's role.
	ScopeOwn      Scope = "own"
	ScopeCustomer Scope = "customer"
	ScopeBarber   Scope = "barber"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists the caller's appointments ordered by date and time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor *access.Actor,
	scope Scope,
) ([]models.Appointment, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	role := actor.Role
	switch scope {
	case ScopeOwn:
	case ScopeCustomer:
		if role != models.RoleCustomer {
			return nil, httperr.NewUnauthorized("forbidden_role", "Only customers have customer appointments.")
		}
	case ScopeBarber:
		if role != models.RoleBarber {
			return nil, httperr.NewUnauthorized("forbidden_role", "Only barbers have barber appointments.")
		}
	default:
		return nil, httperr.NewBadRequest("invalid_scope", "Unknown appointment scope.")
	}

	switch role {
	case models.RoleCustomer:
		return uc.repo.ListForCustomer(ctx, actor.UserID)
	case models.RoleBarber:
		profile, err := uc.repo.GetBarberProfileByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, errNoBarberProfile
		}
		return uc.repo.ListForBarber(ctx, profile.ID)
	default:
		return nil, httperr.NewUnauthorized("forbidden_role", "Unknown account type.")
	}
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns one appointment visible to the caller. Appointments of
// other users are reported as missing.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil || (!isOwningBarber(actor, ap) && !isCustomer(actor, ap)) {
		return nil, errAppointmentNotFound
	}
	return ap, nil
}

func isOwningBarber(actor *access.Actor, ap *models.Appointment) bool {
	return actor.Is(models.RoleBarber) && ap.Barber.UserID == actor.UserID
}

func isCustomer(actor *access.Actor, ap *models.Appointment) bool {
	return actor.Is(models.RoleCustomer) && ap.CustomerID == actor.UserID
}

var errAppointmentNotFound = httperr.NewNotFound("appointment_not_found", "Appointment not found.")
