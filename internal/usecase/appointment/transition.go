package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/metrics"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/notify"
)

// ===============================
// Apply action (accept / reject)
// ===============================

type ApplyAction struct {
	lifecycle
}

func NewApplyAction(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *ApplyAction {
	return &ApplyAction{lifecycle{repo: repo, notifier: notifier, audit: audit}}
}

// Execute lets the owning barber accept or reject a pending appointment.
// rawAction is validated here so every route reports bad actions alike.
func (uc *ApplyAction) Execute(
	ctx context.Context,
	actor *access.Actor,
	appointmentID uint,
	rawAction string,
) (*models.Appointment, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	return uc.apply(ctx, actor, appointmentID, action)
}

// ===============================
// Mark completed
// ===============================

// MarkCompleted moves a confirmed appointment to completed. No route or job
// calls it yet; it exists so earnings can be produced by a future flow.
type MarkCompleted struct {
	lifecycle
}

func NewMarkCompleted(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *MarkCompleted {
	return &MarkCompleted{lifecycle{repo: repo, notifier: notifier, audit: audit}}
}

func (uc *MarkCompleted) Execute(
	ctx context.Context,
	actor *access.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}
	return uc.apply(ctx, actor, appointmentID, domain.ActionComplete)
}

// ===============================
// Shared transition
// ===============================

type lifecycle struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Recorder
}

func (l lifecycle) apply(
	ctx context.Context,
	actor *access.Actor,
	appointmentID uint,
	action domain.Action,
) (*models.Appointment, error) {

	ap, err := l.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, errAppointmentNotFound
	}

	if !isOwningBarber(actor, ap) {
		if isCustomer(actor, ap) {
			return nil, httperr.NewUnauthorized("not_appointment_barber", "Only the barber can change this appointment.")
		}
		return nil, errAppointmentNotFound
	}

	current := domain.Status(ap.Status)
	next, err := domain.Next(current, action)
	if err != nil {
		return nil, err
	}

	ok, err := l.repo.TransitionStatus(ctx, ap.ID, current, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.IncTransition(string(next), metrics.ResultConflict)
		return nil, httperr.NewInvalidTransition(
			"invalid_state",
			"Appointment is no longer "+string(current)+".",
		)
	}

	ap.Status = string(next)
	metrics.IncTransition(string(next), metrics.ResultApplied)

	l.notifier.Notify(ctx, ap.CustomerID, notificationFor(next), map[string]any{
		"appointment_id": ap.ID,
		"barber_id":      ap.BarberID,
		"status":         ap.Status,
		"date":           ap.Date,
		"time":           ap.Time,
	})

	l.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": string(current),
			"to":   string(next),
		},
	})

	return ap, nil
}

func notificationFor(s domain.Status) notify.Kind {
	switch s {
	case domain.StatusConfirmed:
		return notify.KindAppointmentConfirmed
	case domain.StatusRejected:
		return notify.KindAppointmentRejected
	case domain.StatusCompleted:
		return notify.KindAppointmentCompleted
	default:
		return notify.Kind("appointment_" + string(s))
	}
}
