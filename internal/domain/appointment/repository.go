package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// Stats are the aggregates shown on a barber's dashboard.
type Stats struct {
	TotalAppointments    int64   `json:"total_appointments"`
	UpcomingAppointments int64   `json:"upcoming_appointments"`
	Earnings             float64 `json:"earnings"`
}

type Repository interface {
	// -------- Participants --------
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetBarberProfile(ctx context.Context, id uint) (*models.BarberProfile, error)
	GetBarberProfileByUser(ctx context.Context, userID uint) (*models.BarberProfile, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error)
	ListForBarber(ctx context.Context, barberID uint) ([]models.Appointment, error)

	// TransitionStatus moves the appointment from `from` to `to` only if it is
	// still in `from`. It reports whether the row was updated.
	TransitionStatus(ctx context.Context, id uint, from, to Status) (bool, error)

	// -------- Stats --------
	StatsForBarber(ctx context.Context, barberID uint, today string) (Stats, error)
}
