package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NewAppointment validates the requested slot against the barber's menu and
// returns a pending appointment.
func NewAppointment(
	customer *models.User,
	barber *models.BarberProfile,
	serviceName string,
	date string,
	clock string,
	notes string,
) (*models.Appointment, error) {

	fields := map[string][]string{}

	if customer.Role != models.RoleCustomer {
		fields["customer"] = append(fields["customer"], "User is not a customer.")
	}

	service, ok := barber.FindService(serviceName)
	if !ok {
		fields["service"] = append(fields["service"], "Service is not offered by this barber.")
	}

	day, err := time.Parse(DateLayout, date)
	if err != nil {
		fields["date"] = append(fields["date"], "Date has wrong format. Use YYYY-MM-DD.")
	}
	at, err := time.Parse(TimeLayout, clock)
	if err != nil {
		fields["time"] = append(fields["time"], "Time has wrong format. Use HH:MM.")
	}

	if len(fields) > 0 {
		return nil, httperr.NewValidation(fields)
	}

	return &models.Appointment{
		CustomerID:   customer.ID,
		BarberID:     barber.ID,
		Service:      service.Name,
		ServicePrice: service.Price,
		// stored zero-padded so text ordering matches chronological ordering
		Date:         day.Format(DateLayout),
		Time:         at.Format(TimeLayout),
		Status:       string(InitialStatus()),
		Notes:        notes,
	}, nil
}
