package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Participants
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetBarberProfile(ctx context.Context, id uint) (*models.BarberProfile, error) {
	var p models.BarberProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetBarberProfileByUser(ctx context.Context, userID uint) (*models.BarberProfile, error) {
	var p models.BarberProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit("Customer", "Barber").Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		First(&ap, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date ASC").
		Order("time ASC").
		Order("id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ListForBarber(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Order("time ASC").
		Order("id ASC").
		Find(&apps).Error
	return apps, err
}

// TransitionStatus is a compare-and-set on status, so of two concurrent
// transitions out of the same state only one updates the row.
func (r *AppointmentGormRepository) TransitionStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) StatsForBarber(
	ctx context.Context,
	barberID uint,
	today string,
) (domain.Stats, error) {

	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("barber_id = ?", barberID)
	}

	var s domain.Stats

	if err := scope().Count(&s.TotalAppointments).Error; err != nil {
		return s, err
	}

	upcoming := make([]string, 0, 2)
	for _, st := range domain.UpcomingStatuses() {
		upcoming = append(upcoming, string(st))
	}
	if err := scope().
		Where("status IN ? AND date >= ?", upcoming, today).
		Count(&s.UpcomingAppointments).Error; err != nil {
		return s, err
	}

	if err := scope().
		Where("status = ?", string(domain.StatusCompleted)).
		Select("COALESCE(SUM(service_price), 0)").
		Scan(&s.Earnings).Error; err != nil {
		return s, err
	}

	return s, nil
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
