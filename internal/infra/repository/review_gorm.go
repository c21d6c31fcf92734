package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-connect/internal/domain/review"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) BarberExists(ctx context.Context, barberID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("id = ?", barberID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rv).Error
}

func (r *ReviewGormRepository) Get(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &rv, nil
}

func (r *ReviewGormRepository) List(ctx context.Context, barberID *uint) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rv).Error
}

func (r *ReviewGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

var _ review.Repository = (*ReviewGormRepository)(nil)
