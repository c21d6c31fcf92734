package repository

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/geo"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Candidates narrows the listing in SQL: a bounding box around the search
// point and a LIKE prefilter on shop name and the serialized services.
func (r *BarberGormRepository) Candidates(ctx context.Context, f barber.Filter) ([]models.BarberProfile, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Order("id ASC")

	if f.Near != nil {
		box := geo.BoundingBox(*f.Near, barber.SearchRadiusKm)
		q = q.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)

		if box.WrapsLongitude() {
			q = q.Where("(longitude >= ? OR longitude <= ?)", box.MinLng, box.MaxLng)
		} else {
			q = q.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
		}
	}

	if f.Search != "" {
		name := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"

		encoded, err := json.Marshal(f.Search)
		if err != nil {
			return nil, err
		}
		service := `%"name":` + likeEscaper.Replace(string(encoded)) + `%`

		q = q.Where(`LOWER(shop_name) LIKE ? ESCAPE '\' OR services LIKE ? ESCAPE '\'`, name, service)
	}

	var profiles []models.BarberProfile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *BarberGormRepository) GetProfile(ctx context.Context, id uint) (*models.BarberProfile, error) {
	var p models.BarberProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

func (r *BarberGormRepository) GetProfileByUser(ctx context.Context, userID uint) (*models.BarberProfile, error) {
	var p models.BarberProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

func (r *BarberGormRepository) UpdateProfile(ctx context.Context, p *models.BarberProfile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

var _ barber.Repository = (*BarberGormRepository)(nil)
