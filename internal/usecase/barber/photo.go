package barber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/imaging"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/storage"
)

type UploadPhoto struct {
	repo    domain.Repository
	store   storage.ObjectStore
	audit   audit.Recorder
	maxSide int
}

// NewUploadPhoto returns the use case. A nil store disables uploads.
func NewUploadPhoto(repo domain.Repository, store storage.ObjectStore, audit audit.Recorder) *UploadPhoto {
	return &UploadPhoto{
		repo:    repo,
		store:   store,
		audit:   audit,
		maxSide: imaging.DefaultMaxSide,
	}
}

// Execute converts the upload to WebP, stores it and points the profile at it.
func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
	photo io.Reader,
) (*models.BarberProfile, error) {

	if uc.store == nil {
		return nil, httperr.NewUnavailable("photo_storage_disabled", "Photo uploads are not configured.")
	}

	p, err := loadOwned(ctx, uc.repo, actor, http.MethodPut, id)
	if err != nil {
		return nil, err
	}

	data, err := imaging.ToWebP(photo, uc.maxSide)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return nil, httperr.NewFieldError("photo", "Upload a valid JPEG, PNG or WebP image.")
		}
		return nil, err
	}

	key := fmt.Sprintf("barbers/%d/%s%s", p.ID, uuid.NewString(), imaging.Extension)
	url, err := uc.store.Put(ctx, key, imaging.ContentType, data)
	if err != nil {
		return nil, err
	}

	p.PhotoURL = url
	if err := uc.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "barber_photo_uploaded",
		Entity:   "barber_profile",
		EntityID: &p.ID,
		Metadata: map[string]any{"key": key},
	})

	return p, nil
}
