package review

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/review"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

var (
	errReviewNotFound = httperr.NewNotFound("review_not_found", "Review not found.")
	msgRating         = "Ensure this value is between 1 and 5."
)

// ===============================
// Submit
// ===============================

type SubmitInput struct {
	BarberID uint
	Rating   int
	Comment  string
}

type SubmitReview struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewSubmitReview(repo domain.Repository, audit audit.Recorder) *SubmitReview {
	return &SubmitReview{repo: repo, audit: audit}
}

func (uc *SubmitReview) Execute(ctx context.Context, actor *access.Actor, in SubmitInput) (*models.Review, error) {
	if err := (access.RequireRole{models.RoleCustomer}).Check(access.Request{Method: http.MethodPost, Actor: actor}); err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	if !domain.ValidRating(in.Rating) {
		fields["rating"] = append(fields["rating"], msgRating)
	}
	if in.BarberID == 0 {
		fields["barber"] = append(fields["barber"], "This field is required.")
	} else if ok, err := uc.repo.BarberExists(ctx, in.BarberID); err != nil {
		return nil, err
	} else if !ok {
		fields["barber"] = append(fields["barber"], "Barber does not exist.")
	}
	if len(fields) > 0 {
		return nil, httperr.NewValidation(fields)
	}

	r := &models.Review{
		CustomerID: actor.UserID,
		BarberID:   in.BarberID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &r.ID,
		Metadata: map[string]any{"barber_id": r.BarberID, "rating": r.Rating},
	})

	return r, nil
}

// ===============================
// List
// ===============================

type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

// Execute lists every review, or only those of barberParam when it is set.
func (uc *ListReviews) Execute(ctx context.Context, barberParam string) ([]models.Review, error) {
	if strings.TrimSpace(barberParam) == "" {
		return uc.list(ctx, nil)
	}
	id, err := parseBarberID(barberParam)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, &id)
}

// ForBarber requires the barber parameter.
func (uc *ListReviews) ForBarber(ctx context.Context, barberParam string) ([]models.Review, error) {
	if strings.TrimSpace(barberParam) == "" {
		return nil, httperr.NewBadRequest("barber_required", "Barber ID required.")
	}
	id, err := parseBarberID(barberParam)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, &id)
}

func (uc *ListReviews) list(ctx context.Context, barberID *uint) ([]models.Review, error) {
	reviews, err := uc.repo.List(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func parseBarberID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.NewBadRequest("invalid_barber", "Barber ID must be a positive integer.")
	}
	return uint(id), nil
}

// ===============================
// Update / Delete
// ===============================

type UpdateInput struct {
	Rating  *int
	Comment *string
}

type ManageReview struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewManageReview(repo domain.Repository, audit audit.Recorder) *ManageReview {
	return &ManageReview{repo: repo, audit: audit}
}

func (uc *ManageReview) Get(ctx context.Context, id uint) (*models.Review, error) {
	r, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errReviewNotFound
	}
	return r, nil
}

func (uc *ManageReview) Update(ctx context.Context, actor *access.Actor, id uint, in UpdateInput) (*models.Review, error) {
	r, err := uc.loadOwned(ctx, actor, http.MethodPatch, id)
	if err != nil {
		return nil, err
	}

	if in.Rating != nil {
		if !domain.ValidRating(*in.Rating) {
			return nil, httperr.NewFieldError("rating", msgRating)
		}
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = strings.TrimSpace(*in.Comment)
	}

	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "review_updated",
		Entity:   "review",
		EntityID: &r.ID,
	})
	return r, nil
}

func (uc *ManageReview) Delete(ctx context.Context, actor *access.Actor, id uint) error {
	r, err := uc.loadOwned(ctx, actor, http.MethodDelete, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, r.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &r.ID,
	})
	return nil
}

func (uc *ManageReview) loadOwned(ctx context.Context, actor *access.Actor, method string, id uint) (*models.Review, error) {
	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	r, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = access.RequireAuthenticatedOwnerOrReadOnly{}.Check(access.Request{
		Method:  method,
		Actor:   actor,
		OwnerID: &r.CustomerID,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
