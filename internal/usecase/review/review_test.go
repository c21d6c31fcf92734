package review

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	"github.com/BruksfildServices01/barber-connect/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/infra/repository"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

type recorder struct{ actions []string }

func (r *recorder) Dispatch(ev audit.Event) { r.actions = append(r.actions, ev.Action) }

type world struct {
	repo     *repository.ReviewGormRepository
	customer *access.Actor
	other    *access.Actor
	barber   *access.Actor
	b1, b2   uint
}

func seed(t *testing.T, gdb *gorm.DB) *world {
	t.Helper()
	users := repository.NewUserGormRepository(gdb)
	ctx := context.Background()

	mkUser := func(name string, role models.Role, profile *models.BarberProfile) *models.User {
		u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
		require.NoError(t, users.CreateAccount(ctx, u, profile))
		return u
	}

	c := mkUser("alice", models.RoleCustomer, nil)
	o := mkUser("olga", models.RoleCustomer, nil)
	p1 := &models.BarberProfile{ShopName: "One"}
	b := mkUser("bob", models.RoleBarber, p1)
	p2 := &models.BarberProfile{ShopName: "Two"}
	mkUser("carl", models.RoleBarber, p2)

	return &world{
		repo:     repository.NewReviewGormRepository(gdb),
		customer: &access.Actor{UserID: c.ID, Role: models.RoleCustomer},
		other:    &access.Actor{UserID: o.ID, Role: models.RoleCustomer},
		barber:   &access.Actor{UserID: b.ID, Role: models.RoleBarber},
		b1:       p1.ID,
		b2:       p2.ID,
	}
}

func TestSubmitReview(t *testing.T) {
	w := seed(t, dbtest.Open(t))
	rec := &recorder{}
	uc := NewSubmitReview(w.repo, rec)
	ctx := context.Background()

	r, err := uc.Execute(ctx, w.customer, SubmitInput{BarberID: w.b1, Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.Equal(t, w.customer.UserID, r.CustomerID)
	assert.Equal(t, "great", r.Comment)
	assert.Equal(t, []string{"review_created"}, rec.actions)

	_, err = uc.Execute(ctx, w.customer, SubmitInput{BarberID: w.b1, Rating: 4})
	require.NoError(t, err, "duplicate reviews are allowed")

	for _, rating := range []int{0, 6, -1} {
		_, err = uc.Execute(ctx, w.customer, SubmitInput{BarberID: w.b1, Rating: rating})
		assert.True(t, httperr.Is(err, httperr.KindValidation), "rating %d", rating)
	}

	_, err = uc.Execute(ctx, w.customer, SubmitInput{BarberID: 999, Rating: 3})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	_, err = uc.Execute(ctx, w.barber, SubmitInput{BarberID: w.b2, Rating: 3})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = uc.Execute(ctx, nil, SubmitInput{BarberID: w.b1, Rating: 3})
	assert.True(t, httperr.Is(err, httperr.KindUnauthenticated))
}

func TestListReviews(t *testing.T) {
	w := seed(t, dbtest.Open(t))
	submit := NewSubmitReview(w.repo, &recorder{})
	ctx := context.Background()

	for _, b := range []uint{w.b1, w.b2, w.b1} {
		_, err := submit.Execute(ctx, w.customer, SubmitInput{BarberID: b, Rating: 4})
		require.NoError(t, err)
	}

	uc := NewListReviews(w.repo)

	all, err := uc.Execute(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forB1, err := uc.ForBarber(ctx, strconv.FormatUint(uint64(w.b1), 10))
	require.NoError(t, err)
	for _, r := range forB1 {
		assert.Equal(t, w.b1, r.BarberID)
	}
	assert.Len(t, forB1, 2)

	none, err := uc.ForBarber(ctx, "999")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = uc.ForBarber(ctx, "")
	assert.True(t, httperr.Is(err, httperr.KindBadRequest))

	_, err = uc.ForBarber(ctx, "abc")
	assert.True(t, httperr.Is(err, httperr.KindBadRequest))

	_, err = uc.Execute(ctx, "-1")
	assert.True(t, httperr.Is(err, httperr.KindBadRequest))
}

func TestManageReviewOwnerOnly(t *testing.T) {
	w := seed(t, dbtest.Open(t))
	ctx := context.Background()
	r, err := NewSubmitReview(w.repo, &recorder{}).Execute(ctx, w.customer, SubmitInput{BarberID: w.b1, Rating: 3})
	require.NoError(t, err)

	uc := NewManageReview(w.repo, &recorder{})

	five, comment := 5, "changed my mind"
	updated, err := uc.Update(ctx, w.customer, r.ID, UpdateInput{Rating: &five, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, comment, updated.Comment)

	_, err = uc.Update(ctx, w.other, r.ID, UpdateInput{Rating: &five})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	bad := 9
	_, err = uc.Update(ctx, w.customer, r.ID, UpdateInput{Rating: &bad})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	assert.True(t, httperr.Is(uc.Delete(ctx, w.other, r.ID), httperr.KindUnauthorized))
	assert.True(t, httperr.Is(uc.Delete(ctx, nil, r.ID), httperr.KindUnauthenticated))
	require.NoError(t, uc.Delete(ctx, w.customer, r.ID))

	_, err = uc.Get(ctx, r.ID)
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}
