package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-connect/internal/db"
	"github.com/BruksfildServices01/barber-connect/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

func fptr(f float64) *float64 { return &f }

func seedCustomer(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedBarber(t *testing.T, gdb *gorm.DB, username, shop string, lat, lng *float64, services ...models.Service) *models.BarberProfile {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: models.RoleBarber}
	p := &models.BarberProfile{ShopName: shop, Services: services, Latitude: lat, Longitude: lng}
	require.NoError(t, NewUserGormRepository(gdb).CreateAccount(context.Background(), u, p))
	return p
}

// ==============================
// Users
// ==============================

func TestCreateAccountWithProfile(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewUserGormRepository(gdb)
	ctx := context.Background()

	p := seedBarber(t, gdb, "bob", "Bob's", nil, nil, models.Service{Name: "Haircut", Price: 25})
	assert.NotZero(t, p.ID)
	assert.Equal(t, "bob", p.User.Username)

	taken, err := repo.UsernameTaken(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	found, err := repo.FindByLogin(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.RoleBarber, found.Role)

	profile, err := repo.GetBarberProfileByUser(ctx, found.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, []models.Service{{Name: "Haircut", Price: 25}}, profile.Services)
}

func TestCreateAccountRollsBackOnProfileFailure(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewUserGormRepository(gdb)
	ctx := context.Background()

	boom := errors.New("profile insert failed")
	require.NoError(t, gdb.Callback().Create().Before("gorm:create").Register("test:fail_profile", func(tx *gorm.DB) {
		if tx.Statement.Table == "barber_profiles" {
			_ = tx.AddError(boom)
		}
	}))

	u := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleBarber}
	err := repo.CreateAccount(ctx, u, &models.BarberProfile{ShopName: "Bob's"})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "user must not survive a failed profile insert")
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewUserGormRepository(gdb)
	seedCustomer(t, gdb, "alice")

	err := repo.CreateAccount(context.Background(),
		&models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x", Role: models.RoleCustomer}, nil)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestMissingUserIsNil(t *testing.T) {
	repo := NewUserGormRepository(dbtest.Open(t))

	u, err := repo.GetUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByLogin(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

// ==============================
// Barbers
// ==============================

func TestCandidatesBoundingBoxAndSearch(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewBarberGormRepository(gdb)
	ctx := context.Background()

	near := seedBarber(t, gdb, "near", "Quick Cuts", fptr(40.01), fptr(-75.01), models.Service{Name: "Fade", Price: 20})
	seedBarber(t, gdb, "far", "Quick Cuts North", fptr(41.5), fptr(-75.0))
	noLoc := seedBarber(t, gdb, "noloc", "Mobile 100% Cuts", nil, nil, models.Service{Name: "Shave", Price: 10})

	f, err := barber.ParseFilter("40.0", "-75.0", "")
	require.NoError(t, err)
	got, err := repo.Candidates(ctx, f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].ID)
	assert.Equal(t, "near", got[0].User.Username)

	got, err = repo.Candidates(ctx, barber.Filter{Search: "Shave"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, noLoc.ID, got[0].ID)

	got, err = repo.Candidates(ctx, barber.Filter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, got, 1, "LIKE wildcards in the search are literal")

	got, err = repo.Candidates(ctx, barber.Filter{Search: "quick"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Candidates(ctx, barber.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpdateProfile(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewBarberGormRepository(gdb)
	ctx := context.Background()

	p := seedBarber(t, gdb, "bob", "Bob's", nil, nil)
	p.ShopName = "Bob's Barbers"
	p.Latitude, p.Longitude = fptr(1), fptr(2)
	p.Availability = models.Availability{"monday": true}
	require.NoError(t, repo.UpdateProfile(ctx, p))

	got, err := repo.GetProfileByUser(ctx, p.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bob's Barbers", got.ShopName)
	assert.True(t, got.HasLocation())
	assert.True(t, got.Availability["monday"])

	missing, err := repo.GetProfile(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ==============================
// Appointments
// ==============================

func newAppointment(c *models.User, b *models.BarberProfile, date, clock string, price float64) *models.Appointment {
	return &models.Appointment{
		CustomerID: c.ID, BarberID: b.ID, Service: "Haircut", ServicePrice: price,
		Date: date, Time: clock, Status: string(domain.StatusPending),
	}
}

func TestTransitionStatusIsConditional(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	c := seedCustomer(t, gdb, "alice")
	b := seedBarber(t, gdb, "bob", "Bob's", nil, nil)
	ap := newAppointment(c, b, "2030-01-01", "10:00", 25)
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	ok, err := repo.TransitionStatus(ctx, ap.ID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, ap.ID, domain.StatusPending, domain.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok, "second transition out of pending must lose")

	got, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	assert.Equal(t, b.UserID, got.Barber.UserID)
}

func TestListsAreOrderedBySlot(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	c := seedCustomer(t, gdb, "alice")
	b := seedBarber(t, gdb, "bob", "Bob's", nil, nil)
	for _, slot := range [][2]string{{"2030-01-02", "09:00"}, {"2030-01-01", "15:00"}, {"2030-01-01", "08:30"}} {
		require.NoError(t, repo.CreateAppointment(ctx, newAppointment(c, b, slot[0], slot[1], 10)))
	}

	mine, err := repo.ListForCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "08:30", mine[0].Time)
	assert.Equal(t, "15:00", mine[1].Time)
	assert.Equal(t, "2030-01-02", mine[2].Date)

	theirs, err := repo.ListForBarber(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 3)

	none, err := repo.ListForCustomer(ctx, c.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStatsForBarber(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	c := seedCustomer(t, gdb, "alice")
	b := seedBarber(t, gdb, "bob", "Bob's", nil, nil)
	other := seedBarber(t, gdb, "carl", "Carl's", nil, nil)

	mk := func(bp *models.BarberProfile, date string, status domain.Status, price float64) {
		ap := newAppointment(c, bp, date, "10:00", price)
		ap.Status = string(status)
		require.NoError(t, repo.CreateAppointment(ctx, ap))
	}
	mk(b, "2030-01-10", domain.StatusPending, 10)
	mk(b, "2030-01-09", domain.StatusConfirmed, 20)
	mk(b, "2030-01-01", domain.StatusPending, 30) // in the past
	mk(b, "2030-01-01", domain.StatusCompleted, 40)
	mk(b, "2030-01-12", domain.StatusCompleted, 5)
	mk(b, "2030-01-12", domain.StatusRejected, 50)
	mk(other, "2030-01-12", domain.StatusCompleted, 100)

	s, err := repo.StatsForBarber(ctx, b.ID, "2030-01-05")
	require.NoError(t, err)
	assert.EqualValues(t, 6, s.TotalAppointments)
	assert.EqualValues(t, 2, s.UpcomingAppointments)
	assert.InDelta(t, 45.0, s.Earnings, 0.001)

	empty, err := repo.StatsForBarber(ctx, other.ID+100, "2030-01-05")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, empty)
}

// ==============================
// Reviews
// ==============================

func TestReviewRepository(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewReviewGormRepository(gdb)
	ctx := context.Background()

	c := seedCustomer(t, gdb, "alice")
	b1 := seedBarber(t, gdb, "bob", "Bob's", nil, nil)
	b2 := seedBarber(t, gdb, "carl", "Carl's", nil, nil)

	ok, err := repo.BarberExists(ctx, b1.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.BarberExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	r1 := &models.Review{CustomerID: c.ID, BarberID: b1.ID, Rating: 5, Comment: "great"}
	require.NoError(t, repo.Create(ctx, r1))
	require.NoError(t, repo.Create(ctx, &models.Review{CustomerID: c.ID, BarberID: b2.ID, Rating: 3}))
	require.NoError(t, repo.Create(ctx, &models.Review{CustomerID: c.ID, BarberID: b1.ID, Rating: 4}))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forB1, err := repo.List(ctx, &b1.ID)
	require.NoError(t, err)
	require.Len(t, forB1, 2)
	assert.Equal(t, r1.ID, forB1[0].ID)

	r1.Comment = "still great"
	require.NoError(t, repo.Update(ctx, r1))
	got, err := repo.Get(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, "still great", got.Comment)

	require.NoError(t, repo.Delete(ctx, r1.ID))
	got, err = repo.Get(ctx, r1.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
