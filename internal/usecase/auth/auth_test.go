package auth

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	tokens "github.com/BruksfildServices01/barber-connect/internal/auth"
	"github.com/BruksfildServices01/barber-connect/internal/config"
	"github.com/BruksfildServices01/barber-connect/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/infra/repository"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

type nopAudit struct{ actions []string }

func (a *nopAudit) Dispatch(ev audit.Event) { a.actions = append(a.actions, ev.Action) }

type resolver struct{ ok bool }

func (r resolver) LookupMX(context.Context, string) ([]*net.MX, error) {
	if r.ok {
		return []*net.MX{{Host: "mx"}}, nil
	}
	return nil, errors.New("nxdomain")
}

func (r resolver) LookupHost(context.Context, string) ([]string, error) {
	return nil, errors.New("nxdomain")
}

type env struct {
	repo   *repository.UserGormRepository
	issuer *tokens.Issuer
	audit  *nopAudit
}

func newEnv(t *testing.T) *env {
	return &env{
		repo:   repository.NewUserGormRepository(dbtest.Open(t)),
		issuer: tokens.NewIssuer(config.JWTConfig{Secret: "s", TTL: time.Hour}),
		audit:  &nopAudit{},
	}
}

func (e *env) register(r validators.Resolver) *Register {
	uc := NewRegister(e.repo, e.issuer, e.audit, r)
	uc.cost = bcrypt.MinCost
	return uc
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	require.Equal(t, httperr.KindValidation, be.Kind)
	return be.Fields
}

// ==============================
// Register
// ==============================

func TestRegisterBarberCreatesProfileAndToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.register(nil).Execute(ctx, RegisterInput{
		Username: "bob",
		Email:    "Bob@Example.com",
		Password: "supersecret",
		UserType: "barber",
		ShopName: "Bob's",
		Services: []models.Service{{Name: "Haircut", Price: 25}},
		Location: &Location{Latitude: 40, Longitude: -75},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBarber, res.UserType)
	assert.Equal(t, "bob@example.com", res.User.Email)

	actor, _, err := e.issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, actor.UserID)

	profile, err := e.repo.GetBarberProfileByUser(ctx, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Bob's", profile.ShopName)
	assert.True(t, profile.HasLocation())
	assert.Equal(t, models.Availability{}, profile.Availability)
	assert.Equal(t, []string{"user_registered"}, e.audit.actions)
}

func TestRegisterCustomerHasNoProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.register(nil).Execute(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "supersecret", UserType: "customer",
		ShopName: "ignored",
	})
	require.NoError(t, err)

	profile, err := e.repo.GetBarberProfileByUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := e.register(nil)

	_, err := uc.Execute(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret", UserType: "customer"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterInput{Username: "alice", Email: "ALICE@example.com", Password: "short", UserType: "admin"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "user_type")

	_, err = uc.Execute(ctx, RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "supersecret", UserType: "barber",
		Services: []models.Service{{Name: "Cut", Price: 1}, {Name: "Cut", Price: 2}},
		Location: &Location{Latitude: 91},
	})
	fields = fieldErrors(t, err)
	assert.Contains(t, fields, "services")
	assert.Contains(t, fields, "location")

	_, err = uc.Execute(ctx, RegisterInput{Username: "bad name!", Email: "x@example.com", Password: "supersecret", UserType: "customer"})
	assert.Contains(t, fieldErrors(t, err), "username")
}

func TestRegisterChecksEmailDomain(t *testing.T) {
	e := newEnv(t)

	_, err := e.register(resolver{ok: false}).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@nowhere.invalid", Password: "supersecret", UserType: "customer",
	})
	assert.Contains(t, fieldErrors(t, err), "email")

	_, err = e.register(resolver{ok: true}).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@mail.test", Password: "supersecret", UserType: "customer",
	})
	assert.NoError(t, err)
}

// ==============================
// Login / Logout / Profile
// ==============================

func TestLoginByUsernameOrEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.register(nil).Execute(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret", UserType: "customer"})
	require.NoError(t, err)

	login := NewLogin(e.repo, e.issuer, e.audit)

	res, err := login.Execute(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, res.UserType)

	_, err = login.Execute(ctx, "ALICE@example.com", "supersecret")
	require.NoError(t, err)

	_, err = login.Execute(ctx, "alice", "wrong-password")
	assert.True(t, httperr.Is(err, httperr.KindUnauthenticated))

	_, err = login.Execute(ctx, "nobody", "supersecret")
	assert.True(t, httperr.Is(err, httperr.KindUnauthenticated))
}

func TestLogoutRevokesToken(t *testing.T) {
	revoked := tokens.NewMemoryRevocations()
	a := &nopAudit{}
	uc := NewLogout(revoked, a)
	ctx := context.Background()

	actor := &access.Actor{UserID: 1, Role: models.RoleCustomer, TokenID: "jti-1"}
	require.NoError(t, uc.Execute(ctx, actor, time.Now().Add(time.Hour)))

	isRevoked, err := revoked.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, isRevoked)
	assert.Equal(t, []string{"user_logged_out"}, a.actions)

	assert.True(t, httperr.Is(uc.Execute(ctx, nil, time.Now()), httperr.KindUnauthenticated))
}

func TestProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.register(nil).Execute(ctx, RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "supersecret", UserType: "barber", ShopName: "Bob's",
	})
	require.NoError(t, err)

	uc := NewProfile(e.repo)
	got, err := uc.Execute(ctx, &access.Actor{UserID: res.User.ID, Role: models.RoleBarber})
	require.NoError(t, err)
	assert.Equal(t, "bob", got.User.Username)
	require.NotNil(t, got.BarberProfile)
	assert.Equal(t, "Bob's", got.BarberProfile.ShopName)

	_, err = uc.Execute(ctx, &access.Actor{UserID: 999, Role: models.RoleCustomer})
	assert.True(t, httperr.Is(err, httperr.KindUnauthenticated))
}
