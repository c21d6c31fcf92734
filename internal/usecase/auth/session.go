package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	tokens "github.com/BruksfildServices01/barber-connect/internal/auth"
	"github.com/BruksfildServices01/barber-connect/internal/domain/identity"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

var errInvalidCredentials = httperr.BusinessError{
	Kind:    httperr.KindUnauthenticated,
	Code:    "invalid_credentials",
	Message: "No active account found with the given credentials.",
}

// dummyHash is checked when no user matches so both failures cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("barber-connect"), bcrypt.MinCost)

// ===============================
// Login
// ===============================

type Login struct {
	repo   identity.Repository
	tokens TokenIssuer
	audit  audit.Recorder
}

func NewLogin(repo identity.Repository, tokens TokenIssuer, audit audit.Recorder) *Login {
	return &Login{repo: repo, tokens: tokens, audit: audit}
}

// Execute authenticates by username or e-mail.
func (uc *Login) Execute(ctx context.Context, login, password string) (*TokenResult, error) {
	user, err := uc.repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return &TokenResult{Token: token, UserType: user.Role, User: user}, nil
}

// ===============================
// Logout
// ===============================

type Logout struct {
	revocations tokens.RevocationStore
	audit       audit.Recorder
}

func NewLogout(revocations tokens.RevocationStore, audit audit.Recorder) *Logout {
	return &Logout{revocations: revocations, audit: audit}
}

// Execute revokes the token the actor authenticated with until it expires.
func (uc *Logout) Execute(ctx context.Context, actor *access.Actor, expires time.Time) error {
	if actor == nil {
		return httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	if err := uc.revocations.Revoke(ctx, actor.TokenID, expires); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_logged_out",
		Entity:   "user",
		EntityID: &actor.UserID,
	})
	return nil
}

// ===============================
// Profile
// ===============================

type ProfileResult struct {
	User          *models.User          `json:"user"`
	BarberProfile *models.BarberProfile `json:"barber_profile,omitempty"`
}

type Profile struct {
	repo identity.Repository
}

func NewProfile(repo identity.Repository) *Profile {
	return &Profile{repo: repo}
}

func (uc *Profile) Execute(ctx context.Context, actor *access.Actor) (*ProfileResult, error) {
	if actor == nil {
		return nil, httperr.NewUnauthenticated("Authentication credentials were not provided.")
	}

	user, err := uc.repo.GetUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperr.NewUnauthenticated("User no longer exists.")
	}

	res := &ProfileResult{User: user}

	switch user.Role {
	case models.RoleBarber:
		profile, err := uc.repo.GetBarberProfileByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			profile.User = *user
		}
		res.BarberProfile = profile
	case models.RoleCustomer:
	}

	return res, nil
}
