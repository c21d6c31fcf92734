package auth

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-connect/internal/audit"
	"github.com/BruksfildServices01/barber-connect/internal/db"
	"github.com/BruksfildServices01/barber-connect/internal/domain/barber"
	"github.com/BruksfildServices01/barber-connect/internal/domain/identity"
	"github.com/BruksfildServices01/barber-connect/internal/geo"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/metrics"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type Location struct {
	Latitude  float64
	Longitude float64
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	UserType string

	// barber only
	ShopName     string
	Address      string
	Services     []models.Service
	Availability models.Availability
	Location     *Location
}

type TokenResult struct {
	Token    string       `json:"token"`
	UserType models.Role  `json:"user_type"`
	User     *models.User `json:"-"`
}

const MinPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type Register struct {
	repo     identity.Repository
	tokens   TokenIssuer
	audit    audit.Recorder
	resolver validators.Resolver
	cost     int
}

// NewRegister builds the registration use case. A nil resolver skips the
// e-mail domain lookup.
func NewRegister(
	repo identity.Repository,
	tokens TokenIssuer,
	audit audit.Recorder,
	resolver validators.Resolver,
) *Register {
	return &Register{
		repo:     repo,
		tokens:   tokens,
		audit:    audit,
		resolver: resolver,
		cost:     bcrypt.DefaultCost,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*TokenResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	fields := map[string][]string{}
	add := func(field, msg string) {
		fields[field] = append(fields[field], msg)
	}

	role, err := models.ParseRole(in.UserType)
	if err != nil {
		add("user_type", `"`+in.UserType+`" is not a valid choice.`)
	}

	if !usernamePattern.MatchString(in.Username) {
		add("username", "Enter a valid username. Letters, digits and @/./+/-/_ only.")
	} else if taken, err := uc.repo.UsernameTaken(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		add("username", "A user with that username already exists.")
	}

	if taken, err := uc.repo.EmailTaken(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		add("email", "A user with that email already exists.")
	} else if uc.resolver != nil && !validators.IsEmailDomainValid(ctx, uc.resolver, in.Email) {
		add("email", "Email domain does not accept mail.")
	}

	if len(in.Password) < MinPasswordLength {
		add("password", "Ensure this field has at least 8 characters.")
	}

	var profile *models.BarberProfile
	if role == models.RoleBarber {
		profile = &models.BarberProfile{
			ShopName:     strings.TrimSpace(in.ShopName),
			Address:      strings.TrimSpace(in.Address),
			Services:     in.Services,
			Availability: in.Availability,
		}
		if profile.Services == nil {
			profile.Services = []models.Service{}
		}
		if profile.Availability == nil {
			profile.Availability = models.Availability{}
		}
		if msg := barber.ValidateServices(profile.Services); msg != "" {
			add("services", msg)
		}
		if in.Location != nil {
			p := geo.Point{Lat: in.Location.Latitude, Lng: in.Location.Longitude}
			if !p.Valid() {
				add("location", "Latitude must be within ±90 and longitude within ±180.")
			} else {
				profile.Latitude = &p.Lat
				profile.Longitude = &p.Lng
			}
		}
	}

	if len(fields) > 0 {
		return nil, httperr.NewValidation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, httperr.NewFieldError("password", "Password cannot be used.")
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := uc.repo.CreateAccount(ctx, user, profile); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httperr.NewFieldError(validators.NonFieldErrors, "A user with that username or email already exists.")
		}
		return nil, err
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.IncRegistration(string(role))
	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"user_type": role},
	})

	return &TokenResult{Token: token, UserType: role, User: user}, nil
}
