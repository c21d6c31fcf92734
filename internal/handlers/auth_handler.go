package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-connect/internal/dto"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/httpresp"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
	authuc "github.com/BruksfildServices01/barber-connect/internal/usecase/auth"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

type AuthHandler struct {
	register *authuc.Register
	login    *authuc.Login
	logout   *authuc.Logout
	profile  *authuc.Profile
}

func NewAuthHandler(
	register *authuc.Register,
	login *authuc.Login,
	logout *authuc.Logout,
	profile *authuc.Profile,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		logout:   logout,
		profile:  profile,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	in := authuc.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		UserType:     req.UserType,
		ShopName:     req.ShopName,
		Address:      req.Address,
		Services:     req.Services,
		Availability: req.Availability,
	}
	if req.Location != nil {
		in.Location = &authuc.Location{
			Latitude:  *req.Location.Latitude,
			Longitude: *req.Location.Longitude,
		}
	}

	res, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	middleware.LoggerFrom(c).
		WithField("user_id", res.User.ID).
		WithField("user_type", res.UserType).
		Info("user registered")

	httpresp.Created(c, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	if req.Login() == "" {
		httperr.Respond(c, httperr.NewFieldError("username", "This field is required."))
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Login(), req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.logout.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		middleware.TokenExpiry(c),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	res, err := h.profile.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
