// Package access decides whether an actor may perform a request before any
// store mutation happens.
package access

import (
	"net/http"

	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	UserID  uint
	Role    models.Role
	TokenID string
}

func (a *Actor) Is(role models.Role) bool {
	return a != nil && a.Role == role
}

// Request is what a policy needs to know about an operation.
// OwnerID is nil when the operation does not target an owned resource.
type Request struct {
	Method  string
	Actor   *Actor
	OwnerID *uint
}

// Policy returns nil when the request may proceed.
type Policy interface {
	Check(req Request) error
}

type AllowAny struct{}

func (AllowAny) Check(Request) error { return nil }

type RequireAuthenticated struct{}

func (RequireAuthenticated) Check(req Request) error {
	if req.Actor == nil {
		return errUnauthenticated
	}
	return nil
}

// RequireAuthenticatedOwnerOrReadOnly lets anyone read and only the owner write.
type RequireAuthenticatedOwnerOrReadOnly struct{}

func (RequireAuthenticatedOwnerOrReadOnly) Check(req Request) error {
	if IsSafeMethod(req.Method) {
		return nil
	}
	if req.Actor == nil {
		return errUnauthenticated
	}
	if req.OwnerID == nil || *req.OwnerID != req.Actor.UserID {
		return httperr.NewUnauthorized("not_owner", "You do not own this resource.")
	}
	return nil
}

// RequireRole admits authenticated actors holding one of roles.
type RequireRole []models.Role

func (r RequireRole) Check(req Request) error {
	if req.Actor == nil {
		return errUnauthenticated
	}
	for _, role := range r {
		if req.Actor.Role == role {
			return nil
		}
	}
	return httperr.NewUnauthorized("forbidden_role", "Your account type cannot perform this action.")
}

// All requires every policy to pass, in order.
type All []Policy

func (all All) Check(req Request) error {
	for _, p := range all {
		if err := p.Check(req); err != nil {
			return err
		}
	}
	return nil
}

var errUnauthenticated = httperr.NewUnauthenticated("Authentication credentials were not provided.")

func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
