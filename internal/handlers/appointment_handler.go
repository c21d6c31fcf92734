package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/dto"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/httpresp"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
	appointmentuc "github.com/BruksfildServices01/barber-connect/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *appointmentuc.CreateAppointment
	list   *appointmentuc.ListAppointments
	get    *appointmentuc.GetAppointment
	action *appointmentuc.ApplyAction
}

func NewAppointmentHandler(
	create *appointmentuc.CreateAppointment,
	list *appointmentuc.ListAppointments,
	get *appointmentuc.GetAppointment,
	action *appointmentuc.ApplyAction,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
		get:    get,
		action: action,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), appointmentuc.CreateInput{
		BarberID:   req.Barber,
		CustomerID: req.Customer,
		Service:    req.Service,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	h.listScoped(c, appointmentuc.ScopeOwn)
}

func (h *AppointmentHandler) ListForCustomer(c *gin.Context) {
	h.listScoped(c, appointmentuc.ScopeCustomer)
}

func (h *AppointmentHandler) ListForBarber(c *gin.Context) {
	h.listScoped(c, appointmentuc.ScopeBarber)
}

func (h *AppointmentHandler) listScoped(c *gin.Context, scope appointmentuc.Scope) {
	apps, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), scope)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Array(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

// Action handles PATCH /appointments/:id with body {"action": "accept"|"reject"}.
func (h *AppointmentHandler) Action(c *gin.Context) {
	var req dto.AppointmentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	h.apply(c, req.Action)
}

func (h *AppointmentHandler) Accept(c *gin.Context) {
	h.apply(c, string(domain.ActionAccept))
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.apply(c, string(domain.ActionReject))
}

func (h *AppointmentHandler) apply(c *gin.Context, action string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.action.Execute(c.Request.Context(), middleware.ActorFrom(c), id, action)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	middleware.LoggerFrom(c).
		WithField("appointment_id", ap.ID).
		WithField("status", ap.Status).
		Info("appointment status changed")

	httpresp.OK(c, dto.AppointmentStatusDTO{ID: ap.ID, Status: ap.Status})
}
