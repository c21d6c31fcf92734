package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-connect/internal/dto"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/httpresp"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
	reviewuc "github.com/BruksfildServices01/barber-connect/internal/usecase/review"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

type ReviewHandler struct {
	submit *reviewuc.SubmitReview
	list   *reviewuc.ListReviews
	manage *reviewuc.ManageReview
}

func NewReviewHandler(
	submit *reviewuc.SubmitReview,
	list *reviewuc.ListReviews,
	manage *reviewuc.ManageReview,
) *ReviewHandler {
	return &ReviewHandler{submit: submit, list: list, manage: manage}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	r, err := h.submit.Execute(c.Request.Context(), middleware.ActorFrom(c), reviewuc.SubmitInput{
		BarberID: req.Barber,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, r)
}

// List handles GET /reviews with an optional ?barber= filter.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.list.Execute(c.Request.Context(), c.Query("barber"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Array(c, reviews)
}

// BarberReviews handles GET /reviews/barber_reviews?barber=, which requires the filter.
func (h *ReviewHandler) BarberReviews(c *gin.Context) {
	reviews, err := h.list.ForBarber(c.Request.Context(), c.Query("barber"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Array(c, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	r, err := h.manage.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	r, err := h.manage.Update(c.Request.Context(), middleware.ActorFrom(c), id, reviewuc.UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.manage.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
