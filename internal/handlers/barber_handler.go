package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-connect/internal/dto"
	"github.com/BruksfildServices01/barber-connect/internal/geo"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/httpresp"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
	barberuc "github.com/BruksfildServices01/barber-connect/internal/usecase/barber"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

// MaxPhotoBytes bounds a photo upload body.
const MaxPhotoBytes = 8 << 20

type BarberHandler struct {
	discover *barberuc.DiscoverBarbers
	get      *barberuc.GetBarber
	update   *barberuc.UpdateBarber
	photo    *barberuc.UploadPhoto
	stats    *barberuc.GetStats
}

func NewBarberHandler(
	discover *barberuc.DiscoverBarbers,
	get *barberuc.GetBarber,
	update *barberuc.UpdateBarber,
	photo *barberuc.UploadPhoto,
	stats *barberuc.GetStats,
) *BarberHandler {
	return &BarberHandler{
		discover: discover,
		get:      get,
		update:   update,
		photo:    photo,
		stats:    stats,
	}
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	profiles, err := h.discover.Execute(
		c.Request.Context(),
		c.Query("lat"),
		c.Query("lng"),
		c.Query("search"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Array(c, profiles)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	in := barberuc.UpdateInput{
		ShopName:     req.ShopName,
		Address:      req.Address,
		Services:     req.Services,
		Availability: req.Availability,
	}
	if req.Location != nil {
		in.Location = &geo.Point{Lat: *req.Location.Latitude, Lng: *req.Location.Longitude}
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoBytes)
	file, err := c.FormFile("photo")
	if err != nil {
		httperr.Respond(c, httperr.NewFieldError("photo", "Upload an image file under 8 MB."))
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	p, err := h.photo.Execute(c.Request.Context(), middleware.ActorFrom(c), id, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// STATS
// ======================================================

func (h *BarberHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, stats)
}
