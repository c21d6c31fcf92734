package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-connect/internal/audit"
	"github.com/BruksfildServices01/barber-connect/internal/dto"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/httpresp"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the caller's own audit trail.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		httperr.Respond(c, httperr.NewUnauthenticated("Authentication credentials were not provided."))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range (inclusive days)
	// --------------------------------------------------

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.logs.ListForUser(c.Request.Context(), actor.UserID, q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AuditLogPageDTO{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}
