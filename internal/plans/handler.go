package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitsynth-backend/internal/shared/server/middleware"
	"fitsynth-backend/internal/shared/server/respond"
	"fitsynth-backend/internal/shared/storage/object"
	"fitsynth-backend/internal/shared/util"
)

const maxBodySize = 64 << 10 // 64KB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches plan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/plans", h.generate)
	rg.POST("/plans/preview", h.preview)
	rg.GET("/plans", h.list)
	rg.GET("/plans/latest", h.latest)
	rg.GET("/plans/:id", h.get)
	rg.POST("/plans/:id/export", h.export)
	rg.GET("/plans/:id/export/download", h.download)
	rg.GET("/exercises", h.exercises)
}

func (h *Handler) bind(c *gin.Context) (GenerateRequest, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return GenerateRequest{}, false
	}
	return req, true
}

func (h *Handler) generate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(c)

	p, err := h.Svc.Generate(c.Request.Context(), userID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.PlanIDKey, p.ID)
	respond.Created(c, toResponse(p))
}

func (h *Handler) preview(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	in, result, err := h.Svc.Preview(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"input": in, "result": result})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	plans, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toSummary(p))
	}
	respond.OK(c, gin.H{"plans": resp, "limit": limit, "offset": offset})
}

func (h *Handler) latest(c *gin.Context) {
	p, err := h.Svc.Latest(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.PlanIDKey, p.ID)
	respond.OK(c, toResponse(p))
}

func (h *Handler) get(c *gin.Context) {
	planID := c.Param("id")
	c.Set(middleware.PlanIDKey, planID)

	p, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), planID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toResponse(p))
}

func (h *Handler) export(c *gin.Context) {
	planID := c.Param("id")
	c.Set(middleware.PlanIDKey, planID)

	res, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), planID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, ExportResponse{
		PlanID:      planID,
		SizeBytes:   res.SizeBytes,
		DownloadURL: "/api/v1/plans/" + planID + "/export/download",
	})
}

func (h *Handler) download(c *gin.Context) {
	planID := c.Param("id")
	c.Set(middleware.PlanIDKey, planID)

	rc, p, err := h.Svc.OpenExport(c.Request.Context(), middleware.UserIDFromContext(c), planID)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()

	name, err := util.SafeFileName("fitsynth-plan-" + p.ID + ".xlsx")
	if err != nil {
		name = "fitsynth-plan.xlsx"
	}
	c.DataFromReader(http.StatusOK, -1, object.ContentTypeXLSX, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}

func (h *Handler) exercises(c *gin.Context) {
	respond.OK(c, gin.H{"exercises": h.Svc.Catalog()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Validation(c, ve.Message, ve.Fields)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "plan not found")
	case errors.Is(err, ErrExportUnavailable):
		respond.Error(c, http.StatusNotFound, "export_unavailable", "Plan has not been exported", nil)
	default:
		respond.Internal(c, err)
	}
}
