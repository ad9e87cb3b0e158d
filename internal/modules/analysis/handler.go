package analysis

import (
	"errors"
	"strings"

	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/astucieuxx/atenea-core/internal/pkg/pagination"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/analyze")
	grp.POST("", h.analyze)
	grp.GET("", h.list)
	grp.GET("/:id", h.getByID)
}

func (h *Handler) analyze(c *gin.Context) {
	var dto AnalyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "el campo descripcion es obligatorio")
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), dto.Descripcion, dto.RolProcesal)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			response.BadRequest(c, userMessage(err))
			return
		}
		response.InternalError(c, "no fue posible completar el análisis")
		return
	}
	response.Created(c, result)
}

func (h *Handler) getByID(c *gin.Context) {
	result, err := h.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFoundMsg(c, "análisis no encontrado")
			return
		}
		response.InternalError(c, "error al consultar el análisis")
		return
	}
	response.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	records, pg, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, "error al listar análisis")
		return
	}
	response.Paged(c, records, pg)
}

// userMessage strips the sentinel prefix so clients see only the
// human-readable part.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
