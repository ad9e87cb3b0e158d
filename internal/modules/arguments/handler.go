package arguments

import (
	"errors"
	"strings"

	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
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
	rg.POST("/arguments", h.draft)
}

func (h *Handler) draft(c *gin.Context) {
	var dto DraftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "los campos tesis_id y tipo_escrito son obligatorios")
		return
	}

	draft, err := h.svc.Draft(c.Request.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			response.BadRequest(c, userMessage(err))
		case errors.Is(err, apperr.ErrNotFound):
			response.NotFoundMsg(c, "tesis no encontrada")
		default:
			response.InternalError(c, "no fue posible generar los argumentos")
		}
		return
	}
	response.OK(c, draft)
}

func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
