package tesis

import (
	"errors"
	"strings"

	"github.com/astucieuxx/atenea-core/internal/models"
	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/astucieuxx/atenea-core/internal/pkg/pagination"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	repo *Repository
	db   *gorm.DB
}

func NewHandler(repo *Repository, db *gorm.DB) *Handler {
	return &Handler{repo: repo, db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/tesis")
	grp.GET("", h.list)
	grp.GET("/search", h.search)
	grp.GET("/:id", h.getByID)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	query := h.db.Model(&models.TesisModel{}).Order("publication_year DESC, id")
	if t := c.Query("type"); t != "" {
		if !models.TesisType(t).Valid() {
			response.BadRequest(c, "tipo de tesis desconocido: "+t)
			return
		}
		query = query.Where("type = ?", t)
	}
	if materia := strings.TrimSpace(c.Query("materia")); materia != "" {
		query = query.Where("subjects LIKE ?", "%"+materia+"%")
	}

	var docs []models.TesisModel
	pg, err := pagination.Paginate(query, q, &docs)
	if err != nil {
		response.InternalError(c, "error al consultar tesis")
		return
	}
	response.Paged(c, docs, pg)
}

func (h *Handler) search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if len(term) < 3 {
		response.BadRequest(c, "el parámetro q requiere al menos 3 caracteres")
		return
	}
	docs, err := h.repo.Search(c.Request.Context(), term, 20)
	if err != nil {
		response.InternalError(c, "error al buscar tesis")
		return
	}
	response.OK(c, docs)
}

func (h *Handler) getByID(c *gin.Context) {
	doc, err := h.repo.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFoundMsg(c, "tesis no encontrada")
			return
		}
		response.InternalError(c, "error al consultar la tesis")
		return
	}
	response.OK(c, doc)
}
