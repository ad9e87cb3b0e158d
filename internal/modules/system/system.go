// Package system holds the health probe and the authenticated
// maintenance endpoints.
package system

import (
	"crypto/subtle"
	"time"

	"github.com/astucieuxx/atenea-core/internal/middleware"
	"github.com/astucieuxx/atenea-core/internal/modules/retrieval"
	"github.com/astucieuxx/atenea-core/internal/modules/tesis"
	"github.com/astucieuxx/atenea-core/internal/pkg/jwt"
	pkgredis "github.com/astucieuxx/atenea-core/internal/pkg/redis"
	"github.com/astucieuxx/atenea-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminTokenTTL = 24 * time.Hour

type Handler struct {
	repo     *tesis.Repository
	corpus   *tesis.Corpus
	index    retrieval.VectorIndex
	rc       *pkgredis.Client
	adminKey string
	dim      int
	started  time.Time
	logger   *zap.Logger
}

func NewHandler(
	repo *tesis.Repository,
	corpus *tesis.Corpus,
	index retrieval.VectorIndex,
	rc *pkgredis.Client,
	adminKey string,
	embeddingDim int,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:     repo,
		corpus:   corpus,
		index:    index,
		rc:       rc,
		adminKey: adminKey,
		dim:      embeddingDim,
		started:  time.Now(),
		logger:   logger.Named("System"),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)

	admin := rg.Group("/admin")
	admin.POST("/token", h.issueToken)
	admin.POST("/reindex", middleware.AdminAuth(), h.reindex)
}

func (h *Handler) health(c *gin.Context) {
	redisUp := false
	if h.rc != nil && h.rc.Ping(c.Request.Context()) == nil {
		redisUp = true
	}
	response.OK(c, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"corpus_size":    h.corpus.Size(),
		"index_size":     h.index.Size(),
		"redis":          redisUp,
	})
}

type tokenDTO struct {
	AdminKey string `json:"admin_key" binding:"required"`
	Subject  string `json:"subject"`
}

func (h *Handler) issueToken(c *gin.Context) {
	var dto tokenDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "el campo admin_key es obligatorio")
		return
	}
	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(dto.AdminKey), []byte(h.adminKey)) != 1 {
		response.Unauthorized(c)
		return
	}

	subject := dto.Subject
	if subject == "" {
		subject = "admin"
	}
	token, err := jwt.Sign(subject, adminTokenTTL)
	if err != nil {
		response.InternalError(c, "no fue posible emitir el token")
		return
	}
	response.OK(c, gin.H{"token": token, "expires_in": int64(adminTokenTTL.Seconds())})
}

// reindex reloads the corpus snapshot and rebuilds the vector index
// from the stored chunk embeddings. Queries in flight keep using the
// previous snapshot until the swap.
func (h *Handler) reindex(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.corpus.Load(ctx, h.repo); err != nil {
		h.logger.Error("corpus reload failed", zap.Error(err))
		response.InternalError(c, "no fue posible recargar el corpus")
		return
	}

	chunks, err := h.repo.Chunks(ctx)
	if err != nil {
		h.logger.Error("chunk load failed", zap.Error(err))
		response.InternalError(c, "no fue posible cargar los fragmentos")
		return
	}
	if err := h.index.Rebuild(h.dim, chunks); err != nil {
		h.logger.Error("index rebuild failed", zap.Error(err))
		response.InternalError(c, "no fue posible reconstruir el índice")
		return
	}

	h.logger.Info("reindex complete",
		zap.Int("corpus_size", h.corpus.Size()),
		zap.Int("index_size", h.index.Size()),
	)
	response.OK(c, gin.H{
		"corpus_size": h.corpus.Size(),
		"index_size":  h.index.Size(),
	})
}
