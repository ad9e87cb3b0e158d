package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/astucieuxx/atenea-core/internal/config"
	"github.com/astucieuxx/atenea-core/internal/database"
	"github.com/astucieuxx/atenea-core/internal/middleware"
	"github.com/astucieuxx/atenea-core/internal/modules/analysis"
	"github.com/astucieuxx/atenea-core/internal/modules/arguments"
	"github.com/astucieuxx/atenea-core/internal/modules/ask"
	"github.com/astucieuxx/atenea-core/internal/modules/rag"
	"github.com/astucieuxx/atenea-core/internal/modules/ranker"
	"github.com/astucieuxx/atenea-core/internal/modules/retrieval"
	"github.com/astucieuxx/atenea-core/internal/modules/scoring"
	"github.com/astucieuxx/atenea-core/internal/modules/system"
	"github.com/astucieuxx/atenea-core/internal/modules/tesis"
	jwtpkg "github.com/astucieuxx/atenea-core/internal/pkg/jwt"
	pkgredis "github.com/astucieuxx/atenea-core/internal/pkg/redis"
	"github.com/astucieuxx/atenea-core/internal/pkg/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
}

// New initializes the application: config → DB → Redis → index → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Warn("redis_url is empty: rate limiting, idempotence and telemetry disabled")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	deps, err := buildDomain(cfg, db, rc, logger)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, router: router, db: db, logger: logger}
	app.registerRoutes(rc, deps)
	return app, nil
}

// domain bundles the wired services the routes need.
type domain struct {
	tesisRepo   *tesis.Repository
	corpus      *tesis.Corpus
	index       retrieval.VectorIndex
	analysisSvc *analysis.Service
	askSvc      *ask.Service
	argSvc      *arguments.Service
	systemH     *system.Handler
}

func buildDomain(cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client, logger *zap.Logger) (*domain, error) {
	tesisRepo := tesis.NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	corpus := tesis.NewCorpus()
	if err := corpus.Load(ctx, tesisRepo); err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	index := retrieval.NewMemoryIndex()
	chunks, err := tesisRepo.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	if err := index.Rebuild(cfg.Embedding.Dimension, chunks); err != nil {
		return nil, fmt.Errorf("build vector index: %w", err)
	}
	logger.Info("corpus loaded",
		zap.Int("tesis", corpus.Size()),
		zap.Int("chunks", index.Size()),
	)

	embedder, err := retrieval.NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	retriever := retrieval.NewRetriever(
		embedder, index, tesisRepo,
		cfg.Ranking.RetrieveTopN, cfg.Ranking.SimilarityFloor,
		retrieval.WithLogger(logger),
	)

	provider, err := rag.SelectProvider(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("generation provider: %w", err)
	}
	synth := rag.NewSynthesizer(provider, rag.WithLogger(logger))

	recorder := telemetry.NewRecorder(rc, logger)

	analysisSvc := analysis.NewService(
		corpus,
		scoring.NewEngine(),
		ranker.New(cfg.Ranking),
		synth,
		analysis.NewRepository(db),
		recorder,
		cfg.Ranking.RoleNudge,
		logger,
	)
	askSvc := ask.NewService(retriever, synth, recorder, logger)
	argSvc := arguments.NewService(tesisRepo)
	systemH := system.NewHandler(tesisRepo, corpus, index, rc, cfg.AdminKey, cfg.Embedding.Dimension, logger)

	return &domain{
		tesisRepo:   tesisRepo,
		corpus:      corpus,
		index:       index,
		analysisSvc: analysisSvc,
		askSvc:      askSvc,
		argSvc:      argSvc,
		systemH:     systemH,
	}, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	switch {
	case cfg.IsDev():
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	case len(cfg.AllowedOrigins) > 0:
		patterns := cfg.AllowedOrigins
		corsCfg.AllowOriginFunc = func(origin string) bool {
			return originAllowed(patterns, origin)
		}
	default:
		// credentials are allowed, so an unset allowlist must not turn
		// into allow-all in production
		corsCfg.AllowOriginFunc = func(origin string) bool { return false }
	}
	return corsCfg
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
