package schema

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"sheltercms/internal/schema/adapter/cache"
	httpadapter "sheltercms/internal/schema/adapter/http"
	mongodbpersistence "sheltercms/internal/schema/adapter/persistence/mongodb"
	"sheltercms/internal/schema/config"
	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
	"sheltercms/internal/shared/eventbus"
	"sheltercms/internal/shared/logger"
)

// Module wires the schema engine: catalog, records and forms over MongoDB,
// with an optional Redis section cache.
type Module struct {
	Config         *config.Config
	Families       *model.FamilyRegistry
	CatalogRepo    *mongodbpersistence.CatalogRepository
	RecordRepo     *mongodbpersistence.RecordRepository
	CatalogUsecase usecase.CatalogUsecase
	RecordUsecase  usecase.RecordUsecase
	FormUsecase    usecase.FormUsecase
	EventBus       *eventbus.EventBus
	RedisClient    *redis.Client
	Logger         logger.Logger
}

// NewModule creates and initializes the schema module. redisClient may be
// nil, which disables the section cache.
func NewModule(cfg *config.Config, db *mongo.Database, redisClient *redis.Client, log logger.Logger) (*Module, error) {
	log.Info("Initializing schema module...")

	if cfg == nil {
		cfg = config.DefaultConfig()
		log.Info("No configuration provided, using defaults.")
	}

	families := cfg.FamilyRegistry()
	bus := eventbus.NewEventBus(log)

	catalogRepo := mongodbpersistence.NewCatalogRepository(db, log)
	recordRepo := mongodbpersistence.NewRecordRepository(db, log)

	var sectionCache usecase.SectionCache
	if redisClient != nil {
		sectionCache = cache.NewRedisSectionCache(redisClient, cfg.SectionCacheTTL, log)
		log.Info("Redis section cache enabled", "ttl", cfg.SectionCacheTTL)
	}

	catalogUC := usecase.NewCatalogUsecase(catalogRepo, families, sectionCache, bus, log)
	recordUC := usecase.NewRecordUsecase(recordRepo, catalogRepo, families, log)
	formUC := usecase.NewFormUsecase(catalogRepo, recordUC, log)

	log.Info("Schema module initialized", "families", families.Families())
	return &Module{
		Config:         cfg,
		Families:       families,
		CatalogRepo:    catalogRepo,
		RecordRepo:     recordRepo,
		CatalogUsecase: catalogUC,
		RecordUsecase:  recordUC,
		FormUsecase:    formUC,
		EventBus:       bus,
		RedisClient:    redisClient,
		Logger:         log,
	}, nil
}

// EnsureIndexes creates the MongoDB indexes the module's queries rely on.
func (m *Module) EnsureIndexes(ctx context.Context) error {
	return m.CatalogRepo.EnsureIndexes(ctx)
}

// RegisterRoutes registers the schema HTTP routes on the given router.
func (m *Module) RegisterRoutes(router fiber.Router) {
	handler := httpadapter.NewHTTPHandler(m.CatalogUsecase, m.RecordUsecase, m.FormUsecase, m.Logger)

	if m.Config.JWTSecretKey != "" {
		router.Use(httpadapter.JWTAuthMiddleware(m.Config.JWTSecretKey, m.Logger))
	}
	handler.RegisterRoutes(router)

	m.Logger.Info("Schema HTTP routes registered")
}

// Stop gracefully shuts down the schema module.
func (m *Module) Stop() error {
	m.Logger.Info("Stopping schema module...")
	if m.EventBus != nil {
		m.EventBus.Close()
	}
	return nil
}
