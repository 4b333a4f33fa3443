package waste

import (
	"fmt"

	authhttp "wastetrack/internal/auth/adapter/http"
	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	wastehttp "wastetrack/internal/waste/adapter/http"
	"wastetrack/internal/waste/adapter/persistence"
	"wastetrack/internal/waste/adapter/persistence/mongodb"
	"wastetrack/internal/waste/config"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// WasteModule bundles the configuration versioning service, the fleet and
// community services and their HTTP handlers.
type WasteModule struct {
	Config *config.WasteConfig
	Logger logger.Logger

	ConfigUsecase    usecase.CityConfigUsecaseInterface
	FleetUsecase     usecase.FleetUsecaseInterface
	BillingUsecase   usecase.BillingUsecaseInterface
	CommunityUsecase usecase.CommunityUsecaseInterface

	configHandler    *wastehttp.ConfigHTTPHandler
	fleetHandler     *wastehttp.FleetHTTPHandler
	billingHandler   *wastehttp.BillingHTTPHandler
	communityHandler *wastehttp.CommunityHTTPHandler
}

// NewWasteModule creates and wires the waste module. redisClient may be nil,
// which disables the active-configuration cache.
func NewWasteModule(
	cfg *config.WasteConfig,
	mongoClient *mongo.Client,
	db *mongo.Database,
	redisClient *redis.Client,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) (*WasteModule, error) {
	configRepo, err := mongodb.NewMongoCityConfigRepository(mongoClient, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create config repository: %w", err)
	}
	binRepo, err := mongodb.NewMongoBinRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create bin repository: %w", err)
	}
	truckRepo, err := mongodb.NewMongoTruckRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create truck repository: %w", err)
	}
	routeRepo, err := mongodb.NewMongoRouteRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create route repository: %w", err)
	}
	recordRepo, err := mongodb.NewMongoCollectionRecordRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create record repository: %w", err)
	}
	billingRepo, err := mongodb.NewMongoBillingRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create billing repository: %w", err)
	}
	requestRepo, err := mongodb.NewMongoWasteRequestRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create request repository: %w", err)
	}
	inquiryRepo, err := mongodb.NewMongoInquiryRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry repository: %w", err)
	}
	announcementRepo, err := mongodb.NewMongoAnnouncementRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement repository: %w", err)
	}

	cache := persistence.NewConfigCache(redisClient, cfg.Redis.CacheTTL, log)

	configUC := usecase.NewCityConfigUsecase(configRepo, cache, bus, log)
	fleetUC := usecase.NewFleetUsecase(binRepo, truckRepo, routeRepo, recordRepo, bus, log)
	billingUC := usecase.NewBillingUsecase(billingRepo, configUC, cfg.BillingDueDay, bus, log)
	communityUC := usecase.NewCommunityUsecase(requestRepo, inquiryRepo, announcementRepo, log)

	return &WasteModule{
		Config:           cfg,
		Logger:           log,
		ConfigUsecase:    configUC,
		FleetUsecase:     fleetUC,
		BillingUsecase:   billingUC,
		CommunityUsecase: communityUC,
		configHandler:    wastehttp.NewConfigHTTPHandler(configUC),
		fleetHandler:     wastehttp.NewFleetHTTPHandler(fleetUC),
		billingHandler:   wastehttp.NewBillingHTTPHandler(billingUC),
		communityHandler: wastehttp.NewCommunityHTTPHandler(communityUC),
	}, nil
}

// RegisterRoutes registers the waste module's HTTP routes
func (m *WasteModule) RegisterRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	m.configHandler.SetupRoutes(router, middleware)
	m.fleetHandler.SetupRoutes(router, middleware)
	m.billingHandler.SetupRoutes(router, middleware)
	m.communityHandler.SetupRoutes(router, middleware)
	m.Logger.Info("Waste module routes registered")
}
