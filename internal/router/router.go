package router

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/vinahome/backend/internal/handlers"
	"github.com/anonto42/vinahome/backend/internal/metrics"
	"github.com/anonto42/vinahome/backend/internal/middleware"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
	"github.com/anonto42/vinahome/backend/internal/repositories/memory"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/anonto42/vinahome/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Storage bundles the repositories behind the services.
type Storage struct {
	Repos         services.Repositories
	Notifications repositories.NotificationRepository
}

// PostgresStorage migrates the relational schema and returns Postgres-backed
// repositories with notifications in MongoDB.
func PostgresStorage(ctx context.Context, pgdb *gorm.DB, mongoDB *mongo.Database) (*Storage, error) {
	if err := repositories.Migrate(pgdb); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	notifications := repositories.NewMongoNotificationRepository(mongoDB)
	if err := notifications.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Println("MongoDB notification indexes ensured.")

	return &Storage{
		Repos: services.Repositories{
			Posts:     repositories.NewPostgresPostRepository(pgdb),
			Comments:  repositories.NewPostgresCommentRepository(pgdb),
			Likes:     repositories.NewPostgresLikeRepository(pgdb),
			Users:     repositories.NewPostgresUserRepository(pgdb),
			Locations: repositories.NewPostgresLocationRepository(pgdb),
		},
		Notifications: notifications,
	}, nil
}

// MemoryStorage keeps everything in process memory.
func MemoryStorage() *Storage {
	store := memory.New()
	return &Storage{
		Repos: services.Repositories{
			Posts:     store,
			Comments:  store,
			Likes:     store,
			Users:     store,
			Locations: store,
		},
		Notifications: store,
	}
}

// seedLocations flattens the configured reference data.
func seedLocations(seeds []config.CitySeed) ([]models.City, []models.Apartment) {
	var cities []models.City
	var apartments []models.Apartment
	for _, c := range seeds {
		cities = append(cities, models.City{ID: c.ID, Name: c.Name, NameKo: c.NameKo})
		for _, a := range c.Apartments {
			apartments = append(apartments, models.Apartment{
				ID:        a.ID,
				CityID:    c.ID,
				Name:      a.Name,
				Address:   a.Address,
				Latitude:  a.Latitude,
				Longitude: a.Longitude,
			})
		}
	}
	return cities, apartments
}

// SetupRoutes builds the services over storage and registers every route.
func SetupRoutes(ctx context.Context, e *echo.Echo, cfg *config.Config, storage *Storage, resolver middleware.PrincipalResolver, m *metrics.Metrics) error {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(storage.Notifications)
	locationService := services.NewLocationService(storage.Repos.Locations)
	communityService := services.NewCommunityService(storage.Repos,
		services.Settings{
			EditWindow:       cfg.Community.EditWindow,
			CommentMaxLength: cfg.Community.CommentMaxLength,
		},
		services.WithNotifier(notificationService),
		services.WithMetrics(m),
	)

	if len(cfg.Community.Cities) > 0 {
		cities, apartments := seedLocations(cfg.Community.Cities)
		if err := locationService.Seed(ctx, cities, apartments); err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
		log.Printf("Seeded %d cities and %d apartments.", len(cities), len(apartments))
	}

	// Every API request resolves its principal; mutating routes add RequireAuth.
	api := e.Group("/api")
	api.Use(middleware.Identify(resolver))

	board := api.Group("/community")
	handlers.NewPostHandler(communityService).RegisterPostRoutes(board)
	handlers.NewCommentHandler(communityService).RegisterCommentRoutes(board)
	handlers.NewLikeHandler(communityService).RegisterLikeRoutes(board)
	log.Println("Community routes configured.")

	handlers.NewLocationHandler(locationService).RegisterLocationRoutes(api)
	log.Println("Location routes configured.")

	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}
