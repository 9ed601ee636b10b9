package repositories

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocationRepository reads city and apartment reference data.
type LocationRepository interface {
	ListCities(ctx context.Context) ([]models.City, error)
	GetCity(ctx context.Context, id string) (*models.City, error)
	ListApartmentsByCity(ctx context.Context, cityID string) ([]models.Apartment, error)
	GetApartment(ctx context.Context, id string) (*models.Apartment, error)
	FindNearbyApartments(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.NearbyApartment, error)
	SaveCity(ctx context.Context, city *models.City) error
	SaveApartment(ctx context.Context, apartment *models.Apartment) error
}

type PostgresLocationRepository struct {
	db *gorm.DB
}

func NewPostgresLocationRepository(db *gorm.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{db: db}
}

func (r *PostgresLocationRepository) ListCities(ctx context.Context) ([]models.City, error) {
	cities := []models.City{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, wrap("list cities", err, "")
	}
	return cities, nil
}

func (r *PostgresLocationRepository) GetCity(ctx context.Context, id string) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, wrap("get city", err, "city not found")
	}
	return &city, nil
}

func (r *PostgresLocationRepository) ListApartmentsByCity(ctx context.Context, cityID string) ([]models.Apartment, error) {
	apartments := []models.Apartment{}
	err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("name ASC").
		Find(&apartments).Error
	if err != nil {
		return nil, wrap("list apartments", err, "")
	}
	return apartments, nil
}

func (r *PostgresLocationRepository) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := r.db.WithContext(ctx).First(&apartment, "id = ?", id).Error; err != nil {
		return nil, wrap("get apartment", err, "apartment not found")
	}
	return &apartment, nil
}

// haversine distance in km between (@lat, @lng) and each apartment.
const nearbyApartments = `SELECT * FROM (
	SELECT a.id, a.city_id, a.name, a.address, a.latitude, a.longitude,
		6371 * 2 * ASIN(LEAST(1, SQRT(
			POWER(SIN(RADIANS(a.latitude - @lat) / 2), 2) +
			COS(RADIANS(@lat)) * COS(RADIANS(a.latitude)) *
			POWER(SIN(RADIANS(a.longitude - @lng) / 2), 2)
		))) AS distance_km
	FROM apartments a
) d
WHERE d.distance_km <= @radius
ORDER BY d.distance_km ASC, d.id ASC
LIMIT @limit`

// FindNearbyApartments returns apartments within radiusKm of (lat, lng), nearest first.
func (r *PostgresLocationRepository) FindNearbyApartments(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.NearbyApartment, error) {
	found := []models.NearbyApartment{}
	err := r.db.WithContext(ctx).Raw(nearbyApartments, map[string]interface{}{
		"lat":    lat,
		"lng":    lng,
		"radius": radiusKm,
		"limit":  limit,
	}).Scan(&found).Error
	if err != nil {
		return nil, wrap("nearby apartments", err, "")
	}
	return found, nil
}

// SaveCity inserts or refreshes a city.
func (r *PostgresLocationRepository) SaveCity(ctx context.Context, city *models.City) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(city).Error
	return wrap("save city", err, "")
}

// SaveApartment inserts or refreshes an apartment.
func (r *PostgresLocationRepository) SaveApartment(ctx context.Context, apartment *models.Apartment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Omit(clause.Associations).
		Create(apartment).Error
	return wrap("save apartment", err, "")
}
