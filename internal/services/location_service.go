package services

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
)

const (
	DefaultNearbyRadiusKm = 3.0
	MaxNearbyRadiusKm     = 50.0
	nearbyLimit           = 50
)

// LocationService serves city and apartment reference data.
type LocationService struct {
	repo repositories.LocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(repo repositories.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.repo.ListCities(ctx)
}

// ListApartments returns the apartments of an existing city.
func (s *LocationService) ListApartments(ctx context.Context, cityID string) ([]models.Apartment, error) {
	if _, err := s.repo.GetCity(ctx, cityID); err != nil {
		return nil, err
	}
	return s.repo.ListApartmentsByCity(ctx, cityID)
}

// Nearby finds apartments within radiusKm of (lat, lng), nearest first.
// The radius must be positive and at most MaxNearbyRadiusKm.
func (s *LocationService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyApartment, error) {
	// Ranges are written so NaN falls outside them.
	var fields []apperrors.FieldError
	if !(lat >= -90 && lat <= 90) {
		fields = append(fields, apperrors.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if !(lng >= -180 && lng <= 180) {
		fields = append(fields, apperrors.FieldError{Field: "lng", Message: "must be between -180 and 180"})
	}
	if !(radiusKm > 0 && radiusKm <= MaxNearbyRadiusKm) {
		fields = append(fields, apperrors.FieldError{Field: "radiusKm", Message: "must be greater than 0 and at most 50"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Invalid("invalid search parameters", fields...)
	}

	return s.repo.FindNearbyApartments(ctx, lat, lng, radiusKm, nearbyLimit)
}

// Seed upserts reference data, cities before their apartments.
func (s *LocationService) Seed(ctx context.Context, cities []models.City, apartments []models.Apartment) error {
	for i := range cities {
		if err := s.repo.SaveCity(ctx, &cities[i]); err != nil {
			return err
		}
	}
	for i := range apartments {
		if err := s.repo.SaveApartment(ctx, &apartments[i]); err != nil {
			return err
		}
	}
	return nil
}
