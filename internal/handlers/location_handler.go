package handlers

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LocationHandler serves city and apartment lookups
type LocationHandler struct {
	service *services.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(service *services.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// RegisterLocationRoutes registers the public reference-data routes
func (h *LocationHandler) RegisterLocationRoutes(g *echo.Group) {
	g.GET("/cities", h.ListCities)
	g.GET("/cities/:cityId/apartments", h.ListApartments)
	g.GET("/apartments/nearby", h.Nearby)
}

func (h *LocationHandler) ListCities(c echo.Context) error {
	cities, err := h.service.ListCities(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, cities)
}

func (h *LocationHandler) ListApartments(c echo.Context) error {
	apts, err := h.service.ListApartments(c.Request().Context(), c.Param("cityId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, apts)
}

// Nearby searches apartments around lat/lng within radiusKm
func (h *LocationHandler) Nearby(c echo.Context) error {
	var fields []apperrors.FieldError
	lat, _, fe := floatParam(c, "lat", true)
	if fe != nil {
		fields = append(fields, *fe)
	}
	lng, _, fe := floatParam(c, "lng", true)
	if fe != nil {
		fields = append(fields, *fe)
	}
	radius, present, fe := floatParam(c, "radiusKm", false)
	if fe != nil {
		fields = append(fields, *fe)
	}
	if !present {
		radius = services.DefaultNearbyRadiusKm
	}
	if len(fields) > 0 {
		return apperrors.Invalid("invalid search parameters", fields...)
	}

	found, err := h.service.Nearby(c.Request().Context(), lat, lng, radius)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, found)
}
