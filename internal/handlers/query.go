package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50

	// maxPage keeps (page-1)*limit within int32 for every accepted limit.
	maxPage = math.MaxInt32 / maxPageLimit
)

// locationFilter reads the city and apartmentId query parameters.
func locationFilter(c echo.Context) (models.PostFilter, []apperrors.FieldError) {
	var fields []apperrors.FieldError
	f := models.PostFilter{CityID: strings.TrimSpace(c.QueryParam("city"))}
	if apt := strings.TrimSpace(c.QueryParam("apartmentId")); apt != "" {
		id, err := uuid.Parse(apt)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "apartmentId", Message: "must be a valid id"})
		} else {
			f.ApartmentID = id.String()
		}
	}
	return f, fields
}

// postListFilter reads the listing query: location, category, sort and page.
func postListFilter(c echo.Context) (models.PostFilter, error) {
	f, fields := locationFilter(c)

	if raw := c.QueryParam("category"); raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "category", Message: "must be one of QNA RECOMMEND SECONDHAND FREE"})
		}
		f.Category = category
	}

	switch sort := models.PostSort(strings.ToLower(c.QueryParam("sort"))); sort {
	case "", models.SortLatest:
		f.Sort = models.SortLatest
	case models.SortPopular:
		f.Sort = models.SortPopular
	default:
		fields = append(fields, apperrors.FieldError{Field: "sort", Message: "must be one of popular latest"})
	}

	page, limit, pageFields := pagination(c)
	fields = append(fields, pageFields...)
	f.Offset = (page - 1) * limit
	f.Limit = limit

	if len(fields) > 0 {
		return models.PostFilter{}, apperrors.Invalid("invalid query parameters", fields...)
	}
	return f, nil
}

// pagination reads page (1..maxPage, default 1) and limit (1..50, default 20).
func pagination(c echo.Context) (page, limit int, fields []apperrors.FieldError) {
	page, limit = 1, defaultPageLimit
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPage {
			fields = append(fields, apperrors.FieldError{Field: "page", Message: "must be between 1 and " + strconv.Itoa(maxPage)})
		} else {
			page = n
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageLimit {
			fields = append(fields, apperrors.FieldError{Field: "limit", Message: "must be between 1 and 50"})
		} else {
			limit = n
		}
	}
	return page, limit, fields
}

// floatParam reads a finite number. present is false when the parameter is absent.
func floatParam(c echo.Context, name string, required bool) (v float64, present bool, fe *apperrors.FieldError) {
	raw := c.QueryParam(name)
	if raw == "" {
		if required {
			return 0, false, &apperrors.FieldError{Field: name, Message: name + " is required"}
		}
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, &apperrors.FieldError{Field: name, Message: "must be a number"}
	}
	return v, true, nil
}
