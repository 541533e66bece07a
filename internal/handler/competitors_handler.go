package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/dto"
	"github.com/octobees/seo-radar/api/internal/entity"
	middlewarepkg "github.com/octobees/seo-radar/api/internal/middleware"
	"github.com/octobees/seo-radar/api/internal/ranker"
	"github.com/octobees/seo-radar/api/internal/repository"
	"github.com/octobees/seo-radar/api/internal/service"
)

// CompetitorsHandler exposes the reconciliation endpoints: provider search,
// candidate merge and per-record mutations.
type CompetitorsHandler struct {
	service *service.CompetitorsService
}

// NewCompetitorsHandler creates a new handler instance.
func NewCompetitorsHandler(service *service.CompetitorsService) *CompetitorsHandler {
	return &CompetitorsHandler{service: service}
}

// Search handles POST /companies/:id/competitors/search requests.
func (h *CompetitorsHandler) Search(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	var req dto.CompetitorSearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Search(c.Request().Context(), userID, companyID, req, middlewarepkg.RequestIDFromContext(c))
	if err != nil {
		return competitorError(c, err, "search failed")
	}

	return Success(c, http.StatusOK, "candidates retrieved", result)
}

// Merge handles POST /companies/:id/competitors/merge requests.
func (h *CompetitorsHandler) Merge(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	var req dto.MergeCompetitorsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Merge(c.Request().Context(), userID, companyID, req)
	if err != nil {
		return competitorError(c, err, "failed to merge competitors")
	}

	return Success(c, http.StatusOK, "competitors merged", result)
}

// UpdateStatus handles PATCH /companies/:id/competitors/:competitor_id/status requests.
func (h *CompetitorsHandler) UpdateStatus(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	var req dto.UpdateCompetitorStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.UpdateStatus(c.Request().Context(), userID, companyID, c.Param("competitor_id"), req)
	if err != nil {
		return competitorError(c, err, "failed to update status")
	}

	return Success(c, http.StatusOK, "status updated", record)
}

// AssignProducts handles PUT /companies/:id/competitors/:competitor_id/products requests.
func (h *CompetitorsHandler) AssignProducts(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	var req dto.AssignProductsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.AssignProducts(c.Request().Context(), userID, companyID, c.Param("competitor_id"), req)
	if err != nil {
		return competitorError(c, err, "failed to assign products")
	}

	return Success(c, http.StatusOK, "products assigned", record)
}

// Delete handles DELETE /companies/:id/competitors/:competitor_id requests.
// The list selector is passed as a query parameter.
func (h *CompetitorsHandler) Delete(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	selector := entity.ListSelector(c.QueryParam("list"))
	if err := h.service.DeleteCompetitor(c.Request().Context(), userID, companyID, c.Param("competitor_id"), selector); err != nil {
		return competitorError(c, err, "failed to delete competitor")
	}

	return Success(c, http.StatusOK, "competitor deleted", map[string]any{"id": c.Param("competitor_id")})
}

// Credits handles GET /credits requests.
func (h *CompetitorsHandler) Credits(c echo.Context) error {
	result, err := h.service.Credits(c.Request().Context(), middlewarepkg.RequestIDFromContext(c))
	if err != nil {
		return competitorError(c, err, "failed to fetch credits")
	}

	return Success(c, http.StatusOK, "credits retrieved", result)
}

// competitorError maps the service error taxonomy onto HTTP statuses:
// validation 400, missing records 404, revision conflicts 409, provider
// failures 502 with the provider message, transport failures 502 generic,
// persistence failures 500.
func competitorError(c echo.Context, err error, fallback string) error {
	var validationErr service.ValidationError
	var providerErr *ranker.ProviderError

	switch {
	case errors.As(err, &validationErr):
		return Error(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, repository.ErrCompanyNotFound):
		return Error(c, http.StatusNotFound, "company not found")
	case errors.Is(err, service.ErrCompetitorNotFound):
		return Error(c, http.StatusNotFound, "competitor not found")
	case errors.Is(err, repository.ErrSEORevisionConflict):
		return Error(c, http.StatusConflict, "seo document changed, reload and retry")
	case errors.As(err, &providerErr):
		return Error(c, http.StatusBadGateway, providerErr.Error())
	case errors.Is(err, ranker.ErrUnavailable):
		return Error(c, http.StatusBadGateway, "rank provider unavailable")
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
