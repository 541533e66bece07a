package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/dto"
	middlewarepkg "github.com/octobees/seo-radar/api/internal/middleware"
	"github.com/octobees/seo-radar/api/internal/repository"
	"github.com/octobees/seo-radar/api/internal/service"
)

// CompaniesHandler exposes company CRUD endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.CompaniesService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// Create handles POST /companies requests.
func (h *CompaniesHandler) Create(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user context")
	}

	var req dto.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.CreateCompany(c.Request().Context(), userID, req)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to create company")
	}

	return Success(c, http.StatusCreated, "company created", company)
}

// List handles GET /companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user context")
	}

	companies, err := h.service.ListCompanies(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list companies")
	}

	return Success(c, http.StatusOK, "companies retrieved", companies)
}

// Get handles GET /companies/:id requests.
func (h *CompaniesHandler) Get(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	company, err := h.service.GetCompany(c.Request().Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch company")
	}

	return Success(c, http.StatusOK, "company retrieved", company)
}

// Update handles PATCH /companies/:id requests.
func (h *CompaniesHandler) Update(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	var patch dto.UpdateCompanyRequest
	if err := c.Bind(&patch); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if patch.Empty() {
		return Error(c, http.StatusBadRequest, "no fields to update")
	}

	company, err := h.service.UpdateCompany(c.Request().Context(), userID, companyID, patch)
	if err != nil {
		var validationErr service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return Error(c, http.StatusBadRequest, validationErr.Error())
		case errors.Is(err, repository.ErrCompanyNotFound):
			return Error(c, http.StatusNotFound, "company not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update company")
		}
	}

	return Success(c, http.StatusOK, "company updated", company)
}

// Delete handles DELETE /companies/:id requests.
func (h *CompaniesHandler) Delete(c echo.Context) error {
	userID, companyID, ok := companyScope(c)
	if !ok {
		return nil
	}

	if err := h.service.DeleteCompany(c.Request().Context(), userID, companyID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete company")
	}

	return Success(c, http.StatusOK, "company deleted", map[string]any{"id": companyID})
}

func authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(middlewarepkg.UserIDFromContext(c))
}

// companyScope resolves the authenticated user and the :id path parameter.
// When it returns false the error response has already been written.
func companyScope(c echo.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := authenticatedUserID(c)
	if err != nil {
		Error(c, http.StatusUnauthorized, "invalid user context")
		return uuid.Nil, uuid.Nil, false
	}
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid company id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, companyID, true
}
