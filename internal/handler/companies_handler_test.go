package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/dto"
	"github.com/octobees/seo-radar/api/internal/entity"
	middlewarepkg "github.com/octobees/seo-radar/api/internal/middleware"
	"github.com/octobees/seo-radar/api/internal/repository"
	"github.com/octobees/seo-radar/api/internal/service"
)

type stubCompaniesRepo struct {
	create         func(ctx context.Context, company *entity.Company) error
	listByUser     func(ctx context.Context, userID uuid.UUID) ([]entity.Company, error)
	getByID        func(ctx context.Context, userID, id uuid.UUID) (*entity.Company, error)
	partialUpdate  func(ctx context.Context, userID, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error)
	replaceSEOList func(ctx context.Context, userID, id uuid.UUID, selector entity.ListSelector, list []entity.StoredCompetitor, expectedRevision int64) (int64, error)
	delete         func(ctx context.Context, userID, id uuid.UUID) error
}

func (s *stubCompaniesRepo) Create(ctx context.Context, company *entity.Company) error {
	if s.create != nil {
		return s.create(ctx, company)
	}
	return errors.New("not implemented")
}

func (s *stubCompaniesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Company, error) {
	if s.listByUser != nil {
		return s.listByUser(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (s *stubCompaniesRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Company, error) {
	if s.getByID != nil {
		return s.getByID(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubCompaniesRepo) PartialUpdate(ctx context.Context, userID, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error) {
	if s.partialUpdate != nil {
		return s.partialUpdate(ctx, userID, id, patch)
	}
	return nil, errors.New("not implemented")
}

func (s *stubCompaniesRepo) ReplaceSEOList(ctx context.Context, userID, id uuid.UUID, selector entity.ListSelector, list []entity.StoredCompetitor, expectedRevision int64) (int64, error) {
	if s.replaceSEOList != nil {
		return s.replaceSEOList(ctx, userID, id, selector, list, expectedRevision)
	}
	return 0, errors.New("not implemented")
}

func (s *stubCompaniesRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, userID, id)
	}
	return errors.New("not implemented")
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middlewarepkg.ContextKeyUserID, userID.String())
	return c
}

func TestCompaniesHandler_Create(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/companies", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{}))
		_ = handler.Create(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "  "})
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{}))
		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "Acme GmbH"})
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{
			create: func(ctx context.Context, company *entity.Company) error {
				company.ID = uuid.New()
				return nil
			},
		}))
		_ = handler.Create(c)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Get(t *testing.T) {
	e := echo.New()
	userID := uuid.New()
	companyID := uuid.New()

	t.Run("invalid company id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/abc", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues("abc")

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{}))
		_ = handler.Get(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+companyID.String(), nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues(companyID.String())

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{
			getByID: func(ctx context.Context, uid, id uuid.UUID) (*entity.Company, error) {
				return nil, repository.ErrCompanyNotFound
			},
		}))
		_ = handler.Get(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+companyID.String(), nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues(companyID.String())

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{
			getByID: func(ctx context.Context, uid, id uuid.UUID) (*entity.Company, error) {
				if uid != userID || id != companyID {
					t.Fatalf("expected scoped lookup, got user %s company %s", uid, id)
				}
				return &entity.Company{ID: id, UserID: uid, Name: "Acme GmbH"}, nil
			},
		}))
		_ = handler.Get(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Update(t *testing.T) {
	e := echo.New()
	userID := uuid.New()
	companyID := uuid.New()

	t.Run("empty patch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/companies/"+companyID.String(), bytes.NewBufferString("{}"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues(companyID.String())

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{}))
		_ = handler.Update(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "Renamed AG"})
		req := httptest.NewRequest(http.MethodPatch, "/companies/"+companyID.String(), bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, userID)
		c.SetParamNames("id")
		c.SetParamValues(companyID.String())

		handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{
			partialUpdate: func(ctx context.Context, uid, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error) {
				return &entity.Company{ID: id, UserID: uid, Name: *patch.Name}, nil
			},
		}))
		_ = handler.Update(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Delete(t *testing.T) {
	e := echo.New()
	userID := uuid.New()
	companyID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/companies/"+companyID.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, userID)
	c.SetParamNames("id")
	c.SetParamValues(companyID.String())

	handler := NewCompaniesHandler(service.NewCompaniesService(&stubCompaniesRepo{
		delete: func(ctx context.Context, uid, id uuid.UUID) error {
			return nil
		},
	}))
	_ = handler.Delete(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
