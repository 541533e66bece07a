package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/seo-radar/api/internal/dto"
	"github.com/octobees/seo-radar/api/internal/entity"
	"github.com/octobees/seo-radar/api/internal/repository"
)

// CompaniesService exposes CRUD operations for a user's monitored companies.
type CompaniesService struct {
	repo repository.CompaniesRepository
}

// NewCompaniesService creates a new instance of CompaniesService.
func NewCompaniesService(repo repository.CompaniesRepository) *CompaniesService {
	return &CompaniesService{repo: repo}
}

// CreateCompany validates the onboarding payload and persists a new company.
func (s *CompaniesService) CreateCompany(ctx context.Context, userID uuid.UUID, req dto.CreateCompanyRequest) (*entity.Company, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ValidationError{Field: "name", Message: "name is required"}
	}
	if err := validateEmail("contact.email", req.Contact.Email); err != nil {
		return nil, err
	}
	if err := validatePhone("contact.phone", req.Contact.Phone, req.Country); err != nil {
		return nil, err
	}
	if err := validateTrackedCountries(req.TrackedCountries); err != nil {
		return nil, err
	}
	for _, domain := range req.GeneralDomains {
		if err := validateDomain("general_domains", domain); err != nil {
			return nil, err
		}
	}

	company := &entity.Company{
		UserID:           userID,
		Name:             req.Name,
		Website:          strings.TrimSpace(req.Website),
		Country:          strings.TrimSpace(req.Country),
		Address:          req.Address,
		Contact:          req.Contact,
		SocialNetworks:   req.SocialNetworks,
		TrackedCountries: req.TrackedCountries,
		GeneralKeywords:  req.GeneralKeywords,
		GeneralDomains:   req.GeneralDomains,
		GeneralServices:  req.GeneralServices,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies returns all companies owned by the user.
func (s *CompaniesService) ListCompanies(ctx context.Context, userID uuid.UUID) ([]entity.Company, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetCompany returns a single company within the user's scope.
func (s *CompaniesService) GetCompany(ctx context.Context, userID, id uuid.UUID) (*entity.Company, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// UpdateCompany applies a partial top-level update. All validation happens
// before any persistence call is issued.
func (s *CompaniesService) UpdateCompany(ctx context.Context, userID, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, ValidationError{Field: "name", Message: "name cannot be empty"}
		}
		patch.Name = &trimmed
	}
	if patch.Contact != nil {
		if err := validateEmail("contact.email", patch.Contact.Email); err != nil {
			return nil, err
		}
		region := ""
		if patch.Country != nil {
			region = *patch.Country
		}
		if err := validatePhone("contact.phone", patch.Contact.Phone, region); err != nil {
			return nil, err
		}
	}
	if patch.TrackedCountries != nil {
		if err := validateTrackedCountries(*patch.TrackedCountries); err != nil {
			return nil, err
		}
	}
	if patch.GeneralDomains != nil {
		for _, domain := range *patch.GeneralDomains {
			if err := validateDomain("general_domains", domain); err != nil {
				return nil, err
			}
		}
	}

	return s.repo.PartialUpdate(ctx, userID, id, patch)
}

// DeleteCompany removes a company and, implicitly, every sub-entity.
func (s *CompaniesService) DeleteCompany(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
