package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/seo-radar/api/internal/cache"
	"github.com/octobees/seo-radar/api/internal/dto"
	"github.com/octobees/seo-radar/api/internal/entity"
	"github.com/octobees/seo-radar/api/internal/ranker"
	"github.com/octobees/seo-radar/api/internal/reconcile"
	"github.com/octobees/seo-radar/api/internal/repository"
)

// ErrCompetitorNotFound indicates no record with the given id exists in the
// selected list.
var ErrCompetitorNotFound = errors.New("competitor not found")

// RankerClient is the provider surface the competitors service depends on.
type RankerClient interface {
	KeywordSearch(ctx context.Context, keyword, country, resultLimit, requestID string) (*ranker.KeywordSearchResponse, error)
	DomainSearch(ctx context.Context, domain, country, resultLimit, requestID string) (*ranker.DomainSearchResponse, error)
	Credits(ctx context.Context, requestID string) (*ranker.CreditsResponse, error)
}

// CompetitorsService runs the reconciliation flow: provider query, filter
// against the persisted list, promotion of selected candidates, and per-record
// status/product mutations.
type CompetitorsService struct {
	companies          repository.CompaniesRepository
	ranker             RankerClient
	cache              cache.SearchCache
	defaultCountry     string
	defaultResultLimit string
}

// NewCompetitorsService wires the service with its provider and cache.
func NewCompetitorsService(companies repository.CompaniesRepository, rankerClient RankerClient, searchCache cache.SearchCache, defaultCountry, defaultResultLimit string) *CompetitorsService {
	if defaultCountry == "" {
		defaultCountry = "de"
	}
	if defaultResultLimit == "" {
		defaultResultLimit = "10"
	}
	return &CompetitorsService{
		companies:          companies,
		ranker:             rankerClient,
		cache:              searchCache,
		defaultCountry:     defaultCountry,
		defaultResultLimit: defaultResultLimit,
	}
}

// Search queries the provider and returns only candidates not already present
// in the company's list for the relevant category.
func (s *CompetitorsService) Search(ctx context.Context, userID, companyID uuid.UUID, req dto.CompetitorSearchRequest, requestID string) (*dto.CompetitorSearchResponse, error) {
	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = s.defaultCountry
	}
	limit := strings.TrimSpace(req.ResultLimit)
	if limit == "" {
		limit = s.defaultResultLimit
	}

	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case dto.SearchModeKeyword:
		keyword := strings.TrimSpace(req.Keyword)
		if keyword == "" {
			return nil, ValidationError{Field: "keyword", Message: "keyword is required"}
		}
		return s.searchByKeyword(ctx, company, keyword, country, limit, requestID)
	case dto.SearchModeDomain:
		domain := strings.TrimSpace(req.Domain)
		if domain == "" {
			return nil, ValidationError{Field: "domain", Message: "domain is required"}
		}
		return s.searchByDomain(ctx, company, domain, country, limit, requestID)
	default:
		return nil, ValidationError{Field: "mode", Message: "mode must be keyword or domain"}
	}
}

func (s *CompetitorsService) searchByKeyword(ctx context.Context, company *entity.Company, keyword, country, limit, requestID string) (*dto.CompetitorSearchResponse, error) {
	var resp *ranker.KeywordSearchResponse

	key := cache.Key("keyword", keyword, country, limit)
	if payload, ok := s.cache.Get(ctx, key); ok {
		cached := &ranker.KeywordSearchResponse{}
		if err := json.Unmarshal(payload, cached); err == nil {
			resp = cached
		}
	}
	if resp == nil {
		fresh, err := s.ranker.KeywordSearch(ctx, keyword, country, limit, requestID)
		if err != nil {
			return nil, err
		}
		resp = fresh
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, payload)
		}
	}

	candidates := make([]entity.CandidateCompetitor, 0)
	for _, answer := range resp.Answer {
		for _, result := range answer.Result {
			rank := result.Rank
			candidates = append(candidates, entity.CandidateCompetitor{
				Rank:   &rank,
				Domain: result.Domain,
				URL:    result.URL,
			})
		}
	}

	filtered := reconcile.Filter(candidates, company.SEO.CompetitorsByKeyword, reconcile.ByDomainAndKeyword, keyword)
	return &dto.CompetitorSearchResponse{
		Candidates:  filtered,
		IntentStats: resp.KeywordIntentStats,
		SEORevision: company.SEORevision,
	}, nil
}

func (s *CompetitorsService) searchByDomain(ctx context.Context, company *entity.Company, domain, country, limit, requestID string) (*dto.CompetitorSearchResponse, error) {
	var resp *ranker.DomainSearchResponse

	key := cache.Key("domain", domain, country, limit)
	if payload, ok := s.cache.Get(ctx, key); ok {
		cached := &ranker.DomainSearchResponse{}
		if err := json.Unmarshal(payload, cached); err == nil {
			resp = cached
		}
	}
	if resp == nil {
		fresh, err := s.ranker.DomainSearch(ctx, domain, country, limit, requestID)
		if err != nil {
			return nil, err
		}
		resp = fresh
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, payload)
		}
	}

	candidates := make([]entity.CandidateCompetitor, 0)
	for _, answer := range resp.Answer {
		for _, result := range answer.Result {
			score := result.MatchScore
			candidates = append(candidates, entity.CandidateCompetitor{
				Domain:     result.Domain,
				MatchScore: &score,
			})
		}
	}

	filtered := reconcile.Filter(candidates, company.SEO.CompetitorsByDomain, reconcile.ByDomain, "")
	return &dto.CompetitorSearchResponse{
		Candidates:  filtered,
		SEORevision: company.SEORevision,
	}, nil
}

// Merge promotes the selected candidates into the chosen list. The write is
// append-only and conditional on the seo revision read here; duplicates are
// the filter's responsibility, not re-checked on merge.
func (s *CompetitorsService) Merge(ctx context.Context, userID, companyID uuid.UUID, req dto.MergeCompetitorsRequest) (*dto.MergeCompetitorsResponse, error) {
	if !req.List.Valid() {
		return nil, ValidationError{Field: "list", Message: "unknown competitor list"}
	}
	if len(req.Candidates) == 0 {
		return nil, ValidationError{Field: "candidates", Message: "at least one candidate is required"}
	}
	if req.List == entity.ListCompetitorsByKeyword && strings.TrimSpace(req.Keyword) == "" {
		return nil, ValidationError{Field: "keyword", Message: "keyword is required for the keyword list"}
	}

	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	records := reconcile.Format(req.Candidates, strings.TrimSpace(req.Keyword))

	current := company.SEO.List(req.List)
	merged := make([]entity.StoredCompetitor, 0, len(current)+len(records))
	merged = append(merged, current...)
	merged = append(merged, records...)

	revision, err := s.companies.ReplaceSEOList(ctx, userID, companyID, req.List, merged, company.SEORevision)
	if err != nil {
		return nil, err
	}

	return &dto.MergeCompetitorsResponse{Added: records, SEORevision: revision}, nil
}

// UpdateStatus transitions one record's review status. Every transition
// between the three states is a legal user action.
func (s *CompetitorsService) UpdateStatus(ctx context.Context, userID, companyID uuid.UUID, competitorID string, req dto.UpdateCompetitorStatusRequest) (*entity.StoredCompetitor, error) {
	if !req.Status.Valid() {
		return nil, ValidationError{Field: "status", Message: "unknown status"}
	}
	return s.mutateRecord(ctx, userID, companyID, req.List, competitorID, func(record *entity.StoredCompetitor) error {
		record.Status = req.Status
		return nil
	})
}

// AssignProducts replaces the product list of one record. Products may be
// assigned regardless of the record's status.
func (s *CompetitorsService) AssignProducts(ctx context.Context, userID, companyID uuid.UUID, competitorID string, req dto.AssignProductsRequest) (*entity.StoredCompetitor, error) {
	for _, product := range req.Products {
		if strings.TrimSpace(product.Title) == "" {
			return nil, ValidationError{Field: "products", Message: "product title is required"}
		}
		if product.AnalysisType != nil && !product.AnalysisType.Valid() {
			return nil, ValidationError{Field: "products", Message: "analysisType must be empty, manual or ai"}
		}
	}
	return s.mutateRecord(ctx, userID, companyID, req.List, competitorID, func(record *entity.StoredCompetitor) error {
		if req.Products == nil {
			record.Products = []entity.Product{}
		} else {
			record.Products = req.Products
		}
		return nil
	})
}

// DeleteCompetitor removes one record from the selected list.
func (s *CompetitorsService) DeleteCompetitor(ctx context.Context, userID, companyID uuid.UUID, competitorID string, selector entity.ListSelector) error {
	if !selector.Valid() {
		return ValidationError{Field: "list", Message: "unknown competitor list"}
	}

	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		return err
	}

	current := company.SEO.List(selector)
	remaining := make([]entity.StoredCompetitor, 0, len(current))
	found := false
	for _, record := range current {
		if record.ID == competitorID {
			found = true
			continue
		}
		remaining = append(remaining, record)
	}
	if !found {
		return ErrCompetitorNotFound
	}

	_, err = s.companies.ReplaceSEOList(ctx, userID, companyID, selector, remaining, company.SEORevision)
	return err
}

// Credits reports the provider account's remaining credits.
func (s *CompetitorsService) Credits(ctx context.Context, requestID string) (*dto.CreditsResponse, error) {
	resp, err := s.ranker.Credits(ctx, requestID)
	if err != nil {
		return nil, err
	}

	credits := make([]ranker.Credit, 0)
	for _, answer := range resp.Answer {
		credits = append(credits, answer.Credits...)
	}
	return &dto.CreditsResponse{Credits: credits}, nil
}

func (s *CompetitorsService) mutateRecord(ctx context.Context, userID, companyID uuid.UUID, selector entity.ListSelector, competitorID string, mutate func(*entity.StoredCompetitor) error) (*entity.StoredCompetitor, error) {
	if !selector.Valid() {
		return nil, ValidationError{Field: "list", Message: "unknown competitor list"}
	}

	company, err := s.companies.GetByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	current := company.SEO.List(selector)
	updated := make([]entity.StoredCompetitor, len(current))
	copy(updated, current)

	var target *entity.StoredCompetitor
	for i := range updated {
		if updated[i].ID == competitorID {
			target = &updated[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCompetitorNotFound
	}

	if err := mutate(target); err != nil {
		return nil, err
	}

	if _, err := s.companies.ReplaceSEOList(ctx, userID, companyID, selector, updated, company.SEORevision); err != nil {
		return nil, err
	}

	record := *target
	return &record, nil
}
