package dto

import (
	"github.com/octobees/seo-radar/api/internal/entity"
	"github.com/octobees/seo-radar/api/internal/ranker"
)

// Search modes accepted by the competitor search endpoint.
const (
	SearchModeKeyword = "keyword"
	SearchModeDomain  = "domain"
)

// CompetitorSearchRequest queries the rank provider for candidate competitors.
// Exactly one of Keyword or Domain is used depending on Mode.
type CompetitorSearchRequest struct {
	Mode        string `json:"mode"`
	Keyword     string `json:"keyword,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Country     string `json:"country,omitempty"`
	ResultLimit string `json:"result_limit,omitempty"`
}

// CompetitorSearchResponse carries the candidates that survived filtering
// against the company's existing list, in provider rank order.
type CompetitorSearchResponse struct {
	Candidates  []entity.CandidateCompetitor `json:"candidates"`
	IntentStats *ranker.IntentStats          `json:"keyword_intent_stats,omitempty"`
	SEORevision int64                        `json:"seo_revision"`
}

// MergeCompetitorsRequest promotes selected candidates into a competitor list.
type MergeCompetitorsRequest struct {
	List       entity.ListSelector          `json:"list"`
	Keyword    string                       `json:"keyword,omitempty"`
	Candidates []entity.CandidateCompetitor `json:"candidates"`
}

// MergeCompetitorsResponse reports the appended records and the new revision.
type MergeCompetitorsResponse struct {
	Added       []entity.StoredCompetitor `json:"added"`
	SEORevision int64                     `json:"seo_revision"`
}

// UpdateCompetitorStatusRequest changes the review status of one record.
type UpdateCompetitorStatusRequest struct {
	List   entity.ListSelector     `json:"list"`
	Status entity.CompetitorStatus `json:"status"`
}

// AssignProductsRequest replaces the product list of one competitor record.
type AssignProductsRequest struct {
	List     entity.ListSelector `json:"list"`
	Products []entity.Product    `json:"products"`
}

// DeleteCompetitorRequest removes one record from a competitor list.
type DeleteCompetitorRequest struct {
	List entity.ListSelector `json:"list"`
}

// CreditsResponse reports remaining provider credits.
type CreditsResponse struct {
	Credits []ranker.Credit `json:"credits"`
}
