package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxTrackedCountries caps how many countries a company may track for ranking.
const MaxTrackedCountries = 3

// TrackedCountry is a country the company monitors rankings in.
type TrackedCountry struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// Service is a general service line offered by the company.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SEOKeyword is a keyword the company tracks rankings for.
type SEOKeyword struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`
}

// SEOProfile is the nested SEO sub-document persisted per company. The three
// competitor lists are updated independently via partial list replacement.
type SEOProfile struct {
	Keywords             []SEOKeyword       `json:"keywords"`
	Competitors          []StoredCompetitor `json:"competitors"`
	CompetitorsByKeyword []StoredCompetitor `json:"competitorsByKeyword"`
	CompetitorsByDomain  []StoredCompetitor `json:"competitorsByDomain"`
}

// List returns the competitor list named by the selector.
func (p SEOProfile) List(selector ListSelector) []StoredCompetitor {
	switch selector {
	case ListCompetitorsByKeyword:
		return p.CompetitorsByKeyword
	case ListCompetitorsByDomain:
		return p.CompetitorsByDomain
	default:
		return p.Competitors
	}
}

// Company is the aggregate root owned by a user. SEO metadata lives in a
// nested JSONB document; deleting the company removes every sub-entity.
type Company struct {
	ID               uuid.UUID         `json:"id"`
	UserID           uuid.UUID         `json:"user_id"`
	Name             string            `json:"name"`
	Website          string            `json:"website,omitempty"`
	Country          string            `json:"country,omitempty"`
	Address          CompetitorAddress `json:"address"`
	Contact          CompetitorContact `json:"contact"`
	SocialNetworks   SocialNetworks    `json:"social_networks"`
	TrackedCountries []TrackedCountry  `json:"tracked_countries"`
	GeneralKeywords  []string          `json:"general_keywords"`
	GeneralDomains   []string          `json:"general_domains"`
	GeneralServices  []Service         `json:"general_services"`
	SEO              SEOProfile        `json:"seo"`
	SEORevision      int64             `json:"seo_revision"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
