package dto

import "github.com/octobees/seo-radar/api/internal/entity"

// CreateCompanyRequest is the onboarding payload for a new company.
type CreateCompanyRequest struct {
	Name             string                   `json:"name"`
	Website          string                   `json:"website,omitempty"`
	Country          string                   `json:"country,omitempty"`
	Address          entity.CompetitorAddress `json:"address"`
	Contact          entity.CompetitorContact `json:"contact"`
	SocialNetworks   entity.SocialNetworks    `json:"social_networks"`
	TrackedCountries []entity.TrackedCountry  `json:"tracked_countries"`
	GeneralKeywords  []string                 `json:"general_keywords"`
	GeneralDomains   []string                 `json:"general_domains"`
	GeneralServices  []entity.Service         `json:"general_services"`
}

// UpdateCompanyRequest captures a partial top-level update. Nested objects
// that are present replace their previous value wholesale; absent fields are
// left untouched.
type UpdateCompanyRequest struct {
	Name             *string                   `json:"name,omitempty"`
	Website          *string                   `json:"website,omitempty"`
	Country          *string                   `json:"country,omitempty"`
	Address          *entity.CompetitorAddress `json:"address,omitempty"`
	Contact          *entity.CompetitorContact `json:"contact,omitempty"`
	SocialNetworks   *entity.SocialNetworks    `json:"social_networks,omitempty"`
	TrackedCountries *[]entity.TrackedCountry  `json:"tracked_countries,omitempty"`
	GeneralKeywords  *[]string                 `json:"general_keywords,omitempty"`
	GeneralDomains   *[]string                 `json:"general_domains,omitempty"`
	GeneralServices  *[]entity.Service         `json:"general_services,omitempty"`
	SEO              *entity.SEOProfile        `json:"seo,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdateCompanyRequest) Empty() bool {
	return r.Name == nil && r.Website == nil && r.Country == nil &&
		r.Address == nil && r.Contact == nil && r.SocialNetworks == nil &&
		r.TrackedCountries == nil && r.GeneralKeywords == nil &&
		r.GeneralDomains == nil && r.GeneralServices == nil && r.SEO == nil
}
