package entity

// CompetitorStatus tracks the manual review state of a stored competitor.
type CompetitorStatus string

const (
	StatusNotChecked    CompetitorStatus = "not_checked"
	StatusCompetitor    CompetitorStatus = "competitor"
	StatusNotCompetitor CompetitorStatus = "not_competitor"
)

// Valid reports whether the status is one of the three known values.
func (s CompetitorStatus) Valid() bool {
	switch s {
	case StatusNotChecked, StatusCompetitor, StatusNotCompetitor:
		return true
	}
	return false
}

// AnalysisType records how a product entry was classified. The empty string
// means "not yet analyzed" and is distinct from an absent field.
type AnalysisType string

const (
	AnalysisPending AnalysisType = ""
	AnalysisManual  AnalysisType = "manual"
	AnalysisAI      AnalysisType = "ai"
)

// Valid reports whether the analysis type is one of the three known values.
func (a AnalysisType) Valid() bool {
	switch a {
	case AnalysisPending, AnalysisManual, AnalysisAI:
		return true
	}
	return false
}

// Product is a product or service line reviewed on a competitor's site.
type Product struct {
	Title        string        `json:"title"`
	IsCompetitor *bool         `json:"isCompetitor,omitempty"`
	AnalysisType *AnalysisType `json:"analysisType,omitempty"`
}

// CompetitorAddress is always persisted fully populated so partial updates
// never see missing leaves.
type CompetitorAddress struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
}

// CompetitorContact holds reachable contact channels for a competitor.
type CompetitorContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// SocialNetworks lists the profile URLs tracked per company and competitor.
type SocialNetworks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

// StoredCompetitor is a competitor record persisted inside a company's SEO
// document. Identity within a list is (domain, keyword) for keyword-sourced
// lists and domain alone for domain-sourced lists.
type StoredCompetitor struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Domain         string            `json:"domain"`
	URL            string            `json:"url"`
	Keyword        string            `json:"keyword,omitempty"`
	Rank           *int              `json:"rank,omitempty"`
	Status         CompetitorStatus  `json:"status"`
	Products       []Product         `json:"products"`
	Address        CompetitorAddress `json:"address"`
	Contact        CompetitorContact `json:"contact"`
	SocialNetworks SocialNetworks    `json:"socialNetworks"`
}

// CandidateCompetitor is a provider search result that has not been persisted.
// It lives only for the duration of a query round-trip.
type CandidateCompetitor struct {
	ID         string   `json:"id,omitempty"`
	Rank       *int     `json:"rank,omitempty"`
	Domain     string   `json:"domain,omitempty"`
	URL        string   `json:"url,omitempty"`
	Name       string   `json:"name,omitempty"`
	MatchScore *float64 `json:"matchScore,omitempty"`
}

// ListSelector names one of the three competitor lists in the SEO document.
type ListSelector string

const (
	ListCompetitors          ListSelector = "competitors"
	ListCompetitorsByKeyword ListSelector = "competitorsByKeyword"
	ListCompetitorsByDomain  ListSelector = "competitorsByDomain"
)

// Valid reports whether the selector names a known competitor list.
func (l ListSelector) Valid() bool {
	switch l {
	case ListCompetitors, ListCompetitorsByKeyword, ListCompetitorsByDomain:
		return true
	}
	return false
}
