// Package reconcile deduplicates provider search results against a company's
// persisted competitor lists and promotes selected candidates into the
// persisted record shape. All functions are pure.
package reconcile

import (
	"github.com/google/uuid"

	"github.com/octobees/seo-radar/api/internal/entity"
)

// IdentityMode selects which fields form a competitor's identity key.
type IdentityMode int

const (
	// ByDomainAndKeyword keys records on (domain, keyword). Used for
	// keyword-sourced lists, where the same domain may legitimately appear
	// once per tracked keyword.
	ByDomainAndKeyword IdentityMode = iota
	// ByDomain keys records on domain alone.
	ByDomain
)

// identityKey is compared by exact string equality. Case and trailing-slash
// variants count as distinct entities.
type identityKey struct {
	domain  string
	keyword string
}

func storedKey(s entity.StoredCompetitor, mode IdentityMode) identityKey {
	if mode == ByDomainAndKeyword {
		return identityKey{domain: s.Domain, keyword: s.Keyword}
	}
	return identityKey{domain: s.Domain}
}

func candidateKey(c entity.CandidateCompetitor, mode IdentityMode, queryKeyword string) identityKey {
	if mode == ByDomainAndKeyword {
		return identityKey{domain: c.Domain, keyword: queryKeyword}
	}
	return identityKey{domain: c.Domain}
}

// valid reports whether a candidate carries enough data to be a competitor
// record. A missing domain always disqualifies; keyword-sourced candidates
// additionally need a URL.
func valid(c entity.CandidateCompetitor, mode IdentityMode) bool {
	if c.Domain == "" {
		return false
	}
	if mode == ByDomainAndKeyword && c.URL == "" {
		return false
	}
	return true
}

// Filter returns the candidates that are not already present in existing,
// preserving the provider's rank order. Candidates failing the validity
// precondition are dropped before identity comparison. When mode is
// ByDomainAndKeyword, queryKeyword is the keyword that produced the whole
// candidate batch.
func Filter(candidates []entity.CandidateCompetitor, existing []entity.StoredCompetitor, mode IdentityMode, queryKeyword string) []entity.CandidateCompetitor {
	seen := make(map[identityKey]struct{}, len(existing))
	for _, s := range existing {
		seen[storedKey(s, mode)] = struct{}{}
	}

	filtered := make([]entity.CandidateCompetitor, 0, len(candidates))
	for _, c := range candidates {
		if !valid(c, mode) {
			continue
		}
		if _, dup := seen[candidateKey(c, mode, queryKeyword)]; dup {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// Format promotes user-selected candidates into fully-populated stored
// records, in the same order and count as the selection. Nested address,
// contact and social objects are always emitted with every string field
// present so the persisted shape stays stable for partial updates. For
// domain-sourced selections pass an empty queryKeyword.
func Format(selected []entity.CandidateCompetitor, queryKeyword string) []entity.StoredCompetitor {
	records := make([]entity.StoredCompetitor, 0, len(selected))
	for _, c := range selected {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		records = append(records, entity.StoredCompetitor{
			ID:             id,
			Name:           c.Name,
			Domain:         c.Domain,
			URL:            c.URL,
			Keyword:        queryKeyword,
			Rank:           c.Rank,
			Status:         entity.StatusNotChecked,
			Products:       []entity.Product{},
			Address:        entity.CompetitorAddress{},
			Contact:        entity.CompetitorContact{},
			SocialNetworks: entity.SocialNetworks{},
		})
	}
	return records
}
