package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/seo-radar/api/internal/dto"
	"github.com/octobees/seo-radar/api/internal/entity"
)

var (
	// ErrCompanyNotFound indicates no company matches the id within the user's scope.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrSEORevisionConflict indicates the seo document moved since it was read.
	ErrSEORevisionConflict = errors.New("seo document was modified concurrently")
)

// CompaniesRepository describes persistence operations for companies. Every
// read and write is scoped to the owning user.
type CompaniesRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Company, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Company, error)
	PartialUpdate(ctx context.Context, userID, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error)
	ReplaceSEOList(ctx context.Context, userID, id uuid.UUID, selector entity.ListSelector, list []entity.StoredCompetitor, expectedRevision int64) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgxPool is the subset of pgxpool.Pool the repository needs, extracted so
// tests can substitute stubs.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `
        id,
        user_id,
        name,
        website,
        country,
        address,
        contact,
        social_networks,
        tracked_countries,
        general_keywords,
        general_domains,
        general_services,
        seo,
        seo_revision,
        created_at,
        updated_at
`

// Create inserts a new company and assigns its id.
func (r *PGXCompaniesRepository) Create(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	query := `
        INSERT INTO companies (
            user_id, name, website, country,
            address, contact, social_networks,
            tracked_countries, general_keywords, general_domains, general_services,
            seo
        ) VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8::jsonb, $9::jsonb, $10::jsonb, $11::jsonb, $12::jsonb)
        RETURNING id, seo_revision, created_at, updated_at;
    `

	args, err := jsonArgs(
		company.Address,
		company.Contact,
		company.SocialNetworks,
		emptyIfNil(company.TrackedCountries),
		emptyIfNil(company.GeneralKeywords),
		emptyIfNil(company.GeneralDomains),
		emptyIfNil(company.GeneralServices),
		normalizedSEO(company.SEO),
	)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, query,
		append([]any{company.UserID, company.Name, company.Website, company.Country}, args...)...,
	)
	if err := row.Scan(&company.ID, &company.SEORevision, &company.CreatedAt, &company.UpdatedAt); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}

	return nil
}

// ListByUser returns all companies owned by the user, newest first.
func (r *PGXCompaniesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []entity.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

// GetByID fetches a single company within the user's scope.
func (r *PGXCompaniesRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// PartialUpdate merges the given top-level fields. A nested object that is
// present in the patch replaces its previous value wholesale; fields not in
// the patch are left untouched. Patching the seo document bumps its revision.
func (r *PGXCompaniesRepository) PartialUpdate(ctx context.Context, userID, id uuid.UUID, patch dto.UpdateCompanyRequest) (*entity.Company, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	addText := func(column string, value *string) {
		if value == nil {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, *value)
		idx++
	}
	addJSON := func(column string, value any) error {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", column, err)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d::jsonb", column, idx))
		args = append(args, string(payload))
		idx++
		return nil
	}

	addText("name", patch.Name)
	addText("website", patch.Website)
	addText("country", patch.Country)

	jsonPatches := []struct {
		column  string
		present bool
		value   any
	}{
		{"address", patch.Address != nil, patch.Address},
		{"contact", patch.Contact != nil, patch.Contact},
		{"social_networks", patch.SocialNetworks != nil, patch.SocialNetworks},
		{"tracked_countries", patch.TrackedCountries != nil, patch.TrackedCountries},
		{"general_keywords", patch.GeneralKeywords != nil, patch.GeneralKeywords},
		{"general_domains", patch.GeneralDomains != nil, patch.GeneralDomains},
		{"general_services", patch.GeneralServices != nil, patch.GeneralServices},
	}
	for _, jp := range jsonPatches {
		if !jp.present {
			continue
		}
		if err := addJSON(jp.column, jp.value); err != nil {
			return nil, err
		}
	}

	if patch.SEO != nil {
		if err := addJSON("seo", normalizedSEO(*patch.SEO)); err != nil {
			return nil, err
		}
		setClauses = append(setClauses, "seo_revision = seo_revision + 1")
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, userID, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id, userID)

	query := fmt.Sprintf(
		`UPDATE companies SET %s WHERE id = $%d AND user_id = $%d RETURNING `+companyColumns,
		strings.Join(setClauses, ", "), idx, idx+1,
	)

	company, err := scanCompany(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return company, nil
}

// ReplaceSEOList writes the full list back to seo.<selector>, conditional on
// the seo document not having moved since expectedRevision was read. Returns
// the new revision on success.
func (r *PGXCompaniesRepository) ReplaceSEOList(ctx context.Context, userID, id uuid.UUID, selector entity.ListSelector, list []entity.StoredCompetitor, expectedRevision int64) (int64, error) {
	if !selector.Valid() {
		return 0, fmt.Errorf("unknown list selector %q", selector)
	}
	if list == nil {
		list = []entity.StoredCompetitor{}
	}

	payload, err := json.Marshal(list)
	if err != nil {
		return 0, fmt.Errorf("marshal competitor list: %w", err)
	}

	query := `
        UPDATE companies
        SET seo = jsonb_set(seo, $1, $2::jsonb, true),
            seo_revision = seo_revision + 1,
            updated_at = NOW()
        WHERE id = $3 AND user_id = $4 AND seo_revision = $5
        RETURNING seo_revision;
    `

	var newRevision int64
	err = r.pool.QueryRow(ctx, query, []string{string(selector)}, string(payload), id, userID, expectedRevision).Scan(&newRevision)
	if err == nil {
		return newRevision, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("replace seo list: %w", err)
	}

	// No row matched: either the company is gone or the revision moved.
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1 AND user_id = $2)`, id, userID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check company existence: %w", err)
	}
	if !exists {
		return 0, ErrCompanyNotFound
	}
	return 0, ErrSEORevisionConflict
}

// Delete removes a company. Sub-entities live inside the row's JSONB
// documents, so nothing survives the delete.
func (r *PGXCompaniesRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var (
		c                entity.Company
		address          []byte
		contact          []byte
		socialNetworks   []byte
		trackedCountries []byte
		generalKeywords  []byte
		generalDomains   []byte
		generalServices  []byte
		seo              []byte
	)

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Website,
		&c.Country,
		&address,
		&contact,
		&socialNetworks,
		&trackedCountries,
		&generalKeywords,
		&generalDomains,
		&generalServices,
		&seo,
		&c.SEORevision,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}

	docs := []struct {
		raw  []byte
		dest any
	}{
		{address, &c.Address},
		{contact, &c.Contact},
		{socialNetworks, &c.SocialNetworks},
		{trackedCountries, &c.TrackedCountries},
		{generalKeywords, &c.GeneralKeywords},
		{generalDomains, &c.GeneralDomains},
		{generalServices, &c.GeneralServices},
		{seo, &c.SEO},
	}
	for _, doc := range docs {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dest); err != nil {
			return nil, fmt.Errorf("unmarshal company document: %w", err)
		}
	}

	return &c, nil
}

// normalizedSEO guarantees the persisted document always carries all four
// lists, so jsonb_set paths resolve and clients see a stable shape.
func normalizedSEO(seo entity.SEOProfile) entity.SEOProfile {
	if seo.Keywords == nil {
		seo.Keywords = []entity.SEOKeyword{}
	}
	if seo.Competitors == nil {
		seo.Competitors = []entity.StoredCompetitor{}
	}
	if seo.CompetitorsByKeyword == nil {
		seo.CompetitorsByKeyword = []entity.StoredCompetitor{}
	}
	if seo.CompetitorsByDomain == nil {
		seo.CompetitorsByDomain = []entity.StoredCompetitor{}
	}
	return seo
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func jsonArgs(values ...any) ([]any, error) {
	args := make([]any, 0, len(values))
	for _, value := range values {
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal company document: %w", err)
		}
		args = append(args, string(payload))
	}
	return args, nil
}
