package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kurortly/search-backend/internal/domain/entities"
	"github.com/kurortly/search-backend/internal/domain/repositories"
	"github.com/kurortly/search-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kurortly/search-backend/pkg/errors"
)

// DictionaryAdapter implements the DictionaryRepository interface
type DictionaryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDictionaryAdapter creates a new dictionary adapter
func NewDictionaryAdapter(client *postgres.Client) repositories.DictionaryRepository {
	return &DictionaryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func dictWhere(ds *goqu.SelectDataset, q repositories.DictionaryQuery) *goqu.SelectDataset {
	if q.CandidateIDs != nil {
		ds = ds.Where(goqu.Ex{"id": q.CandidateIDs})
	}
	if q.KeywordLike != "" {
		pattern := "%" + q.KeywordLike + "%"
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(name_ru)").Like(pattern),
			goqu.L("LOWER(name_en)").Like(pattern),
		))
	}
	return ds
}

func dictEmpty(q repositories.DictionaryQuery) bool {
	return q.CandidateIDs != nil && len(q.CandidateIDs) == 0
}

type dictRow struct {
	ID            int64
	Alias         string
	NameRU        string
	NameEN        string
	DescriptionRU string
	DescriptionEN string
}

func (a *DictionaryAdapter) searchDict(ctx context.Context, table string, q repositories.DictionaryQuery) ([]dictRow, error) {
	if dictEmpty(q) {
		return nil, nil
	}

	ds := dictWhere(a.db.From(table), q).
		Select("id", "alias", "name_ru", "name_en", "description_ru", "description_en").
		Order(goqu.C("id").Asc())
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit)).Offset(uint(q.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build dictionary search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search dictionary", err)
	}
	defer rows.Close()

	result := []dictRow{}
	for rows.Next() {
		var row dictRow
		var descRU, descEN sql.NullString
		if err := rows.Scan(&row.ID, &row.Alias, &row.NameRU, &row.NameEN, &descRU, &descEN); err != nil {
			return nil, apperrors.NewInternalError("failed to scan dictionary row", err)
		}
		row.DescriptionRU = descRU.String
		row.DescriptionEN = descEN.String
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating dictionary rows", err)
	}

	return result, nil
}

func (a *DictionaryAdapter) countDict(ctx context.Context, table string, q repositories.DictionaryQuery) (int, error) {
	if dictEmpty(q) {
		return 0, nil
	}

	query, args, err := dictWhere(a.db.From(table), q).Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build dictionary count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count dictionary rows", err)
	}

	return count, nil
}

// SearchProfiles retrieves medical profiles matching the query
func (a *DictionaryAdapter) SearchProfiles(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.MedicalProfile, error) {
	rows, err := a.searchDict(ctx, "medical_profiles", q)
	if err != nil {
		return nil, err
	}
	profiles := make([]*entities.MedicalProfile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, &entities.MedicalProfile{
			ID: r.ID, Alias: r.Alias, NameRU: r.NameRU, NameEN: r.NameEN,
			DescriptionRU: r.DescriptionRU, DescriptionEN: r.DescriptionEN,
		})
	}
	return profiles, nil
}

// CountProfiles returns the number of matching medical profiles
func (a *DictionaryAdapter) CountProfiles(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	return a.countDict(ctx, "medical_profiles", q)
}

// SearchDiseases retrieves diseases matching the query
func (a *DictionaryAdapter) SearchDiseases(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.Disease, error) {
	rows, err := a.searchDict(ctx, "diseases", q)
	if err != nil {
		return nil, err
	}
	diseases := make([]*entities.Disease, 0, len(rows))
	for _, r := range rows {
		diseases = append(diseases, &entities.Disease{
			ID: r.ID, Alias: r.Alias, NameRU: r.NameRU, NameEN: r.NameEN,
			DescriptionRU: r.DescriptionRU, DescriptionEN: r.DescriptionEN,
		})
	}
	return diseases, nil
}

// CountDiseases returns the number of matching diseases
func (a *DictionaryAdapter) CountDiseases(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	return a.countDict(ctx, "diseases", q)
}

// SearchTherapies retrieves therapies matching the query
func (a *DictionaryAdapter) SearchTherapies(ctx context.Context, q repositories.DictionaryQuery) ([]*entities.Therapy, error) {
	rows, err := a.searchDict(ctx, "therapies", q)
	if err != nil {
		return nil, err
	}
	therapies := make([]*entities.Therapy, 0, len(rows))
	for _, r := range rows {
		therapies = append(therapies, &entities.Therapy{
			ID: r.ID, Alias: r.Alias, NameRU: r.NameRU, NameEN: r.NameEN,
			DescriptionRU: r.DescriptionRU, DescriptionEN: r.DescriptionEN,
		})
	}
	return therapies, nil
}

// CountTherapies returns the number of matching therapies
func (a *DictionaryAdapter) CountTherapies(ctx context.Context, q repositories.DictionaryQuery) (int, error) {
	return a.countDict(ctx, "therapies", q)
}

// ProfileIDsByAliases returns profile IDs for the given aliases
func (a *DictionaryAdapter) ProfileIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "medical_profiles", aliases)
}

// TherapyIDsByAliases returns therapy IDs for the given aliases
func (a *DictionaryAdapter) TherapyIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "therapies", aliases)
}

// DiseaseIDsByAliases returns disease IDs for the given aliases
func (a *DictionaryAdapter) DiseaseIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "diseases", aliases)
}

// ServiceIDsByAliases returns service IDs for the given aliases
func (a *DictionaryAdapter) ServiceIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "services", aliases)
}

// MoodIDsByAliases returns mood IDs for the given aliases
func (a *DictionaryAdapter) MoodIDsByAliases(ctx context.Context, aliases []string) ([]int64, error) {
	return a.idsByAliases(ctx, "moods", aliases)
}

// MoodsByIDs retrieves moods by ID
func (a *DictionaryAdapter) MoodsByIDs(ctx context.Context, ids []int64) ([]*entities.Mood, error) {
	if len(ids) == 0 {
		return []*entities.Mood{}, nil
	}

	query, args, err := a.db.From("moods").
		Select("id", "alias", "name_ru", "name_en").
		Where(goqu.Ex{"id": ids}).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build mood query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query moods", err)
	}
	defer rows.Close()

	moods := []*entities.Mood{}
	for rows.Next() {
		m := &entities.Mood{}
		if err := rows.Scan(&m.ID, &m.Alias, &m.NameRU, &m.NameEN); err != nil {
			return nil, apperrors.NewInternalError("failed to scan mood", err)
		}
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating moods", err)
	}

	return moods, nil
}

func (a *DictionaryAdapter) idsByAliases(ctx context.Context, table string, aliases []string) ([]int64, error) {
	if len(aliases) == 0 {
		return nil, nil
	}

	query, args, err := a.db.From(table).
		Select("id").
		Where(goqu.Ex{"alias": aliases}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build alias lookup query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up aliases", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating ids", err)
	}

	return ids, nil
}
