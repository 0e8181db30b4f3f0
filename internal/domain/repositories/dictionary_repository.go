package repositories

import (
	"context"

	"github.com/kurortly/search-backend/internal/domain/entities"
)

// DictionaryQuery restricts a dictionary (profile/disease/therapy) search
type DictionaryQuery struct {
	CandidateIDs []int64
	KeywordLike  string
	Limit        int
	Offset       int
}

// DictionaryRepository provides relational access to the medical dictionaries
type DictionaryRepository interface {
	SearchProfiles(ctx context.Context, q DictionaryQuery) ([]*entities.MedicalProfile, error)
	CountProfiles(ctx context.Context, q DictionaryQuery) (int, error)
	SearchDiseases(ctx context.Context, q DictionaryQuery) ([]*entities.Disease, error)
	CountDiseases(ctx context.Context, q DictionaryQuery) (int, error)
	SearchTherapies(ctx context.Context, q DictionaryQuery) ([]*entities.Therapy, error)
	CountTherapies(ctx context.Context, q DictionaryQuery) (int, error)

	ProfileIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	TherapyIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	DiseaseIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	ServiceIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)
	MoodIDsByAliases(ctx context.Context, aliases []string) ([]int64, error)

	MoodsByIDs(ctx context.Context, ids []int64) ([]*entities.Mood, error)
}
