package postgres

import (
	"context"

	"go-interview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepo struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new statistics repository
func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &statsRepo{db: db}
}

// GetStats aggregates dashboard counters in a single round trip
func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM interviews),
			(SELECT COUNT(*) FROM interviews WHERE status = $1),
			(SELECT COUNT(*) FROM vacancies WHERE status = $2),
			COALESCE((SELECT AVG(match_score) FROM interviews WHERE status = $1), 0)`

	var stats domain.Stats
	err := r.db.QueryRow(ctx, query,
		domain.InterviewStatusCompleted,
		domain.VacancyStatusActive,
	).Scan(
		&stats.TotalCandidates,
		&stats.TotalInterviews,
		&stats.CompletedInterviews,
		&stats.ActiveVacancies,
		&stats.AverageMatchScore,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
