package domain

import (
	"context"

	"github.com/google/uuid"
)

// Stats is the aggregate view for the administrative surface.
type Stats struct {
	TotalCandidates     int64   `json:"total_candidates"`
	TotalInterviews     int64   `json:"total_interviews"`
	CompletedInterviews int64   `json:"completed_interviews"`
	ActiveVacancies     int64   `json:"active_vacancies"`
	AverageMatchScore   float64 `json:"average_match_score"`
}

type StatsRepository interface {
	GetStats(ctx context.Context) (*Stats, error)
}

// AdminUsecase covers the administrative read/write glue around the
// orchestrator: vacancy authoring, candidate review and statistics.
type AdminUsecase interface {
	GetStats(ctx context.Context) (*Stats, error)
	ListCompleted(ctx context.Context, filter InterviewFilter) ([]Interview, error)
	ListVacancies(ctx context.Context) ([]Vacancy, error)
	CreateVacancy(ctx context.Context, draft *VacancyDraft) (*Vacancy, error)
	BuildReport(ctx context.Context, interviewID uuid.UUID) ([]byte, error)
}
