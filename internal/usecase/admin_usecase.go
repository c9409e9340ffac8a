package usecase

import (
	"context"
	"errors"
	"strings"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type adminUsecase struct {
	statsRepo     domain.StatsRepository
	interviewRepo domain.InterviewRepository
	vacancyRepo   domain.VacancyRepository
	renderer      domain.ReportRenderer
	validate      *validator.Validate
}

// NewAdminUsecase creates the administrative usecase
func NewAdminUsecase(
	statsRepo domain.StatsRepository,
	interviewRepo domain.InterviewRepository,
	vacancyRepo domain.VacancyRepository,
	renderer domain.ReportRenderer,
	validate *validator.Validate,
) domain.AdminUsecase {
	return &adminUsecase{
		statsRepo:     statsRepo,
		interviewRepo: interviewRepo,
		vacancyRepo:   vacancyRepo,
		renderer:      renderer,
		validate:      validate,
	}
}

// GetStats returns aggregate counters for the dashboard
func (u *adminUsecase) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats, err := u.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

// ListCompleted returns completed interviews matching the closed filter set
func (u *adminUsecase) ListCompleted(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	if filter.Limit < 1 || filter.Limit > 50 {
		filter.Limit = 10
	}

	interviews, err := u.interviewRepo.FetchCompleted(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}

// ListVacancies returns every vacancy regardless of status
func (u *adminUsecase) ListVacancies(ctx context.Context) ([]domain.Vacancy, error) {
	vacancies, err := u.vacancyRepo.FetchAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return vacancies, nil
}

// CreateVacancy validates the finished draft and commits it as an ACTIVE
// vacancy. An invalid draft is rejected without touching the store.
func (u *adminUsecase) CreateVacancy(ctx context.Context, draft *domain.VacancyDraft) (*domain.Vacancy, error) {
	if err := u.validate.Struct(draft); err != nil {
		return nil, apperror.BadRequest("Invalid vacancy: " + err.Error())
	}

	vacancy := &domain.Vacancy{
		Title:        strings.TrimSpace(draft.Title),
		Description:  strings.TrimSpace(draft.Description),
		Requirements: strings.TrimSpace(draft.Requirements),
		Questions:    draft.Questions,
		Status:       domain.VacancyStatusActive,
	}
	if salary := strings.TrimSpace(draft.Salary); salary != "" {
		vacancy.Salary = &salary
	}

	if err := u.vacancyRepo.Create(ctx, vacancy); err != nil {
		return nil, apperror.Internal(err)
	}
	return vacancy, nil
}

// BuildReport renders the PDF report for a completed (or in-flight)
// interview, hydrated with candidate, vacancy and answers
func (u *adminUsecase) BuildReport(ctx context.Context, interviewID uuid.UUID) ([]byte, error) {
	interview, err := u.interviewRepo.GetWithRelations(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, apperror.Internal(err)
	}

	report, err := u.renderer.Render(interview)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return report, nil
}
