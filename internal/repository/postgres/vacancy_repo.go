package postgres

import (
	"context"
	"errors"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vacancyRepo struct {
	db *pgxpool.Pool
}

// NewVacancyRepository creates a new vacancy repository
func NewVacancyRepository(db *pgxpool.Pool) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

// Create inserts a new vacancy with its ordered question list
func (r *vacancyRepo) Create(ctx context.Context, vacancy *domain.Vacancy) error {
	query := `
		INSERT INTO vacancies (id, title, description, requirements, salary, questions, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if vacancy.ID == uuid.Nil {
		vacancy.ID = uuid.New()
	}
	if vacancy.Status == "" {
		vacancy.Status = domain.VacancyStatusActive
	}
	vacancy.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		vacancy.ID,
		vacancy.Title,
		vacancy.Description,
		vacancy.Requirements,
		vacancy.Salary,
		vacancy.Questions,
		vacancy.Status,
		vacancy.CreatedAt,
	)
	return err
}

// GetByID retrieves a vacancy by ID
func (r *vacancyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error) {
	query := `
		SELECT id, title, description, requirements, salary, questions, status, created_at
		FROM vacancies
		WHERE id = $1`

	var v domain.Vacancy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary, &v.Questions, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FetchActive retrieves all vacancies candidates can currently apply to
func (r *vacancyRepo) FetchActive(ctx context.Context) ([]domain.Vacancy, error) {
	return r.fetch(ctx, `
		SELECT id, title, description, requirements, salary, questions, status, created_at
		FROM vacancies
		WHERE status = $1
		ORDER BY created_at DESC`, domain.VacancyStatusActive)
}

// FetchAll retrieves every vacancy regardless of status
func (r *vacancyRepo) FetchAll(ctx context.Context) ([]domain.Vacancy, error) {
	return r.fetch(ctx, `
		SELECT id, title, description, requirements, salary, questions, status, created_at
		FROM vacancies
		ORDER BY created_at DESC`)
}

func (r *vacancyRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Vacancy, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vacancies []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary, &v.Questions, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}
