package postgres

import (
	"context"
	"errors"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised when the partial unique index on
// (candidate_id) WHERE status = 'IN_PROGRESS' rejects a second active
// interview for the same candidate.
const uniqueViolation = "23505"

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

// CreateIfNoActive inserts the interview. The partial unique index makes
// check-and-create a single atomic operation: a concurrent start for the
// same candidate surfaces as a unique violation, never as two active rows.
func (r *interviewRepo) CreateIfNoActive(ctx context.Context, interview *domain.Interview) error {
	query := `
		INSERT INTO interviews (id, candidate_id, vacancy_id, status, current_question_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	if interview.Status == "" {
		interview.Status = domain.InterviewStatusInProgress
	}
	interview.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		interview.ID,
		interview.CandidateID,
		interview.VacancyID,
		interview.Status,
		interview.CurrentQuestionIndex,
		interview.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrActiveInterview
		}
		return err
	}
	return nil
}

// GetByID retrieves an interview with its candidate and vacancy joined
func (r *interviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	query := `
		SELECT i.id, i.candidate_id, i.vacancy_id, i.status, i.current_question_index,
		       i.match_score, i.summary, i.created_at, i.completed_at,
		       c.id, c.telegram_id, c.first_name, c.last_name, c.username, c.phone_number, c.created_at, c.updated_at,
		       v.id, v.title, v.description, v.requirements, v.salary, v.questions, v.status, v.created_at
		FROM interviews i
		JOIN candidates c ON i.candidate_id = c.id
		JOIN vacancies v ON i.vacancy_id = v.id
		WHERE i.id = $1`

	var iv domain.Interview
	var c domain.Candidate
	var v domain.Vacancy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.CandidateID, &iv.VacancyID, &iv.Status, &iv.CurrentQuestionIndex,
		&iv.MatchScore, &iv.Summary, &iv.CreatedAt, &iv.CompletedAt,
		&c.ID, &c.TelegramID, &c.FirstName, &c.LastName, &c.Username, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt,
		&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary, &v.Questions, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	iv.Candidate = &c
	iv.Vacancy = &v
	return &iv, nil
}

// GetWithRelations retrieves an interview hydrated with candidate, vacancy
// and its answers in question order
func (r *interviewRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	iv, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	answersQuery := `
		SELECT id, interview_id, question_index, question, answer, score, feedback, is_voice, created_at
		FROM answers
		WHERE interview_id = $1
		ORDER BY question_index ASC`

	rows, err := r.db.Query(ctx, answersQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(
			&a.ID, &a.InterviewID, &a.QuestionIndex, &a.Question, &a.Answer, &a.Score, &a.Feedback, &a.IsVoice, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		iv.Answers = append(iv.Answers, a)
	}
	return iv, rows.Err()
}

// FindActiveByCandidate returns the single IN_PROGRESS interview for a
// candidate, with its vacancy joined
func (r *interviewRepo) FindActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.Interview, error) {
	query := `
		SELECT i.id, i.candidate_id, i.vacancy_id, i.status, i.current_question_index,
		       i.match_score, i.summary, i.created_at, i.completed_at,
		       v.id, v.title, v.description, v.requirements, v.salary, v.questions, v.status, v.created_at
		FROM interviews i
		JOIN vacancies v ON i.vacancy_id = v.id
		WHERE i.candidate_id = $1 AND i.status = $2`

	var iv domain.Interview
	var v domain.Vacancy
	err := r.db.QueryRow(ctx, query, candidateID, domain.InterviewStatusInProgress).Scan(
		&iv.ID, &iv.CandidateID, &iv.VacancyID, &iv.Status, &iv.CurrentQuestionIndex,
		&iv.MatchScore, &iv.Summary, &iv.CreatedAt, &iv.CompletedAt,
		&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary, &v.Questions, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	iv.Vacancy = &v
	return &iv, nil
}

// AdvanceQuestion moves the cursor one step as a compare-and-swap. Two
// concurrent advances for the same answer can both read the same index;
// only one update matches, the other gets ErrStaleCursor.
func (r *interviewRepo) AdvanceQuestion(ctx context.Context, id uuid.UUID, fromIndex int) error {
	query := `
		UPDATE interviews
		SET current_question_index = $2 + 1
		WHERE id = $1 AND current_question_index = $2 AND status = $3`

	result, err := r.db.Exec(ctx, query, id, fromIndex, domain.InterviewStatusInProgress)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrStaleCursor
	}
	return nil
}

// Complete transitions IN_PROGRESS -> COMPLETED. The status predicate makes
// the transition terminal and idempotent: a repeat call matches no row.
func (r *interviewRepo) Complete(ctx context.Context, id uuid.UUID, matchScore float64, summary string, completedAt time.Time) error {
	query := `
		UPDATE interviews
		SET status = $2, match_score = $3, summary = $4, completed_at = $5
		WHERE id = $1 AND status = $6`

	result, err := r.db.Exec(ctx, query,
		id, domain.InterviewStatusCompleted, matchScore, summary, completedAt, domain.InterviewStatusInProgress,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FetchCompleted lists completed interviews, best match first
func (r *interviewRepo) FetchCompleted(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	query := `
		SELECT i.id, i.candidate_id, i.vacancy_id, i.status, i.current_question_index,
		       i.match_score, i.summary, i.created_at, i.completed_at,
		       c.id, c.telegram_id, c.first_name, c.last_name, c.username, c.phone_number, c.created_at, c.updated_at,
		       v.id, v.title, v.description, v.requirements, v.salary, v.questions, v.status, v.created_at
		FROM interviews i
		JOIN candidates c ON i.candidate_id = c.id
		JOIN vacancies v ON i.vacancy_id = v.id
		WHERE i.status = $1 AND ($2::float8 IS NULL OR i.match_score >= $2)
		ORDER BY i.match_score DESC
		LIMIT $3`

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx, query, domain.InterviewStatusCompleted, filter.MinScore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		var c domain.Candidate
		var v domain.Vacancy
		if err := rows.Scan(
			&iv.ID, &iv.CandidateID, &iv.VacancyID, &iv.Status, &iv.CurrentQuestionIndex,
			&iv.MatchScore, &iv.Summary, &iv.CreatedAt, &iv.CompletedAt,
			&c.ID, &c.TelegramID, &c.FirstName, &c.LastName, &c.Username, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt,
			&v.ID, &v.Title, &v.Description, &v.Requirements, &v.Salary, &v.Questions, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		iv.Candidate = &c
		iv.Vacancy = &v
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}
