package postgres

import (
	"context"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type answerRepo struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *pgxpool.Pool) domain.AnswerRepository {
	return &answerRepo{db: db}
}

// Create appends a new answer row. Answers are never updated or deleted.
func (r *answerRepo) Create(ctx context.Context, answer *domain.Answer) error {
	query := `
		INSERT INTO answers (id, interview_id, question_index, question, answer, score, feedback, is_voice, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	answer.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		answer.ID,
		answer.InterviewID,
		answer.QuestionIndex,
		answer.Question,
		answer.Answer,
		answer.Score,
		answer.Feedback,
		answer.IsVoice,
		answer.CreatedAt,
	)
	return err
}

// GetByInterviewID retrieves all answers for an interview in question order
func (r *answerRepo) GetByInterviewID(ctx context.Context, interviewID uuid.UUID) ([]domain.Answer, error) {
	query := `
		SELECT id, interview_id, question_index, question, answer, score, feedback, is_voice, created_at
		FROM answers
		WHERE interview_id = $1
		ORDER BY question_index ASC`

	rows, err := r.db.Query(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(
			&a.ID, &a.InterviewID, &a.QuestionIndex, &a.Question, &a.Answer, &a.Score, &a.Feedback, &a.IsVoice, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// CountByInterviewID counts persisted answers for an interview
func (r *answerRepo) CountByInterviewID(ctx context.Context, interviewID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM answers WHERE interview_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, interviewID).Scan(&count)
	return count, err
}
