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

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

// Upsert creates or refreshes the candidate keyed on telegram_id. Display
// fields from the latest contact win; the stored id and timestamps are
// written back into the struct.
func (r *candidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, telegram_id, first_name, last_name, username, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (telegram_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			username   = EXCLUDED.username,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	now := time.Now()
	candidate.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		candidate.ID,
		candidate.TelegramID,
		candidate.FirstName,
		candidate.LastName,
		candidate.Username,
		candidate.PhoneNumber,
		now,
	).Scan(&candidate.ID, &candidate.CreatedAt)
}

// GetByTelegramID retrieves a candidate by their Telegram identifier
func (r *candidateRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Candidate, error) {
	query := `
		SELECT id, telegram_id, first_name, last_name, username, phone_number, created_at, updated_at
		FROM candidates
		WHERE telegram_id = $1`

	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&c.ID, &c.TelegramID, &c.FirstName, &c.LastName, &c.Username, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
