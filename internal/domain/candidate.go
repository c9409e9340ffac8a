package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Candidate is a person identified by their Telegram account. Created on
// first contact; display fields are refreshed on every /start.
type Candidate struct {
	ID          uuid.UUID `json:"id"`
	TelegramID  int64     `json:"telegram_id"` // unique, doubles as the private chat id
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Username    *string   `json:"username,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CandidateRepository interface {
	// Upsert creates the candidate keyed on TelegramID or refreshes the
	// display fields of an existing row. The stored ID is written back.
	Upsert(ctx context.Context, candidate *Candidate) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*Candidate, error)
}
