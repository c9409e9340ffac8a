package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Vacancy status constants
const (
	VacancyStatusActive   = "ACTIVE"
	VacancyStatusInactive = "INACTIVE"
)

// Vacancy is a job posting with its ordered interview questions. Read-only
// to the orchestrator; answers snapshot the question text so later edits do
// not rewrite history.
type Vacancy struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"` // free text, used as scoring context
	Salary       *string   `json:"salary,omitempty"`
	Questions    []string  `json:"questions"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SalaryLabel returns the salary for display, falling back to a default.
func (v *Vacancy) SalaryLabel() string {
	if v.Salary == nil || *v.Salary == "" {
		return "Negotiable"
	}
	return *v.Salary
}

// VacancyDraft is the admin wizard's working copy, committed as a Vacancy
// only on explicit finalization.
type VacancyDraft struct {
	Title        string   `validate:"required,min=3"`
	Description  string   `validate:"required"`
	Requirements string   `validate:"required"`
	Salary       string   `validate:"-"` // empty means negotiable
	Questions    []string `validate:"min=1,dive,required"`
}

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *Vacancy) error
	GetByID(ctx context.Context, id uuid.UUID) (*Vacancy, error)
	FetchActive(ctx context.Context) ([]Vacancy, error)
	FetchAll(ctx context.Context) ([]Vacancy, error)
}
