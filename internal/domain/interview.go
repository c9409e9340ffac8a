package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")

	// ErrActiveInterview is returned when a candidate already has an
	// IN_PROGRESS interview. At most one may exist per candidate; the
	// store enforces this with a partial unique index.
	ErrActiveInterview = errors.New("candidate already has an active interview")

	// ErrStaleCursor is returned when a compare-and-swap advance of the
	// question cursor loses a race with a concurrent update.
	ErrStaleCursor = errors.New("question cursor changed concurrently")
)

// Interview status constants. The only transition is
// IN_PROGRESS -> COMPLETED; COMPLETED is terminal. There is no abandoned
// state: a candidate who stops responding leaves the interview IN_PROGRESS
// indefinitely.
const (
	InterviewStatusInProgress = "IN_PROGRESS"
	InterviewStatusCompleted  = "COMPLETED"
)

// Interview is one candidate's attempt at one vacancy's question sequence.
type Interview struct {
	ID                   uuid.UUID  `json:"id"`
	CandidateID          uuid.UUID  `json:"candidate_id"`
	VacancyID            uuid.UUID  `json:"vacancy_id"`
	Status               string     `json:"status"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	MatchScore           *float64   `json:"match_score,omitempty"` // 0-100, set at completion
	Summary              *string    `json:"summary,omitempty"`     // final narrative evaluation
	CreatedAt            time.Time  `json:"created_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`

	// Joined data, populated by hydrating queries
	Candidate *Candidate `json:"candidate,omitempty"`
	Vacancy   *Vacancy   `json:"vacancy,omitempty"`
	Answers   []Answer   `json:"answers,omitempty"`
}

// InterviewFilter is the closed set of recognized filters for completed
// interview listings.
type InterviewFilter struct {
	MinScore *float64
	Limit    int
}

type InterviewRepository interface {
	// CreateIfNoActive atomically creates the interview unless the
	// candidate already has one IN_PROGRESS, in which case it returns
	// ErrActiveInterview and writes nothing.
	CreateIfNoActive(ctx context.Context, interview *Interview) error

	// GetByID returns the interview with its vacancy joined.
	GetByID(ctx context.Context, id uuid.UUID) (*Interview, error)

	// GetWithRelations returns the interview hydrated with candidate,
	// vacancy and ordered answers.
	GetWithRelations(ctx context.Context, id uuid.UUID) (*Interview, error)

	// FindActiveByCandidate returns the IN_PROGRESS interview for the
	// candidate, or ErrNotFound.
	FindActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*Interview, error)

	// AdvanceQuestion moves the cursor from fromIndex to fromIndex+1 as a
	// compare-and-swap. Returns ErrStaleCursor when the row no longer
	// holds fromIndex.
	AdvanceQuestion(ctx context.Context, id uuid.UUID, fromIndex int) error

	// Complete transitions the interview to COMPLETED with its final
	// score and narrative. Only an IN_PROGRESS row is updated; a second
	// call finds nothing to change and returns ErrNotFound.
	Complete(ctx context.Context, id uuid.UUID, matchScore float64, summary string, completedAt time.Time) error

	// FetchCompleted lists completed interviews with candidate and
	// vacancy joined, best score first.
	FetchCompleted(ctx context.Context, filter InterviewFilter) ([]Interview, error)
}

// InterviewUsecase is the orchestration engine: admission, question
// sequencing, answer recording, completion and outcome dispatch.
type InterviewUsecase interface {
	StartSession(ctx context.Context, profile CandidateProfile, vacancyID uuid.UUID) (*Interview, error)
	GetActiveSession(ctx context.Context, telegramID int64) (*Interview, error)
	DeliverNextQuestion(ctx context.Context, interviewID uuid.UUID) error
	RecordAnswer(ctx context.Context, interviewID uuid.UUID, answerText string, isVoice bool) error
	CompleteSession(ctx context.Context, interviewID uuid.UUID) error
}

// CandidateProfile carries the channel-level identity used to resolve or
// create a Candidate at admission time.
type CandidateProfile struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
}
