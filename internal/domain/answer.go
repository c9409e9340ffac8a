package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Answer is one recorded response. Append-only: never mutated or deleted
// after creation. Question text is snapshotted from the vacancy at answer
// time so the audit trail survives later vacancy edits.
type Answer struct {
	ID            uuid.UUID `json:"id"`
	InterviewID   uuid.UUID `json:"interview_id"`
	QuestionIndex int       `json:"question_index"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Score         *int      `json:"score,omitempty"` // 0-10, nil until scored
	Feedback      string    `json:"feedback"`
	IsVoice       bool      `json:"is_voice"`
	CreatedAt     time.Time `json:"created_at"`
}

// ScoreValue returns the score, treating an unscored answer as 0.
func (a *Answer) ScoreValue() int {
	if a.Score == nil {
		return 0
	}
	return *a.Score
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *Answer) error
	GetByInterviewID(ctx context.Context, interviewID uuid.UUID) ([]Answer, error)
	CountByInterviewID(ctx context.Context, interviewID uuid.UUID) (int, error)
}
