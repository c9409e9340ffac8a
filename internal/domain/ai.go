package domain

import "context"

// AnswerEvaluation is the scorer's verdict on a single answer.
type AnswerEvaluation struct {
	Score    int    `json:"score"` // 0-10
	Feedback string `json:"feedback"`
}

// AnswerScorer scores one answer against the vacancy requirements.
// Implementations must tolerate malformed model output; callers treat any
// error as a scoring failure and substitute a zero score.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, question, answer, requirements string) (*AnswerEvaluation, error)
}

// ScoredAnswer is one (question, answer, score) triple passed to the final
// evaluator.
type ScoredAnswer struct {
	Question string
	Answer   string
	Score    int
}

// FinalEvaluator produces the narrative evaluation for a finished
// interview. Failures degrade to a placeholder narrative; they never block
// completion.
type FinalEvaluator interface {
	Summarize(ctx context.Context, requirements string, answers []ScoredAnswer) (string, error)
}

// Transcriber turns a voice recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
