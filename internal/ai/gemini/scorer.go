package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go-interview-backend/internal/domain"
)

const (
	scoringTemperature float32 = 0.3
	summaryTemperature float32 = 0.5
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Scorer evaluates single answers and produces the final narrative. It
// implements both domain.AnswerScorer and domain.FinalEvaluator.
type Scorer struct {
	generator contentGenerator
	log       *slog.Logger
}

func NewScorer(generator contentGenerator, log *slog.Logger) *Scorer {
	return &Scorer{generator: generator, log: log}
}

// ScoreAnswer asks the model for a 0-10 score plus short feedback. Any
// transport or parse failure is returned as an error; the caller decides
// the fallback.
func (s *Scorer) ScoreAnswer(ctx context.Context, question, answer, requirements string) (*domain.AnswerEvaluation, error) {
	prompt := fmt.Sprintf(`You are a professional IT recruiter. Evaluate the candidate's answer.

Question: %s
Candidate's answer: %s
Vacancy requirements: %s

Respond in the following format (JSON only):
{
  "score": integer between 0 and 10,
  "feedback": "short analysis and mistakes, if any"
}

The response must be JSON only, with no other text.`, question, answer, requirements)

	raw, err := s.generator.GenerateContent(ctx, prompt, scoringTemperature)
	if err != nil {
		return nil, err
	}

	s.log.Debug("answer evaluation response", "length", len(raw))

	evaluation, err := parseEvaluation(raw)
	if err != nil {
		return nil, err
	}
	return evaluation, nil
}

// Summarize produces the final narrative evaluation over the ordered
// (question, answer, score) triples.
func (s *Scorer) Summarize(ctx context.Context, requirements string, answers []domain.ScoredAnswer) (string, error) {
	var sb strings.Builder
	for i, a := range answers {
		fmt.Fprintf(&sb, "%d. %s\nAnswer: %s\nScore: %d/10\n\n", i+1, a.Question, a.Answer, a.Score)
	}

	prompt := fmt.Sprintf(`You are a professional HR manager. Analyze the candidate's interview results below.

Vacancy requirements: %s

Candidate's answers:
%s
Provide an overall analysis and recommendations (short and specific).`, requirements, sb.String())

	return s.generator.GenerateContent(ctx, prompt, summaryTemperature)
}

// parseEvaluation tolerates sloppy model output: fenced code blocks and
// loosely typed score values.
func parseEvaluation(raw string) (*domain.AnswerEvaluation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	score := coerceInt(data["score"])
	feedback := coerceString(data["feedback"])
	if feedback == "" {
		feedback = "No feedback provided."
	}

	return &domain.AnswerEvaluation{Score: score, Feedback: feedback}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0
		}
		return int(math.Round(val))
	case int:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f))
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
