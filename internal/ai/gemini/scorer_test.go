package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func newTestScorer(gen *stubGenerator) *Scorer {
	return NewScorer(gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScoreAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should parse a plain JSON verdict", func(t *testing.T) {
		gen := &stubGenerator{response: `{"score": 8, "feedback": "Good grasp of goroutines."}`}
		scorer := newTestScorer(gen)

		eval, err := scorer.ScoreAnswer(ctx, "What is a goroutine?", "A lightweight thread", "Go")

		require.NoError(t, err)
		assert.Equal(t, 8, eval.Score)
		assert.Equal(t, "Good grasp of goroutines.", eval.Feedback)
		assert.Contains(t, gen.prompt, "What is a goroutine?")
		assert.Contains(t, gen.prompt, "A lightweight thread")
	})

	t.Run("Should strip markdown code fences", func(t *testing.T) {
		gen := &stubGenerator{response: "```json\n{\"score\": 6, \"feedback\": \"Partial.\"}\n```"}
		scorer := newTestScorer(gen)

		eval, err := scorer.ScoreAnswer(ctx, "q", "a", "r")

		require.NoError(t, err)
		assert.Equal(t, 6, eval.Score)
	})

	t.Run("Should coerce loosely typed scores", func(t *testing.T) {
		cases := map[string]int{
			`{"score": "7", "feedback": "f"}`:  7,
			`{"score": 7.6, "feedback": "f"}`:  8,
			`{"score": null, "feedback": "f"}`: 0,
		}
		for response, want := range cases {
			gen := &stubGenerator{response: response}
			eval, err := newTestScorer(gen).ScoreAnswer(ctx, "q", "a", "r")
			require.NoError(t, err, response)
			assert.Equal(t, want, eval.Score, response)
		}
	})

	t.Run("Should substitute missing feedback", func(t *testing.T) {
		gen := &stubGenerator{response: `{"score": 3}`}
		eval, err := newTestScorer(gen).ScoreAnswer(ctx, "q", "a", "r")

		require.NoError(t, err)
		assert.Equal(t, "No feedback provided.", eval.Feedback)
	})

	t.Run("Should fail on non-JSON output", func(t *testing.T) {
		gen := &stubGenerator{response: "I would rate this answer an eight."}
		_, err := newTestScorer(gen).ScoreAnswer(ctx, "q", "a", "r")

		assert.Error(t, err)
	})

	t.Run("Should propagate generator errors", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("quota exceeded")}
		_, err := newTestScorer(gen).ScoreAnswer(ctx, "q", "a", "r")

		assert.ErrorContains(t, err, "quota exceeded")
	})
}

func TestSummarize(t *testing.T) {
	gen := &stubGenerator{response: "Solid backend candidate, recommend next round."}
	scorer := newTestScorer(gen)

	answers := []domain.ScoredAnswer{
		{Question: "Q1", Answer: "A1", Score: 8},
		{Question: "Q2", Answer: "A2", Score: 6},
	}

	summary, err := scorer.Summarize(context.Background(), "Go, PostgreSQL", answers)

	require.NoError(t, err)
	assert.Equal(t, "Solid backend candidate, recommend next round.", summary)
	assert.Contains(t, gen.prompt, "Go, PostgreSQL")
	assert.Contains(t, gen.prompt, "1. Q1")
	assert.Contains(t, gen.prompt, "Score: 6/10")
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		got := extractJSON(tc.in)
		assert.Equal(t, tc.want, strings.TrimSpace(got), tc.in)
	}
}
