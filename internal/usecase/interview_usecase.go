package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/google/uuid"
)

const (
	scoringFailedFeedback = "Automatic evaluation failed; answer kept for manual review."
	summaryUnavailable    = "Final evaluation is not available."

	completedMessage = "✅ Interview finished!\n\n" +
		"Your answers are being reviewed. We will get back to you soon.\n\n" +
		"Thank you! 🙏"
)

type interviewUsecase struct {
	candidateRepo domain.CandidateRepository
	vacancyRepo   domain.VacancyRepository
	interviewRepo domain.InterviewRepository
	answerRepo    domain.AnswerRepository
	scorer        domain.AnswerScorer
	evaluator     domain.FinalEvaluator
	messenger     domain.Messenger
	renderer      domain.ReportRenderer
	notifier      domain.Notifier
	log           *slog.Logger

	// Serializes mutating operations per interview within this process.
	// The store-level conditional writes remain the authoritative guard
	// across processes.
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewInterviewUsecase creates the interview orchestration usecase
func NewInterviewUsecase(
	candidateRepo domain.CandidateRepository,
	vacancyRepo domain.VacancyRepository,
	interviewRepo domain.InterviewRepository,
	answerRepo domain.AnswerRepository,
	scorer domain.AnswerScorer,
	evaluator domain.FinalEvaluator,
	messenger domain.Messenger,
	renderer domain.ReportRenderer,
	notifier domain.Notifier,
	log *slog.Logger,
) domain.InterviewUsecase {
	return &interviewUsecase{
		candidateRepo: candidateRepo,
		vacancyRepo:   vacancyRepo,
		interviewRepo: interviewRepo,
		answerRepo:    answerRepo,
		scorer:        scorer,
		evaluator:     evaluator,
		messenger:     messenger,
		renderer:      renderer,
		notifier:      notifier,
		log:           log,
	}
}

// StartSession admits a candidate into a new interview. The candidate is
// resolved or created by their channel identifier; admission is rejected
// with domain.ErrActiveInterview while another interview is IN_PROGRESS.
func (uc *interviewUsecase) StartSession(ctx context.Context, profile domain.CandidateProfile, vacancyID uuid.UUID) (*domain.Interview, error) {
	candidate := &domain.Candidate{
		TelegramID: profile.TelegramID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
	}
	if profile.Username != "" {
		candidate.Username = &profile.Username
	}

	if err := uc.candidateRepo.Upsert(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}

	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}

	interview := &domain.Interview{
		CandidateID:          candidate.ID,
		VacancyID:            vacancy.ID,
		Status:               domain.InterviewStatusInProgress,
		CurrentQuestionIndex: 0,
	}

	// Check-and-create is a single atomic store operation; a losing
	// concurrent start surfaces here as ErrActiveInterview with no row
	// written and the existing session untouched.
	if err := uc.interviewRepo.CreateIfNoActive(ctx, interview); err != nil {
		if errors.Is(err, domain.ErrActiveInterview) {
			return nil, domain.ErrActiveInterview
		}
		return nil, apperror.Internal(err)
	}

	interview.Candidate = candidate
	interview.Vacancy = vacancy

	uc.log.Info("interview started",
		"interview_id", interview.ID,
		"candidate_telegram_id", candidate.TelegramID,
		"vacancy_id", vacancy.ID,
	)
	return interview, nil
}

// GetActiveSession resolves the candidate's IN_PROGRESS interview.
// Read-only; returns domain.ErrNotFound when there is none.
func (uc *interviewUsecase) GetActiveSession(ctx context.Context, telegramID int64) (*domain.Interview, error) {
	candidate, err := uc.candidateRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return uc.interviewRepo.FindActiveByCandidate(ctx, candidate.ID)
}

// DeliverNextQuestion sends the question at the current cursor, or
// delegates to completion once the sequence is exhausted. Performs no
// mutation itself, so re-invocation after a crash simply re-sends the
// current question.
func (uc *interviewUsecase) DeliverNextQuestion(ctx context.Context, interviewID uuid.UUID) error {
	interview, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return err
	}

	if interview.Status != domain.InterviewStatusInProgress {
		return nil
	}

	questions := interview.Vacancy.Questions
	index := interview.CurrentQuestionIndex

	if index >= len(questions) {
		return uc.CompleteSession(ctx, interviewID)
	}

	text := fmt.Sprintf("❓ Question %d/%d:\n\n%s", index+1, len(questions), questions[index])
	return uc.messenger.SendMessage(ctx, interview.Candidate.TelegramID, text)
}

// RecordAnswer persists one answer and advances the cursor by exactly one.
// A scorer failure is absorbed: the answer is kept with a zero score and a
// failure-indicating feedback so one bad evaluation never blocks the
// interview. Submissions after the last question are no-ops.
func (uc *interviewUsecase) RecordAnswer(ctx context.Context, interviewID uuid.UUID, answerText string, isVoice bool) error {
	unlock := uc.lock(interviewID)
	defer unlock()

	interview, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return err
	}

	if interview.Status != domain.InterviewStatusInProgress {
		return nil
	}

	questions := interview.Vacancy.Questions
	index := interview.CurrentQuestionIndex
	if index >= len(questions) {
		// Duplicate or late submission racing with completion
		return nil
	}

	question := questions[index]

	score := 0
	feedback := scoringFailedFeedback
	evaluation, err := uc.scorer.ScoreAnswer(ctx, question, answerText, interview.Vacancy.Requirements)
	if err != nil {
		uc.log.Warn("answer scoring failed, keeping answer with zero score",
			"interview_id", interviewID, "question_index", index, "error", err)
	} else {
		score = clampScore(evaluation.Score)
		feedback = evaluation.Feedback
	}

	answer := &domain.Answer{
		InterviewID:   interviewID,
		QuestionIndex: index,
		Question:      question, // snapshot, audit-independent of later vacancy edits
		Answer:        answerText,
		Score:         &score,
		Feedback:      feedback,
		IsVoice:       isVoice,
	}
	if err := uc.answerRepo.Create(ctx, answer); err != nil {
		return apperror.Internal(err)
	}

	if err := uc.interviewRepo.AdvanceQuestion(ctx, interviewID, index); err != nil {
		if errors.Is(err, domain.ErrStaleCursor) {
			uc.log.Warn("question cursor advanced concurrently, treating as duplicate delivery",
				"interview_id", interviewID, "question_index", index)
			return nil
		}
		return apperror.Internal(err)
	}

	return nil
}

// CompleteSession aggregates the recorded answers into the final match
// score, stores the narrative evaluation and transitions the interview to
// its terminal state. Downstream outcome failures are logged and never
// roll back the committed completion.
func (uc *interviewUsecase) CompleteSession(ctx context.Context, interviewID uuid.UUID) error {
	unlock := uc.lock(interviewID)
	defer unlock()

	interview, err := uc.interviewRepo.GetWithRelations(ctx, interviewID)
	if err != nil {
		return err
	}

	if interview.Status != domain.InterviewStatusInProgress {
		// Already completed; terminal state is authoritative
		uc.locks.Delete(interviewID)
		return nil
	}

	matchScore := aggregateMatchScore(interview.Answers)
	summary := uc.finalSummary(ctx, interview)
	now := time.Now()

	if err := uc.interviewRepo.Complete(ctx, interviewID, matchScore, summary, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a completion race; the winner's result stands
			uc.locks.Delete(interviewID)
			return nil
		}
		return apperror.Internal(err)
	}

	// Terminal now; the lock entry has nothing left to guard.
	uc.locks.Delete(interviewID)

	interview.Status = domain.InterviewStatusCompleted
	interview.MatchScore = &matchScore
	interview.Summary = &summary
	interview.CompletedAt = &now

	uc.log.Info("interview completed",
		"interview_id", interviewID,
		"match_score", matchScore,
		"answers", len(interview.Answers),
	)

	if err := uc.messenger.SendMessage(ctx, interview.Candidate.TelegramID, completedMessage); err != nil {
		uc.log.Warn("failed to send completion message", "interview_id", interviewID, "error", err)
	}

	uc.dispatchOutcome(ctx, interview)
	return nil
}

// dispatchOutcome renders the report and notifies HR. Both are optional
// enrichment: failures are logged and the completed interview stands.
func (uc *interviewUsecase) dispatchOutcome(ctx context.Context, interview *domain.Interview) {
	report, err := uc.renderer.Render(interview)
	if err != nil {
		uc.log.Error("report rendering failed", "interview_id", interview.ID, "error", err)
		report = nil
	}

	if err := uc.notifier.NotifyCompleted(ctx, interview, report); err != nil {
		uc.log.Error("hr notification failed", "interview_id", interview.ID, "error", err)
	}
}

// finalSummary asks the evaluator for the narrative; a failure degrades to
// a placeholder instead of blocking completion.
func (uc *interviewUsecase) finalSummary(ctx context.Context, interview *domain.Interview) string {
	scored := make([]domain.ScoredAnswer, 0, len(interview.Answers))
	for _, a := range interview.Answers {
		scored = append(scored, domain.ScoredAnswer{
			Question: a.Question,
			Answer:   a.Answer,
			Score:    a.ScoreValue(),
		})
	}

	summary, err := uc.evaluator.Summarize(ctx, interview.Vacancy.Requirements, scored)
	if err != nil {
		uc.log.Warn("final evaluation failed, using placeholder",
			"interview_id", interview.ID, "error", err)
		return summaryUnavailable
	}
	return summary
}

// aggregateMatchScore converts the 0-10 answer average to a 0-100
// percentage. Zero recorded answers yield 0 rather than a division fault.
func aggregateMatchScore(answers []domain.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}

	total := 0
	for _, a := range answers {
		total += a.ScoreValue()
	}

	score := float64(total) / float64(len(answers)) / 10 * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func (uc *interviewUsecase) lock(id uuid.UUID) func() {
	v, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
