package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *MockCandidateRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Candidate, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

type MockVacancyRepo struct {
	mock.Mock
}

func (m *MockVacancyRepo) Create(ctx context.Context, vacancy *domain.Vacancy) error {
	return m.Called(ctx, vacancy).Error(0)
}

func (m *MockVacancyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) FetchActive(ctx context.Context) ([]domain.Vacancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) FetchAll(ctx context.Context) ([]domain.Vacancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vacancy), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) CreateIfNoActive(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) FindActiveByCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.Interview, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) AdvanceQuestion(ctx context.Context, id uuid.UUID, fromIndex int) error {
	return m.Called(ctx, id, fromIndex).Error(0)
}

func (m *MockInterviewRepo) Complete(ctx context.Context, id uuid.UUID, matchScore float64, summary string, completedAt time.Time) error {
	return m.Called(ctx, id, matchScore, summary, completedAt).Error(0)
}

func (m *MockInterviewRepo) FetchCompleted(ctx context.Context, filter domain.InterviewFilter) ([]domain.Interview, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

type MockAnswerRepo struct {
	mock.Mock
}

func (m *MockAnswerRepo) Create(ctx context.Context, answer *domain.Answer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockAnswerRepo) GetByInterviewID(ctx context.Context, interviewID uuid.UUID) ([]domain.Answer, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

func (m *MockAnswerRepo) CountByInterviewID(ctx context.Context, interviewID uuid.UUID) (int, error) {
	args := m.Called(ctx, interviewID)
	return args.Int(0), args.Error(1)
}

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) ScoreAnswer(ctx context.Context, question, answer, requirements string) (*domain.AnswerEvaluation, error) {
	args := m.Called(ctx, question, answer, requirements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnswerEvaluation), args.Error(1)
}

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Summarize(ctx context.Context, requirements string, answers []domain.ScoredAnswer) (string, error) {
	args := m.Called(ctx, requirements, answers)
	return args.String(0), args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(ctx context.Context, chatID int64, text string) error {
	return m.Called(ctx, chatID, text).Error(0)
}

func (m *MockMessenger) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	return m.Called(ctx, chatID, filename, data, caption).Error(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(interview *domain.Interview) ([]byte, error) {
	args := m.Called(interview)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCompleted(ctx context.Context, interview *domain.Interview, report []byte) error {
	return m.Called(ctx, interview, report).Error(0)
}

type fixture struct {
	candidateRepo *MockCandidateRepo
	vacancyRepo   *MockVacancyRepo
	interviewRepo *MockInterviewRepo
	answerRepo    *MockAnswerRepo
	scorer        *MockScorer
	evaluator     *MockEvaluator
	messenger     *MockMessenger
	renderer      *MockRenderer
	notifier      *MockNotifier
	uc            domain.InterviewUsecase
}

func newFixture() *fixture {
	f := &fixture{
		candidateRepo: new(MockCandidateRepo),
		vacancyRepo:   new(MockVacancyRepo),
		interviewRepo: new(MockInterviewRepo),
		answerRepo:    new(MockAnswerRepo),
		scorer:        new(MockScorer),
		evaluator:     new(MockEvaluator),
		messenger:     new(MockMessenger),
		renderer:      new(MockRenderer),
		notifier:      new(MockNotifier),
	}
	f.uc = usecase.NewInterviewUsecase(
		f.candidateRepo, f.vacancyRepo, f.interviewRepo, f.answerRepo,
		f.scorer, f.evaluator, f.messenger, f.renderer, f.notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func testVacancy(questions ...string) *domain.Vacancy {
	return &domain.Vacancy{
		ID:           uuid.New(),
		Title:        "Backend Developer",
		Description:  "Build services",
		Requirements: "Go, PostgreSQL",
		Questions:    questions,
		Status:       domain.VacancyStatusActive,
	}
}

func intPtr(v int) *int { return &v }

func TestStartSession(t *testing.T) {
	profile := domain.CandidateProfile{TelegramID: 42, FirstName: "Alice", Username: "alice"}

	t.Run("Should create interview when candidate has none active", func(t *testing.T) {
		f := newFixture()
		vacancy := testVacancy("Q1", "Q2")

		f.candidateRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Candidate).ID = uuid.New()
			}).Return(nil)
		f.vacancyRepo.On("GetByID", mock.Anything, vacancy.ID).Return(vacancy, nil)
		f.interviewRepo.On("CreateIfNoActive", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(nil)

		interview, err := f.uc.StartSession(context.Background(), profile, vacancy.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusInProgress, interview.Status)
		assert.Equal(t, 0, interview.CurrentQuestionIndex)
		assert.Equal(t, vacancy, interview.Vacancy)
	})

	t.Run("Should reject a second active interview untouched", func(t *testing.T) {
		f := newFixture()
		vacancy := testVacancy("Q1")

		f.candidateRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.vacancyRepo.On("GetByID", mock.Anything, vacancy.ID).Return(vacancy, nil)
		f.interviewRepo.On("CreateIfNoActive", mock.Anything, mock.Anything).Return(domain.ErrActiveInterview)

		_, err := f.uc.StartSession(context.Background(), profile, vacancy.ID)

		assert.ErrorIs(t, err, domain.ErrActiveInterview)
		f.interviewRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail on unknown vacancy", func(t *testing.T) {
		f := newFixture()
		vacancyID := uuid.New()

		f.candidateRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.vacancyRepo.On("GetByID", mock.Anything, vacancyID).Return(nil, domain.ErrNotFound)

		_, err := f.uc.StartSession(context.Background(), profile, vacancyID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Vacancy not found")
		f.interviewRepo.AssertNotCalled(t, "CreateIfNoActive", mock.Anything, mock.Anything)
	})
}

// raceInterviewRepo admits exactly one interview; the rest collide like
// the database partial unique index would make them.
type raceInterviewRepo struct {
	MockInterviewRepo
	mu     sync.Mutex
	active bool
}

func (r *raceInterviewRepo) CreateIfNoActive(ctx context.Context, interview *domain.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return domain.ErrActiveInterview
	}
	r.active = true
	return nil
}

func TestStartSessionConcurrentAdmission(t *testing.T) {
	const attempts = 8

	f := newFixture()
	raceRepo := &raceInterviewRepo{}
	f.uc = usecase.NewInterviewUsecase(
		f.candidateRepo, f.vacancyRepo, raceRepo, f.answerRepo,
		f.scorer, f.evaluator, f.messenger, f.renderer, f.notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	vacancy := testVacancy("Q1")
	f.candidateRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.vacancyRepo.On("GetByID", mock.Anything, vacancy.ID).Return(vacancy, nil)

	var started, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.StartSession(context.Background(), domain.CandidateProfile{TelegramID: 42}, vacancy.ID)
			switch {
			case err == nil:
				started.Add(1)
			case errors.Is(err, domain.ErrActiveInterview):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, int32(attempts-1), rejected.Load())
}

func TestDeliverNextQuestion(t *testing.T) {
	t.Run("Should send the question at the cursor", func(t *testing.T) {
		f := newFixture()
		interview := &domain.Interview{
			ID:                   uuid.New(),
			Status:               domain.InterviewStatusInProgress,
			CurrentQuestionIndex: 0,
			Candidate:            &domain.Candidate{TelegramID: 42},
			Vacancy:              testVacancy("What is a goroutine?", "Explain indexes."),
		}

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)
		f.messenger.On("SendMessage", mock.Anything, int64(42),
			"❓ Question 1/2:\n\nWhat is a goroutine?").Return(nil)

		err := f.uc.DeliverNextQuestion(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.messenger.AssertExpectations(t)
	})

	t.Run("Should do nothing for a completed interview", func(t *testing.T) {
		f := newFixture()
		interview := &domain.Interview{
			ID:      uuid.New(),
			Status:  domain.InterviewStatusCompleted,
			Vacancy: testVacancy("Q1"),
		}

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)

		err := f.uc.DeliverNextQuestion(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.messenger.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordAnswer(t *testing.T) {
	makeInterview := func(index int, questions ...string) *domain.Interview {
		return &domain.Interview{
			ID:                   uuid.New(),
			Status:               domain.InterviewStatusInProgress,
			CurrentQuestionIndex: index,
			Candidate:            &domain.Candidate{TelegramID: 42},
			Vacancy:              testVacancy(questions...),
		}
	}

	t.Run("Should persist the scored answer and advance by one", func(t *testing.T) {
		f := newFixture()
		interview := makeInterview(0, "Q1", "Q2")

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)
		f.scorer.On("ScoreAnswer", mock.Anything, "Q1", "my answer", "Go, PostgreSQL").
			Return(&domain.AnswerEvaluation{Score: 8, Feedback: "solid"}, nil)
		f.answerRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Answer) bool {
			return a.QuestionIndex == 0 && a.Question == "Q1" && *a.Score == 8 && a.Feedback == "solid"
		})).Return(nil)
		f.interviewRepo.On("AdvanceQuestion", mock.Anything, interview.ID, 0).Return(nil)

		err := f.uc.RecordAnswer(context.Background(), interview.ID, "my answer", false)

		assert.NoError(t, err)
		f.answerRepo.AssertExpectations(t)
		f.interviewRepo.AssertExpectations(t)
	})

	t.Run("Should keep the answer with zero score when scoring fails", func(t *testing.T) {
		f := newFixture()
		interview := makeInterview(1, "Q1", "Q2")

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)
		f.scorer.On("ScoreAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("model unavailable"))
		f.answerRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Answer) bool {
			return *a.Score == 0 && a.Feedback != "" && a.QuestionIndex == 1
		})).Return(nil)
		f.interviewRepo.On("AdvanceQuestion", mock.Anything, interview.ID, 1).Return(nil)

		err := f.uc.RecordAnswer(context.Background(), interview.ID, "my answer", true)

		assert.NoError(t, err)
		f.answerRepo.AssertExpectations(t)
	})

	t.Run("Should treat a stale cursor as duplicate delivery", func(t *testing.T) {
		f := newFixture()
		interview := makeInterview(0, "Q1")

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)
		f.scorer.On("ScoreAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.AnswerEvaluation{Score: 5, Feedback: "ok"}, nil)
		f.answerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.interviewRepo.On("AdvanceQuestion", mock.Anything, interview.ID, 0).Return(domain.ErrStaleCursor)

		err := f.uc.RecordAnswer(context.Background(), interview.ID, "my answer", false)

		assert.NoError(t, err)
	})

	t.Run("Should ignore answers after the last question", func(t *testing.T) {
		f := newFixture()
		interview := makeInterview(2, "Q1", "Q2")

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)

		err := f.uc.RecordAnswer(context.Background(), interview.ID, "late", false)

		assert.NoError(t, err)
		f.answerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.scorer.AssertNotCalled(t, "ScoreAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should ignore answers for a completed interview", func(t *testing.T) {
		f := newFixture()
		interview := makeInterview(0, "Q1")
		interview.Status = domain.InterviewStatusCompleted

		f.interviewRepo.On("GetByID", mock.Anything, interview.ID).Return(interview, nil)

		err := f.uc.RecordAnswer(context.Background(), interview.ID, "late", false)

		assert.NoError(t, err)
		f.answerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCompleteSession(t *testing.T) {
	makeCompleted := func(scores ...int) *domain.Interview {
		interview := &domain.Interview{
			ID:                   uuid.New(),
			Status:               domain.InterviewStatusInProgress,
			CurrentQuestionIndex: len(scores),
			Candidate:            &domain.Candidate{TelegramID: 42, FirstName: "Alice"},
			Vacancy:              testVacancy("Q1", "Q2", "Q3", "Q4"),
		}
		for i, s := range scores {
			interview.Answers = append(interview.Answers, domain.Answer{
				QuestionIndex: i,
				Question:      "Q",
				Answer:        "A",
				Score:         intPtr(s),
			})
		}
		return interview
	}

	t.Run("Should aggregate scores into the match percentage", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted(8, 6, 10, 4) // avg 7.0 -> 70%

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)
		f.evaluator.On("Summarize", mock.Anything, "Go, PostgreSQL", mock.Anything).Return("Strong candidate.", nil)
		f.interviewRepo.On("Complete", mock.Anything, interview.ID, 70.0, "Strong candidate.", mock.Anything).Return(nil)
		f.messenger.On("SendMessage", mock.Anything, int64(42), mock.Anything).Return(nil)
		f.renderer.On("Render", interview).Return([]byte("%PDF"), nil)
		f.notifier.On("NotifyCompleted", mock.Anything, interview, []byte("%PDF")).Return(nil)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, interview.Status)
		assert.Equal(t, 70.0, *interview.MatchScore)
		f.interviewRepo.AssertExpectations(t)
		f.notifier.AssertNumberOfCalls(t, "NotifyCompleted", 1)
	})

	t.Run("Should complete with score zero when no answers were recorded", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted()

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)
		f.evaluator.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("No answers.", nil)
		f.interviewRepo.On("Complete", mock.Anything, interview.ID, 0.0, "No answers.", mock.Anything).Return(nil)
		f.messenger.On("SendMessage", mock.Anything, int64(42), mock.Anything).Return(nil)
		f.renderer.On("Render", interview).Return([]byte("%PDF"), nil)
		f.notifier.On("NotifyCompleted", mock.Anything, interview, mock.Anything).Return(nil)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, interview.Status)
	})

	t.Run("Should fall back to a placeholder when the evaluator fails", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted(10, 10)

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)
		f.evaluator.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("model unavailable"))
		f.interviewRepo.On("Complete", mock.Anything, interview.ID, 100.0,
			"Final evaluation is not available.", mock.Anything).Return(nil)
		f.messenger.On("SendMessage", mock.Anything, int64(42), mock.Anything).Return(nil)
		f.renderer.On("Render", interview).Return([]byte("%PDF"), nil)
		f.notifier.On("NotifyCompleted", mock.Anything, interview, mock.Anything).Return(nil)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.interviewRepo.AssertExpectations(t)
	})

	t.Run("Should still notify with no report when rendering fails", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted(5)

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)
		f.evaluator.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
		f.interviewRepo.On("Complete", mock.Anything, interview.ID, 50.0, "ok", mock.Anything).Return(nil)
		f.messenger.On("SendMessage", mock.Anything, int64(42), mock.Anything).Return(nil)
		f.renderer.On("Render", interview).Return(nil, errors.New("font missing"))
		f.notifier.On("NotifyCompleted", mock.Anything, interview, []byte(nil)).Return(nil)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Should be a no-op on an already completed interview", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted(5)
		interview.Status = domain.InterviewStatusCompleted

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.interviewRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "NotifyCompleted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should yield to the winner of a completion race", func(t *testing.T) {
		f := newFixture()
		interview := makeCompleted(5)

		f.interviewRepo.On("GetWithRelations", mock.Anything, interview.ID).Return(interview, nil)
		f.evaluator.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)
		f.interviewRepo.On("Complete", mock.Anything, interview.ID, 50.0, "ok", mock.Anything).Return(domain.ErrNotFound)

		err := f.uc.CompleteSession(context.Background(), interview.ID)

		assert.NoError(t, err)
		f.notifier.AssertNotCalled(t, "NotifyCompleted", mock.Anything, mock.Anything, mock.Anything)
		f.messenger.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFullInterviewFlow(t *testing.T) {
	// Two questions, scores 7 and 9: the interview ends at 80% with one
	// notification dispatched.
	f := newFixture()

	vacancy := testVacancy("Q1", "Q2")
	interviewID := uuid.New()
	candidate := &domain.Candidate{ID: uuid.New(), TelegramID: 42, FirstName: "Alice"}

	state := &domain.Interview{
		ID:                   interviewID,
		Status:               domain.InterviewStatusInProgress,
		CurrentQuestionIndex: 0,
		Candidate:            candidate,
		Vacancy:              vacancy,
	}

	f.interviewRepo.On("GetByID", mock.Anything, interviewID).Return(state, nil)
	f.interviewRepo.On("GetWithRelations", mock.Anything, interviewID).Return(state, nil)

	f.scorer.On("ScoreAnswer", mock.Anything, "Q1", "answer one", vacancy.Requirements).
		Return(&domain.AnswerEvaluation{Score: 7, Feedback: "fine"}, nil)
	f.scorer.On("ScoreAnswer", mock.Anything, "Q2", "answer two", vacancy.Requirements).
		Return(&domain.AnswerEvaluation{Score: 9, Feedback: "great"}, nil)

	f.answerRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Answer")).
		Run(func(args mock.Arguments) {
			state.Answers = append(state.Answers, *args.Get(1).(*domain.Answer))
		}).Return(nil)
	f.interviewRepo.On("AdvanceQuestion", mock.Anything, interviewID, mock.AnythingOfType("int")).
		Run(func(args mock.Arguments) {
			state.CurrentQuestionIndex = args.Int(2) + 1
		}).Return(nil)

	f.evaluator.On("Summarize", mock.Anything, vacancy.Requirements, mock.Anything).Return("Hire.", nil)
	f.interviewRepo.On("Complete", mock.Anything, interviewID, 80.0, "Hire.", mock.Anything).Return(nil)
	f.messenger.On("SendMessage", mock.Anything, int64(42), mock.Anything).Return(nil)
	f.renderer.On("Render", state).Return([]byte("%PDF"), nil)
	f.notifier.On("NotifyCompleted", mock.Anything, state, []byte("%PDF")).Return(nil)

	ctx := context.Background()
	assert.NoError(t, f.uc.RecordAnswer(ctx, interviewID, "answer one", false))
	assert.NoError(t, f.uc.DeliverNextQuestion(ctx, interviewID))
	assert.NoError(t, f.uc.RecordAnswer(ctx, interviewID, "answer two", true))
	assert.NoError(t, f.uc.DeliverNextQuestion(ctx, interviewID))

	assert.Equal(t, domain.InterviewStatusCompleted, state.Status)
	assert.Equal(t, 80.0, *state.MatchScore)
	f.notifier.AssertNumberOfCalls(t, "NotifyCompleted", 1)
	f.interviewRepo.AssertExpectations(t)
}
