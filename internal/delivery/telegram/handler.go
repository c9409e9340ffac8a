package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-interview-backend/internal/domain"
	tg "go-interview-backend/internal/telegram"
	"go-interview-backend/internal/usecase"
)

const (
	startGreeting = "👋 Hello, %s!\n\n" +
		"I conduct first-round interviews for open vacancies. " +
		"Send /vacancies to see the open positions and start an interview."

	activeInterviewWarning = "⚠️ You already have an active interview. " +
		"Finish answering its questions before starting a new one."

	noSessionHint = "You have no active interview. Send /vacancies to pick a position."

	rateLimitedReply = "⏳ Too many messages. Please wait a minute."

	voiceAck        = "🎙 Voice message received, transcribing..."
	voiceRetryReply = "😔 Could not recognize the voice message. Please try again or type your answer."
)

// BotAPI is the outbound Telegram surface the handler drives. Satisfied
// by the bot client; narrowed here so handlers can be exercised without
// the wire.
type BotAPI interface {
	GetUpdates(ctx context.Context, offset, timeoutSecs int) ([]tg.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]tg.InlineKeyboardButton) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Handler dispatches Telegram updates to the interview orchestrator and
// the administrative commands.
type Handler struct {
	client        BotAPI
	interviewUC   domain.InterviewUsecase
	adminUC       domain.AdminUsecase
	candidateRepo domain.CandidateRepository
	vacancyRepo   domain.VacancyRepository
	wizard        *usecase.VacancyWizard
	transcriber   domain.Transcriber
	auth          domain.AuthPolicy
	limiter       *RateLimiter
	pollTimeout   int
	log           *slog.Logger
}

func NewHandler(
	client BotAPI,
	interviewUC domain.InterviewUsecase,
	adminUC domain.AdminUsecase,
	candidateRepo domain.CandidateRepository,
	vacancyRepo domain.VacancyRepository,
	wizard *usecase.VacancyWizard,
	transcriber domain.Transcriber,
	auth domain.AuthPolicy,
	rateLimit int,
	pollTimeout int,
	log *slog.Logger,
) *Handler {
	return &Handler{
		client:        client,
		interviewUC:   interviewUC,
		adminUC:       adminUC,
		candidateRepo: candidateRepo,
		vacancyRepo:   vacancyRepo,
		wizard:        wizard,
		transcriber:   transcriber,
		auth:          auth,
		limiter:       NewRateLimiter(rateLimit, time.Minute),
		pollTimeout:   pollTimeout,
		log:           log,
	}
}

// Run long-polls for updates until the context is canceled.
func (h *Handler) Run(ctx context.Context) {
	h.log.Info("telegram handler started", slog.Int("poll_timeout", h.pollTimeout))

	offset := 0
	for {
		select {
		case <-ctx.Done():
			h.log.Info("telegram handler stopped")
			return
		default:
		}

		updates, err := h.client.GetUpdates(ctx, offset, h.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				h.log.Info("telegram handler stopped")
				return
			}
			h.log.Error("failed to poll updates", slog.String("error", err.Error()))
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			h.dispatch(ctx, update)
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, update tg.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tg.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if !h.limiter.IsAllowed(userID) {
		h.reply(ctx, chatID, rateLimitedReply)
		return
	}

	if msg.Voice != nil {
		h.handleVoice(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		h.handleCommand(ctx, msg, text)
		return
	}

	// Free text goes to an in-flight admin wizard first; otherwise it is
	// an interview answer.
	if h.auth.IsAuthorized(userID) {
		reply, handled, err := h.wizard.HandleInput(ctx, userID, text)
		if err != nil {
			h.log.Error("wizard input failed", slog.String("error", err.Error()))
			h.reply(ctx, chatID, "😔 Something went wrong, please try again.")
			return
		}
		if handled {
			h.reply(ctx, chatID, reply)
			return
		}
	}

	// Free text without an active interview is just chatter; stay quiet.
	interview := h.activeSession(ctx, userID, chatID, false)
	if interview == nil {
		return
	}
	h.submitAnswer(ctx, interview, chatID, text, false)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tg.Message, text string) {
	chatID := msg.Chat.ID
	command := strings.Fields(text)[0]

	switch command {
	case "/start":
		h.handleStart(ctx, msg)
	case "/vacancies":
		h.handleVacancies(ctx, chatID)
	default:
		if h.auth.IsAuthorized(msg.From.ID) {
			h.handleAdminCommand(ctx, msg, command)
			return
		}
		h.reply(ctx, chatID, "Unknown command. Send /vacancies to see open positions.")
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tg.Message) {
	candidate := &domain.Candidate{
		TelegramID: msg.From.ID,
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
	}
	if msg.From.Username != "" {
		username := msg.From.Username
		candidate.Username = &username
	}

	if err := h.candidateRepo.Upsert(ctx, candidate); err != nil {
		h.log.Error("failed to upsert candidate",
			slog.Int64("telegram_id", msg.From.ID),
			slog.String("error", err.Error()))
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	h.reply(ctx, msg.Chat.ID, fmt.Sprintf(startGreeting, name))
}

func (h *Handler) handleVacancies(ctx context.Context, chatID int64) {
	vacancies, err := h.vacancyRepo.FetchActive(ctx)
	if err != nil {
		h.log.Error("failed to fetch vacancies", slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not load vacancies, please try again later.")
		return
	}
	if len(vacancies) == 0 {
		h.reply(ctx, chatID, "There are no open vacancies right now. Check back later!")
		return
	}

	keyboard := make([][]tg.InlineKeyboardButton, 0, len(vacancies))
	for _, v := range vacancies {
		keyboard = append(keyboard, []tg.InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s (%s)", v.Title, v.SalaryLabel()),
			CallbackData: "vacancy_" + v.ID.String(),
		}})
	}

	if err := h.client.SendMessageWithKeyboard(ctx, chatID, "📋 Open vacancies, pick one to start an interview:", keyboard); err != nil {
		h.log.Error("failed to send vacancy list", slog.String("error", err.Error()))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tg.CallbackQuery) {
	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	if err := h.client.AnswerCallbackQuery(ctx, cb.ID, ""); err != nil {
		h.log.Warn("failed to answer callback query", slog.String("error", err.Error()))
	}

	vacancyID, ok := parseVacancyCallback(cb.Data)
	if !ok {
		return
	}

	profile := domain.CandidateProfile{
		TelegramID: cb.From.ID,
		FirstName:  cb.From.FirstName,
		LastName:   cb.From.LastName,
		Username:   cb.From.Username,
	}

	interview, err := h.interviewUC.StartSession(ctx, profile, vacancyID)
	if err != nil {
		if errors.Is(err, domain.ErrActiveInterview) {
			h.reply(ctx, chatID, activeInterviewWarning)
			return
		}
		h.log.Error("failed to start interview",
			slog.Int64("telegram_id", cb.From.ID),
			slog.String("vacancy_id", vacancyID.String()),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not start the interview, please try again later.")
		return
	}

	h.reply(ctx, chatID, fmt.Sprintf(
		"🚀 Interview for %q started!\n\nAnswer each question with a text or voice message.",
		interview.Vacancy.Title))

	if err := h.interviewUC.DeliverNextQuestion(ctx, interview.ID); err != nil {
		h.log.Error("failed to deliver first question",
			slog.String("interview_id", interview.ID.String()),
			slog.String("error", err.Error()))
	}
}

// activeSession resolves the user's IN_PROGRESS interview. When there is
// none, the hint is sent only if asked for; the text path stays silent.
func (h *Handler) activeSession(ctx context.Context, userID, chatID int64, hintOnMissing bool) *domain.Interview {
	interview, err := h.interviewUC.GetActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if hintOnMissing {
				h.reply(ctx, chatID, noSessionHint)
			}
			return nil
		}
		h.log.Error("failed to look up active interview",
			slog.Int64("telegram_id", userID),
			slog.String("error", err.Error()))
		return nil
	}
	return interview
}

func (h *Handler) submitAnswer(ctx context.Context, interview *domain.Interview, chatID int64, answer string, isVoice bool) {
	if err := h.interviewUC.RecordAnswer(ctx, interview.ID, answer, isVoice); err != nil {
		h.log.Error("failed to record answer",
			slog.String("interview_id", interview.ID.String()),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not save your answer, please send it again.")
		return
	}

	if err := h.interviewUC.DeliverNextQuestion(ctx, interview.ID); err != nil {
		h.log.Error("failed to deliver next question",
			slog.String("interview_id", interview.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (h *Handler) handleVoice(ctx context.Context, msg *tg.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	// Resolve the session before paying for download and transcription.
	interview := h.activeSession(ctx, userID, chatID, true)
	if interview == nil {
		return
	}

	h.reply(ctx, chatID, voiceAck)

	audio, err := h.client.DownloadFile(ctx, msg.Voice.FileID)
	if err != nil {
		h.log.Error("failed to download voice file",
			slog.String("file_id", msg.Voice.FileID),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, voiceRetryReply)
		return
	}

	text, err := h.transcriber.Transcribe(ctx, audio)
	if err != nil {
		h.log.Error("failed to transcribe voice message",
			slog.Int64("telegram_id", userID),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, voiceRetryReply)
		return
	}

	h.reply(ctx, chatID, "📝 Transcription: "+text)
	h.submitAnswer(ctx, interview, chatID, text, true)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.client.SendMessage(ctx, chatID, text); err != nil {
		h.log.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}
}

func parseVacancyCallback(data string) (uuid.UUID, bool) {
	raw, found := strings.CutPrefix(data, "vacancy_")
	if !found {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
