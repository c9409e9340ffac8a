package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"go-interview-backend/internal/domain"
	tg "go-interview-backend/internal/telegram"
	"go-interview-backend/pkg/apperror"
)

const adminHelp = "🛠 Admin commands:\n\n" +
	"/create_vacancy - start the vacancy creation wizard\n" +
	"/finish_vacancy - publish the vacancy being created\n" +
	"/cancel_vacancy - discard the vacancy being created\n" +
	"/vacancies_list - list all vacancies\n" +
	"/candidates - recent completed interviews\n" +
	"/top_candidates - best matches (score 70+)\n" +
	"/stats - platform statistics\n" +
	"/report_<id> - PDF report for an interview"

func (h *Handler) handleAdminCommand(ctx context.Context, msg *tg.Message, command string) {
	chatID := msg.Chat.ID
	actorID := msg.From.ID

	switch {
	case command == "/admin":
		h.reply(ctx, chatID, adminHelp)
	case command == "/create_vacancy":
		h.handleCreateVacancy(ctx, chatID, actorID)
	case command == "/finish_vacancy":
		h.handleFinishVacancy(ctx, chatID, actorID)
	case command == "/cancel_vacancy":
		h.handleCancelVacancy(ctx, chatID, actorID)
	case command == "/vacancies_list":
		h.handleVacanciesList(ctx, chatID)
	case command == "/candidates":
		h.handleCandidates(ctx, chatID, domain.InterviewFilter{Limit: 10})
	case command == "/top_candidates":
		minScore := 70.0
		h.handleCandidates(ctx, chatID, domain.InterviewFilter{MinScore: &minScore, Limit: 5})
	case command == "/stats":
		h.handleStats(ctx, chatID)
	case strings.HasPrefix(command, "/report_"):
		h.handleReport(ctx, chatID, strings.TrimPrefix(command, "/report_"))
	default:
		h.reply(ctx, chatID, "Unknown command. Send /admin for the command list.")
	}
}

func (h *Handler) handleCreateVacancy(ctx context.Context, chatID, actorID int64) {
	prompt, err := h.wizard.Begin(ctx, actorID)
	if err != nil {
		h.log.Error("failed to start vacancy wizard", slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not start vacancy creation, please try again.")
		return
	}
	h.reply(ctx, chatID, prompt)
}

func (h *Handler) handleFinishVacancy(ctx context.Context, chatID, actorID int64) {
	draft, err := h.wizard.Finish(ctx, actorID)
	if err != nil {
		h.reply(ctx, chatID, userFacingError(err, "😔 Could not finish vacancy creation."))
		return
	}

	vacancy, err := h.adminUC.CreateVacancy(ctx, draft)
	if err != nil {
		h.log.Error("failed to create vacancy", slog.String("error", err.Error()))
		h.reply(ctx, chatID, userFacingError(err, "😔 Could not save the vacancy."))
		return
	}

	h.reply(ctx, chatID, fmt.Sprintf(
		"✅ Vacancy created!\n\n%s\nSalary: %s\nQuestions: %d\n\nCandidates can now find it via /vacancies.",
		vacancy.Title, vacancy.SalaryLabel(), len(vacancy.Questions)))
}

func (h *Handler) handleCancelVacancy(ctx context.Context, chatID, actorID int64) {
	if err := h.wizard.Cancel(ctx, actorID); err != nil {
		h.log.Error("failed to cancel vacancy wizard", slog.String("error", err.Error()))
	}
	h.reply(ctx, chatID, "Vacancy creation canceled.")
}

func (h *Handler) handleVacanciesList(ctx context.Context, chatID int64) {
	vacancies, err := h.adminUC.ListVacancies(ctx)
	if err != nil {
		h.log.Error("failed to list vacancies", slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not load vacancies.")
		return
	}
	if len(vacancies) == 0 {
		h.reply(ctx, chatID, "No vacancies yet. Send /create_vacancy to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 All vacancies:\n")
	for i, v := range vacancies {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n   Salary: %s, questions: %d",
			i+1, v.Title, v.Status, v.SalaryLabel(), len(v.Questions))
	}
	h.reply(ctx, chatID, sb.String())
}

func (h *Handler) handleCandidates(ctx context.Context, chatID int64, filter domain.InterviewFilter) {
	interviews, err := h.adminUC.ListCompleted(ctx, filter)
	if err != nil {
		h.log.Error("failed to list completed interviews", slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not load candidates.")
		return
	}
	if len(interviews) == 0 {
		h.reply(ctx, chatID, "No completed interviews match yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Completed interviews, best match first:\n")
	for i, iv := range interviews {
		score := 0.0
		if iv.MatchScore != nil {
			score = *iv.MatchScore
		}
		name := "Unknown"
		if iv.Candidate != nil {
			name = strings.TrimSpace(iv.Candidate.FirstName + " " + iv.Candidate.LastName)
		}
		title := ""
		if iv.Vacancy != nil {
			title = iv.Vacancy.Title
		}
		fmt.Fprintf(&sb, "\n%d. %s - %.1f%%\n   Vacancy: %s\n   Report: /report_%s",
			i+1, name, score, title, iv.ID)
	}
	h.reply(ctx, chatID, sb.String())
}

func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	stats, err := h.adminUC.GetStats(ctx)
	if err != nil {
		h.log.Error("failed to load stats", slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not load statistics.")
		return
	}

	h.reply(ctx, chatID, fmt.Sprintf(
		"📊 Platform statistics:\n\n"+
			"Candidates: %d\n"+
			"Interviews: %d (completed: %d)\n"+
			"Active vacancies: %d\n"+
			"Average match score: %.1f%%",
		stats.TotalCandidates,
		stats.TotalInterviews,
		stats.CompletedInterviews,
		stats.ActiveVacancies,
		stats.AverageMatchScore))
}

func (h *Handler) handleReport(ctx context.Context, chatID int64, rawID string) {
	interviewID, err := uuid.Parse(rawID)
	if err != nil {
		h.reply(ctx, chatID, "Invalid interview id.")
		return
	}

	report, err := h.adminUC.BuildReport(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.reply(ctx, chatID, "Interview not found.")
			return
		}
		h.log.Error("failed to build report",
			slog.String("interview_id", interviewID.String()),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not build the report.")
		return
	}

	filename := fmt.Sprintf("interview_%s.pdf", interviewID)
	if err := h.client.SendDocument(ctx, chatID, filename, report, "📄 Candidate report"); err != nil {
		h.log.Error("failed to send report",
			slog.String("interview_id", interviewID.String()),
			slog.String("error", err.Error()))
		h.reply(ctx, chatID, "😔 Could not send the report.")
	}
}

// userFacingError surfaces validation messages to the admin chat and hides
// everything else behind a generic fallback.
func userFacingError(err error, fallback string) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code < 500 {
		return "⚠️ " + appErr.Message
	}
	return fallback
}
