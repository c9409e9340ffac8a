package notification

import (
	"context"
	"fmt"
	"log/slog"

	"go-interview-backend/internal/domain"
)

// HRNotifier informs the configured HR manager chat about completed
// interviews and delivers the PDF report.
type HRNotifier struct {
	messenger domain.Messenger
	hrChatID  int64
	log       *slog.Logger
}

func NewHRNotifier(messenger domain.Messenger, hrChatID int64, log *slog.Logger) *HRNotifier {
	return &HRNotifier{messenger: messenger, hrChatID: hrChatID, log: log}
}

// NotifyCompleted sends the summary message and the report document. A
// missing recipient is a no-op, not an error.
func (n *HRNotifier) NotifyCompleted(ctx context.Context, interview *domain.Interview, report []byte) error {
	if n.hrChatID == 0 {
		n.log.Warn("HR chat id is not configured, skipping notification")
		return nil
	}

	matchScore := 0.0
	if interview.MatchScore != nil {
		matchScore = *interview.MatchScore
	}

	username := fmt.Sprintf("%d", interview.Candidate.TelegramID)
	if interview.Candidate.Username != nil && *interview.Candidate.Username != "" {
		username = "@" + *interview.Candidate.Username
	}

	message := fmt.Sprintf(
		"🎯 New candidate finished an interview!\n\n"+
			"Candidate: %s %s\n"+
			"Telegram: %s\n\n"+
			"Vacancy: %s\n"+
			"Match score: %.1f%%\n"+
			"Interview date: %s",
		interview.Candidate.FirstName,
		interview.Candidate.LastName,
		username,
		interview.Vacancy.Title,
		matchScore,
		interview.CreatedAt.Format("2006-01-02 15:04"),
	)

	if err := n.messenger.SendMessage(ctx, n.hrChatID, message); err != nil {
		return fmt.Errorf("send hr notification: %w", err)
	}

	if len(report) == 0 {
		return nil
	}

	filename := fmt.Sprintf("candidate_%d_%s.pdf", interview.Candidate.TelegramID, interview.ID)
	if err := n.messenger.SendDocument(ctx, n.hrChatID, filename, report, ""); err != nil {
		return fmt.Errorf("send hr report: %w", err)
	}
	return nil
}
