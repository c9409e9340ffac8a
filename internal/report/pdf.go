package report

import (
	"bytes"
	"fmt"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer builds the candidate report document for a hydrated
// interview.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the report as PDF bytes. The interview must carry its
// candidate, vacancy and answers.
func (r *PDFRenderer) Render(interview *domain.Interview) ([]byte, error) {
	if interview.Candidate == nil || interview.Vacancy == nil {
		return nil, fmt.Errorf("interview %s is not fully hydrated", interview.ID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "TalentAI - Candidate Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Candidate information
	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "Candidate", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Name: %s %s", orUnknown(interview.Candidate.FirstName), interview.Candidate.LastName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Telegram ID: %d", interview.Candidate.TelegramID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Phone: %s", orDefault(interview.Candidate.PhoneNumber, "Not provided")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Username: @%s", orDefault(interview.Candidate.Username, "unknown")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Vacancy information
	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "Vacancy", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf("Title: %s", interview.Vacancy.Title), "", "L", false)
	pdf.MultiCell(0, 7, fmt.Sprintf("Description: %s", interview.Vacancy.Description), "", "L", false)
	pdf.CellFormat(0, 7, fmt.Sprintf("Salary: %s", interview.Vacancy.SalaryLabel()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Match score, color-coded by band
	matchScore := 0.0
	if interview.MatchScore != nil {
		matchScore = *interview.MatchScore
	}
	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "Match Score", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	setScoreColor(pdf, matchScore)
	pdf.CellFormat(0, 14, fmt.Sprintf("%.1f%%", matchScore), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// Final narrative
	if interview.Summary != nil && *interview.Summary != "" {
		pdf.SetFont("Helvetica", "BU", 16)
		pdf.CellFormat(0, 10, "Overall Evaluation", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, *interview.Summary, "", "L", false)
		pdf.Ln(4)
	}

	// One page per answer
	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "Interview Answers", "", 1, "L", false, 0, "")

	for i, answer := range interview.Answers {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "BU", 14)
		pdf.CellFormat(0, 9, fmt.Sprintf("Question %d:", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, answer.Question, "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "U", 12)
		pdf.CellFormat(0, 7, "Answer:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, answer.Answer, "", "L", false)
		pdf.Ln(2)

		pdf.CellFormat(0, 7, fmt.Sprintf("Score: %d/10", answer.ScoreValue()), "", 1, "L", false, 0, "")

		if answer.Feedback != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "U", 12)
			pdf.CellFormat(0, 7, "Feedback:", "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.MultiCell(0, 6, answer.Feedback, "", "L", false)
		}
	}

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setScoreColor(pdf *fpdf.Fpdf, score float64) {
	switch {
	case score >= 70:
		pdf.SetTextColor(0, 128, 0)
	case score >= 50:
		pdf.SetTextColor(255, 140, 0)
	default:
		pdf.SetTextColor(200, 0, 0)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
