package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// SalaryNegotiable is the magic input that leaves the salary unset.
const SalaryNegotiable = "Negotiable"

// VacancyWizard drives the multi-step vacancy creation dialog. State lives
// behind domain.WizardStore keyed by the acting admin; nothing is committed
// until Finish hands the draft to AdminUsecase.CreateVacancy.
type VacancyWizard struct {
	store domain.WizardStore
}

func NewVacancyWizard(store domain.WizardStore) *VacancyWizard {
	return &VacancyWizard{store: store}
}

// Begin starts (or restarts) a draft for the actor and returns the first
// prompt.
func (w *VacancyWizard) Begin(ctx context.Context, actorID int64) (string, error) {
	state := &domain.WizardState{Step: domain.WizardStepTitle}
	if err := w.store.Put(ctx, actorID, state); err != nil {
		return "", err
	}
	return "📝 Creating a new vacancy\n\n1. Send the vacancy title:", nil
}

// Active reports whether the actor has a draft in flight.
func (w *VacancyWizard) Active(ctx context.Context, actorID int64) bool {
	_, err := w.store.Get(ctx, actorID)
	return err == nil
}

// HandleInput feeds one message into the wizard. It returns the reply to
// send and whether the input was consumed; input is not consumed when no
// draft is in flight or when a command arrives mid-questions.
func (w *VacancyWizard) HandleInput(ctx context.Context, actorID int64, text string) (string, bool, error) {
	state, err := w.store.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	text = strings.TrimSpace(text)

	var reply string
	switch state.Step {
	case domain.WizardStepTitle:
		state.Draft.Title = text
		state.Step = domain.WizardStepDescription
		reply = "2. Send the vacancy description:"
	case domain.WizardStepDescription:
		state.Draft.Description = text
		state.Step = domain.WizardStepRequirements
		reply = "3. Send the requirements:"
	case domain.WizardStepRequirements:
		state.Draft.Requirements = text
		state.Step = domain.WizardStepSalary
		reply = fmt.Sprintf("4. Send the salary (or type %q):", SalaryNegotiable)
	case domain.WizardStepSalary:
		if !strings.EqualFold(text, SalaryNegotiable) {
			state.Draft.Salary = text
		}
		state.Step = domain.WizardStepQuestions
		reply = "5. Send the interview questions, one message per question.\n" +
			"For example:\n" +
			"How does the event loop work in Node.js?\n" +
			"What is the difference between REST and GraphQL?\n\n" +
			"When you are done, send /finish_vacancy."
	case domain.WizardStepQuestions:
		if strings.HasPrefix(text, "/") {
			return "", false, nil
		}
		state.Draft.Questions = append(state.Draft.Questions, text)
		reply = fmt.Sprintf("✅ Question added (%d total)\nAdd another question or send /finish_vacancy.",
			len(state.Draft.Questions))
	default:
		return "", false, fmt.Errorf("unknown wizard step %q", state.Step)
	}

	if err := w.store.Put(ctx, actorID, state); err != nil {
		return "", false, err
	}
	return reply, true, nil
}

// Finish closes the wizard and returns the draft for committing. The draft
// must have reached the questions step with at least one question.
func (w *VacancyWizard) Finish(ctx context.Context, actorID int64) (*domain.VacancyDraft, error) {
	state, err := w.store.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("No vacancy creation in progress")
		}
		return nil, err
	}

	if state.Step != domain.WizardStepQuestions {
		return nil, apperror.BadRequest("No vacancy creation in progress")
	}
	if len(state.Draft.Questions) == 0 {
		return nil, apperror.BadRequest("At least one question is required")
	}

	if err := w.store.Delete(ctx, actorID); err != nil {
		return nil, err
	}
	draft := state.Draft
	return &draft, nil
}

// Cancel discards any in-flight draft.
func (w *VacancyWizard) Cancel(ctx context.Context, actorID int64) error {
	return w.store.Delete(ctx, actorID)
}
