package domain

import "context"

// Wizard steps for multi-step vacancy creation. The draft is committed only
// on explicit finalization; abandoning the wizard leaves no vacancy behind.
const (
	WizardStepTitle        = "title"
	WizardStepDescription  = "description"
	WizardStepRequirements = "requirements"
	WizardStepSalary       = "salary"
	WizardStepQuestions    = "questions"
)

// WizardState is one actor's in-flight vacancy draft.
type WizardState struct {
	Step  string       `json:"step"`
	Draft VacancyDraft `json:"draft"`
}

// WizardStore keeps per-actor wizard state. The default store is
// in-memory; a durable implementation can be swapped in for multi-instance
// deployments. A missing state is reported as ErrNotFound.
type WizardStore interface {
	Get(ctx context.Context, actorID int64) (*WizardState, error)
	Put(ctx context.Context, actorID int64, state *WizardState) error
	Delete(ctx context.Context, actorID int64) error
}
