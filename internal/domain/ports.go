package domain

import "context"

// Messenger is the outbound side of the messaging channel. The orchestrator
// is agnostic to the wire protocol behind it.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
}

// ReportRenderer builds the human-readable report artifact for a hydrated
// interview.
type ReportRenderer interface {
	Render(interview *Interview) ([]byte, error)
}

// Notifier informs the administrative recipient about a completed
// interview. An unconfigured recipient is a no-op, not an error.
type Notifier interface {
	NotifyCompleted(ctx context.Context, interview *Interview, report []byte) error
}

// AuthPolicy decides whether an actor may use the administrative surface.
// The default implementation compares against a single configured chat id;
// alternate policies are a configuration change, not a code change.
type AuthPolicy interface {
	IsAuthorized(actorID int64) bool
}

// StaticAdminPolicy authorizes exactly one configured actor.
type StaticAdminPolicy struct {
	AdminID int64
}

func (p StaticAdminPolicy) IsAuthorized(actorID int64) bool {
	return p.AdminID != 0 && p.AdminID == actorID
}
