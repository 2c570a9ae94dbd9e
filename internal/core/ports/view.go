package ports

import (
	"context"

	"github.com/mergington/roster-console/internal/core/domain"
)

// Session exposes the identity resolved for the current session, or nil
// when logged out.
type Session interface {
	Current() *domain.Identity
}

// Presenter renders derived roster state. ShowActivities replaces any
// previously rendered listing; ShowLoadFailure replaces it with a single
// user-visible notice.
type Presenter interface {
	ShowActivities(views []domain.ActivityView)
	ShowLoadFailure(notice string)
}

// Notifier surfaces transient user-facing messages for the outcome of a
// user-initiated action.
type Notifier interface {
	Success(text string)
	Error(text string)
	Info(text string)
}

// Refresher triggers a full re-fetch and re-render of the roster.
type Refresher interface {
	Refresh(ctx context.Context)
}
