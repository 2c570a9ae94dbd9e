package ports

import (
	"context"

	"github.com/mergington/roster-console/internal/core/domain"
)

// LoginResult carries the credential and identity returned by a
// successful login.
type LoginResult struct {
	Token    string
	Identity domain.Identity
}

// RosterAPI is the backend contract consumed by the services. Transport
// failures are returned as wrapped errors; well-formed server failures as
// *domain.APIError; a rejected session on Me as domain.ErrSessionInvalid.
type RosterAPI interface {
	// Activities fetches all activity records, unauthenticated, in the
	// server's response order.
	Activities(ctx context.Context) ([]domain.Activity, error)
	// Login posts credentials unauthenticated and returns the issued
	// token with the authenticated identity.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout posts the logout request with the stored credential. Only
	// transport failures are reported; the server's status is ignored.
	Logout(ctx context.Context) error
	// Me resolves the identity behind the stored credential. Any
	// non-success status yields domain.ErrSessionInvalid.
	Me(ctx context.Context) (*domain.Identity, error)
	// Signup registers email for the named activity and returns the
	// server's success message.
	Signup(ctx context.Context, activity, email string) (string, error)
	// Unregister removes email from the named activity and returns the
	// server's success message.
	Unregister(ctx context.Context, activity, email string) (string, error)
}
