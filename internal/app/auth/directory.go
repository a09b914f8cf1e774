package auth

import (
	"context"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
)

// Directory is the account backend behind the flows. The local variant
// keeps records in the on-device store; the remote variant talks to the
// hosted identity service. Which one is used is a configuration choice,
// invisible to the flows and screens.
//
// Implementations report business conflicts through the package sentinel
// errors (ErrDuplicateNationalID, ErrDuplicateUsername,
// ErrInvalidCredentials, ErrUserNotFound); anything else is treated as a
// storage failure.
type Directory interface {
	// Create stores a new account. rec must already be normalized and must
	// not carry a password; the clear-text password travels separately so
	// each backend can hash or forward it as appropriate.
	Create(ctx context.Context, rec models.UserRecord, password string) (*models.UserRecord, error)

	// Authenticate verifies the credential pair and returns the matching
	// record. Unknown user and wrong password are indistinguishable: both
	// come back as ErrInvalidCredentials.
	Authenticate(ctx context.Context, nationalID, password string) (*models.UserRecord, error)

	// Lookup fetches a record by national ID.
	Lookup(ctx context.Context, nationalID string) (*models.UserRecord, error)

	// UpdatePassword replaces the password of an existing account.
	UpdatePassword(ctx context.Context, nationalID, newPassword string) error

	// Delete removes the account.
	Delete(ctx context.Context, nationalID string) error
}
