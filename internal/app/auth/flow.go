package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

// Flow runs one account operation per user action: validate the input,
// consult the Directory, then record the outcome in the session marker.
// Every failure resolves into a tagged *Error; nothing propagates as an
// uncaught fault.
type Flow struct {
	dir      Directory
	accounts *store.Accounts
	log      logging.Logger

	// now is a test seam for CreatedAt stamps.
	now func() time.Time
}

func NewFlow(dir Directory, accounts *store.Accounts, log logging.Logger) *Flow {
	return &Flow{
		dir:      dir,
		accounts: accounts,
		log:      log.With("component", "auth"),
		now:      time.Now,
	}
}

// Register validates in (first failing rule wins), checks uniqueness and
// creates the account. The created record is returned so the UI can
// confirm and navigate to Login.
func (f *Flow) Register(ctx context.Context, in RegistrationInput) (*models.UserRecord, error) {
	if verr := validateRegistration(in); verr != nil {
		return nil, verr
	}

	rec := models.UserRecord{
		FullName:    in.FullName,
		Username:    in.Username,
		NationalID:  in.NationalID,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		CreatedAt:   f.now().UTC().Format(time.RFC3339),
	}
	rec.Normalize()

	created, err := f.dir.Create(ctx, rec, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateNationalID):
			return nil, newError(KindDuplicateNationalID, msgDuplicateNationalID, err)
		case errors.Is(err, ErrDuplicateUsername):
			return nil, newError(KindDuplicateUsername, msgDuplicateUsername, err)
		default:
			f.log.Error(ctx, "register failed", "error", err)
			return nil, newError(KindStorage, msgStorageFailure, err)
		}
	}

	f.log.Info(ctx, "account registered", "nationalId", created.NationalID)
	return created, nil
}

// Login authenticates the credential pair and, on success, writes the
// session marker and the login prefill. A failed attempt never touches
// the session marker.
func (f *Flow) Login(ctx context.Context, nationalID, password string) (*models.UserRecord, error) {
	if nationalID == "" || password == "" {
		return nil, newError(KindValidation, msgMissingLoginFields, nil)
	}

	rec, err := f.dir.Authenticate(ctx, nationalID, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// one message for unknown user and wrong password alike
			return nil, newError(KindInvalidCredentials, msgInvalidCredentials, err)
		}
		f.log.Error(ctx, "login failed", "error", err)
		return nil, newError(KindStorage, msgStorageFailure, err)
	}

	if err := f.accounts.SetSession(ctx, rec.NationalID); err != nil {
		return nil, newError(KindStorage, msgStorageFailure, err)
	}
	if err := f.accounts.SetLastLogin(ctx, rec.NationalID); err != nil {
		// prefill is best-effort; the session itself is already in place
		f.log.Warn(ctx, "saving login prefill failed", "error", err)
	}

	f.log.Info(ctx, "login succeeded", "nationalId", rec.NationalID)
	return rec, nil
}

// Logout clears the session marker. Logging out with no session is a
// no-op success.
func (f *Flow) Logout(ctx context.Context) error {
	if err := f.accounts.ClearSession(ctx); err != nil {
		return newError(KindStorage, msgStorageFailure, err)
	}
	f.log.Info(ctx, "logged out")
	return nil
}

// ChangePassword replaces the password of the currently authenticated
// user. The target account always comes from the session marker, never
// from caller input.
func (f *Flow) ChangePassword(ctx context.Context, newPassword, confirmPassword string) error {
	if verr := validatePasswordChange(newPassword, confirmPassword); verr != nil {
		return verr
	}

	nationalID, err := f.accounts.Session(ctx)
	if err != nil {
		return newError(KindStorage, msgStorageFailure, err)
	}
	if nationalID == "" {
		return newError(KindUserNotFound, msgNoSession, nil)
	}

	if err := f.dir.UpdatePassword(ctx, nationalID, newPassword); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// record vanished under the session: force logout
			_ = f.accounts.ClearSession(ctx)
			return newError(KindUserNotFound, msgUserNotFound, err)
		}
		f.log.Error(ctx, "password change failed", "error", err)
		return newError(KindStorage, msgStorageFailure, err)
	}

	f.log.Info(ctx, "password changed", "nationalId", nationalID)
	return nil
}

// DeleteAccount removes the currently authenticated user's account, their
// profile photo and the session marker.
func (f *Flow) DeleteAccount(ctx context.Context) error {
	nationalID, err := f.accounts.Session(ctx)
	if err != nil {
		return newError(KindStorage, msgStorageFailure, err)
	}
	if nationalID == "" {
		return newError(KindUserNotFound, msgNoSession, nil)
	}

	if err := f.dir.Delete(ctx, nationalID); err != nil && !errors.Is(err, ErrUserNotFound) {
		f.log.Error(ctx, "account deletion failed", "error", err)
		return newError(KindStorage, msgStorageFailure, err)
	}

	if err := f.accounts.DeleteProfileImage(ctx, nationalID); err != nil {
		f.log.Warn(ctx, "deleting profile photo failed", "error", err)
	}
	if err := f.accounts.ClearSession(ctx); err != nil {
		return newError(KindStorage, msgStorageFailure, err)
	}

	f.log.Info(ctx, "account deleted", "nationalId", nationalID)
	return nil
}

// LastLogin exposes the login prefill for the login screen.
func (f *Flow) LastLogin(ctx context.Context) string {
	v, err := f.accounts.LastLogin(ctx)
	if err != nil {
		return ""
	}
	return v
}
