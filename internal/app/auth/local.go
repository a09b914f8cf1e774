package auth

import (
	"context"
	"strings"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/cryptox"
)

// LocalDirectory keeps accounts in the on-device store. Uniqueness is
// enforced by a linear scan inside store.Accounts.Update, which holds the
// store lock across the whole load-check-append-save cycle.
type LocalDirectory struct {
	accounts *store.Accounts
}

var _ Directory = (*LocalDirectory)(nil)

func NewLocalDirectory(accounts *store.Accounts) *LocalDirectory {
	return &LocalDirectory{accounts: accounts}
}

func (d *LocalDirectory) Create(ctx context.Context, rec models.UserRecord, password string) (*models.UserRecord, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, err
	}
	rec.Password = hash

	err = d.accounts.Update(ctx, func(records []models.UserRecord) ([]models.UserRecord, error) {
		for _, existing := range records {
			if existing.NationalID == rec.NationalID {
				return nil, ErrDuplicateNationalID
			}
			if rec.Username != "" && strings.EqualFold(existing.Username, rec.Username) {
				return nil, ErrDuplicateUsername
			}
		}
		return append(records, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *LocalDirectory) Authenticate(ctx context.Context, nationalID, password string) (*models.UserRecord, error) {
	records, err := d.accounts.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].NationalID != nationalID {
			continue
		}
		ok, err := cryptox.VerifyPassword(records[i].Password, password)
		if err != nil {
			return nil, err
		}
		if !ok {
			// same answer as for an unknown user
			return nil, ErrInvalidCredentials
		}
		rec := records[i]
		return &rec, nil
	}

	return nil, ErrInvalidCredentials
}

func (d *LocalDirectory) Lookup(ctx context.Context, nationalID string) (*models.UserRecord, error) {
	records, err := d.accounts.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].NationalID == nationalID {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *LocalDirectory) UpdatePassword(ctx context.Context, nationalID, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return d.accounts.Update(ctx, func(records []models.UserRecord) ([]models.UserRecord, error) {
		for i := range records {
			if records[i].NationalID == nationalID {
				records[i].Password = hash
				return records, nil
			}
		}
		return nil, ErrUserNotFound
	})
}

func (d *LocalDirectory) Delete(ctx context.Context, nationalID string) error {
	return d.accounts.Update(ctx, func(records []models.UserRecord) ([]models.UserRecord, error) {
		for i := range records {
			if records[i].NationalID == nationalID {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, ErrUserNotFound
	})
}
