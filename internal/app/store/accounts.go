package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
)

// Store keys. The account collection lives under a single key as one
// serialized JSON array (insertion order = registration order); the session
// marker is a bare national ID string.
const (
	keyAccounts  = "accounts"
	keySession   = "session"
	keyLastLogin = "lastLogin"

	keyProfileImagePrefix = "profileImage/"
)

// Accounts exposes the account-store operations over a KV backend.
//
// All mutations of the account collection must go through Update, which
// serializes the whole load-modify-save cycle under an in-process lock.
// Two concurrently dispatched registrations would otherwise both pass the
// duplicate check against a stale snapshot before either write lands.
type Accounts struct {
	kv KV
	mu sync.Mutex
}

func NewAccounts(kv KV) *Accounts {
	return &Accounts{kv: kv}
}

// Load returns the persisted account collection. An absent key and an
// empty collection are indistinguishable: both yield an empty slice.
func (a *Accounts) Load(ctx context.Context) ([]models.UserRecord, error) {
	return load(ctx, a.kv)
}

func load(ctx context.Context, kv KV) ([]models.UserRecord, error) {
	data, err := kv.Get(ctx, keyAccounts)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []models.UserRecord{}, nil
	}

	var records []models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding account collection: %w", err)
	}
	return records, nil
}

// Save overwrites the full account collection. The write is a single
// statement, so it either fully applies or not at all.
func (a *Accounts) Save(ctx context.Context, records []models.UserRecord) error {
	return save(ctx, a.kv, records)
}

func save(ctx context.Context, kv KV, records []models.UserRecord) error {
	if records == nil {
		records = []models.UserRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding account collection: %w", err)
	}
	return kv.Set(ctx, keyAccounts, data)
}

// txKV is implemented by KV backends that can scope a batch of
// operations to one database transaction.
type txKV interface {
	InTx(ctx context.Context, fn func(kv KV) error) error
}

// Update runs fn over the current collection and persists its result,
// holding the store lock for the whole load-modify-save cycle. When fn
// returns an error nothing is written and the error is passed through.
// On a transactional backend the read and the write share one
// transaction.
func (a *Accounts) Update(ctx context.Context, fn func(records []models.UserRecord) ([]models.UserRecord, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tx, ok := a.kv.(txKV); ok {
		return tx.InTx(ctx, func(kv KV) error {
			return update(ctx, kv, fn)
		})
	}
	return update(ctx, a.kv, fn)
}

func update(ctx context.Context, kv KV, fn func(records []models.UserRecord) ([]models.UserRecord, error)) error {
	records, err := load(ctx, kv)
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return save(ctx, kv, updated)
}

// Session returns the national ID of the logged-in user, or "" when no
// session exists.
func (a *Accounts) Session(ctx context.Context) (string, error) {
	data, err := a.kv.Get(ctx, keySession)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *Accounts) SetSession(ctx context.Context, nationalID string) error {
	return a.kv.Set(ctx, keySession, []byte(nationalID))
}

// ClearSession removes the session marker. Clearing an absent marker is a
// no-op success.
func (a *Accounts) ClearSession(ctx context.Context) error {
	return a.kv.Delete(ctx, keySession)
}

// LastLogin returns the identifier last used for a successful login, for
// prefilling the login screen. Empty when never logged in.
func (a *Accounts) LastLogin(ctx context.Context) (string, error) {
	data, err := a.kv.Get(ctx, keyLastLogin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *Accounts) SetLastLogin(ctx context.Context, nationalID string) error {
	return a.kv.Set(ctx, keyLastLogin, []byte(nationalID))
}

// ProfileImage returns the stored profile photo for the given user, or nil
// when none was set.
func (a *Accounts) ProfileImage(ctx context.Context, nationalID string) ([]byte, error) {
	return a.kv.Get(ctx, keyProfileImagePrefix+nationalID)
}

func (a *Accounts) SetProfileImage(ctx context.Context, nationalID string, img []byte) error {
	return a.kv.Set(ctx, keyProfileImagePrefix+nationalID, img)
}

func (a *Accounts) DeleteProfileImage(ctx context.Context, nationalID string) error {
	return a.kv.Delete(ctx, keyProfileImagePrefix+nationalID)
}
