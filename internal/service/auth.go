// Package service contains the application services: the user directory with
// its session pointer, and the per-user pet store with all sub-records.
//
// In-memory state is authoritative for the lifetime of the process. Every
// mutation writes through to storage best-effort: a failed write is logged
// and counted, never surfaced as an operation failure.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	pkgcrypto "github.com/petpalapp/petpal/internal/crypto"
	"github.com/petpalapp/petpal/internal/errs"
	"github.com/petpalapp/petpal/internal/model"
	"github.com/petpalapp/petpal/internal/storage"
)

// Directory manages the registered-user list and the current session pointer.
type Directory struct {
	st  storage.Store
	log *zap.Logger

	mu      sync.Mutex
	users   []model.User
	current *model.User

	persistFails atomic.Int64
	now          func() time.Time
}

// NewDirectory loads the user list and persisted session and returns a ready
// directory. Storage read failures degrade to an empty directory / logged-out
// state with a warning; they never fail construction.
func NewDirectory(ctx context.Context, st storage.Store, log *zap.Logger) (*Directory, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Directory{st: st, log: log, now: time.Now}

	var (
		rawUsers, rawSession string
		haveUsers, haveSess  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, ok, err := st.Get(gctx, storage.KeyUsers)
		if err != nil {
			d.warn(storage.KeyUsers, err)
			return nil
		}
		rawUsers, haveUsers = v, ok
		return nil
	})
	g.Go(func() error {
		v, ok, err := st.Get(gctx, storage.KeySessionUser)
		if err != nil {
			d.warn(storage.KeySessionUser, err)
			return nil
		}
		rawSession, haveSess = v, ok
		return nil
	})
	_ = g.Wait()

	if haveUsers {
		var users []model.User
		if err := storage.DecodeJSON(rawUsers, &users); err != nil {
			d.log.Warn("stored user list unreadable, starting empty", zap.Error(err))
		} else {
			d.users = users
		}
	}
	if haveSess && rawSession != "" {
		if u := d.findByID(rawSession); u != nil {
			cpy := *u
			d.current = &cpy
		} else {
			// Stale pointer (user list lost or corrupted): proceed logged out.
			d.log.Warn("session points at unknown user", zap.String("userId", rawSession))
		}
	}
	return d, nil
}

// Register creates a new user after case-insensitive uniqueness checks on
// email and username, then logs the new user in.
func (d *Directory) Register(ctx context.Context, username, email, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: username, email and password are required", errs.ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if strings.EqualFold(d.users[i].Email, email) {
			return model.User{}, errs.ErrEmailTaken
		}
		if strings.EqualFold(d.users[i].Username, username) {
			return model.User{}, errs.ErrUsernameTaken
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.User{}, fmt.Errorf("generate user id: %w", err)
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return model.User{}, fmt.Errorf("generate salt: %w", err)
	}

	u := model.User{
		ID:        id.String(),
		Username:  username,
		Email:     email,
		PwdHash:   pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth:  salt,
		CreatedAt: d.now(),
	}
	d.users = append(d.users, u)
	d.persistUsers(ctx)

	// Auto-login after registration.
	cpy := u
	d.current = &cpy
	d.persistSession(ctx, u.ID)
	return u, nil
}

// Login matches the email case-insensitively and verifies the password hash.
// On success the session pointer is set and persisted.
func (d *Directory) Login(ctx context.Context, email, password string) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		u := &d.users[i]
		if !strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			continue
		}
		if !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
			return model.User{}, errs.ErrInvalidCredentials
		}
		cpy := *u
		d.current = &cpy
		d.persistSession(ctx, u.ID)
		return cpy, nil
	}
	return model.User{}, errs.ErrInvalidCredentials
}

// Logout clears the session pointer. User and pet data stay untouched.
func (d *Directory) Logout(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return
	}
	d.current = nil
	if err := d.st.Remove(ctx, storage.KeySessionUser); err != nil {
		d.warn(storage.KeySessionUser, err)
	}
}

// UpdateProfile merges the given fields into the current user's directory
// record and persists the full list.
func (d *Directory) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return model.User{}, errs.ErrNoSession
	}
	u := d.findByID(d.current.ID)
	if u == nil {
		return model.User{}, errs.ErrNotFound
	}

	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
		if err != nil {
			return model.User{}, fmt.Errorf("generate salt: %w", err)
		}
		u.SaltAuth = salt
		u.PwdHash = pkgcrypto.HashPassword([]byte(*upd.Password), salt)
	}

	d.persistUsers(ctx)
	cpy := *u
	d.current = &cpy
	return cpy, nil
}

// CurrentUser returns a copy of the logged-in user, if any.
func (d *Directory) CurrentUser() (model.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return model.User{}, false
	}
	return *d.current, true
}

// Users returns a copy of the full directory.
func (d *Directory) Users() []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.User, len(d.users))
	copy(out, d.users)
	return out
}

// PersistFailures reports how many best-effort writes have failed so far.
func (d *Directory) PersistFailures() int64 { return d.persistFails.Load() }

// findByID is called with d.mu held (or before the directory is shared).
func (d *Directory) findByID(id string) *model.User {
	for i := range d.users {
		if d.users[i].ID == id {
			return &d.users[i]
		}
	}
	return nil
}

// persistUsers re-serializes the entire user list. O(n) per write; the
// directory is a modest single-device list.
func (d *Directory) persistUsers(ctx context.Context) {
	s, err := storage.EncodeJSON(d.users)
	if err == nil {
		err = d.st.Set(ctx, storage.KeyUsers, s)
	}
	if err != nil {
		d.warn(storage.KeyUsers, err)
	}
}

func (d *Directory) persistSession(ctx context.Context, userID string) {
	if err := d.st.Set(ctx, storage.KeySessionUser, userID); err != nil {
		d.warn(storage.KeySessionUser, err)
	}
}

func (d *Directory) warn(key string, err error) {
	d.persistFails.Add(1)
	d.log.Warn("storage operation failed", zap.String("key", key), zap.Error(err))
}
