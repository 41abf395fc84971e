// Package memory implements an in-process UserDirectory for development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/repository"
)

var _ model.UserDirectory = (*Directory)(nil)

type entry struct {
	user   model.UserIdentity
	claims model.ClaimSet
}

// Directory keeps users and claims in memory. Safe for concurrent use.
type Directory struct {
	mu         sync.RWMutex
	hasher     model.PasswordHasher
	byID       map[uuid.UUID]*entry
	byUsername map[string]*entry
	byEmail    map[string]*entry
	now        func() time.Time
}

// NewDirectory returns an empty directory hashing passwords with hasher.
func NewDirectory(hasher model.PasswordHasher) *Directory {
	return &Directory{
		hasher:     hasher,
		byID:       make(map[uuid.UUID]*entry),
		byUsername: make(map[string]*entry),
		byEmail:    make(map[string]*entry),
		now:        time.Now,
	}
}

func normalize(s string) string {
	return strings.ToUpper(s)
}

// CreateUser stores a new user. Username and email are unique regardless of case.
func (d *Directory) CreateUser(ctx context.Context, username, email, password string) (model.UserIdentity, error) {
	hash, err := d.hasher.Hash(password)
	if err != nil {
		return model.UserIdentity{}, repository.HashError(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var reasons []string
	if _, ok := d.byUsername[normalize(username)]; ok {
		reasons = append(reasons, repository.DuplicateUsernameReason(username))
	}
	if _, ok := d.byEmail[normalize(email)]; ok {
		reasons = append(reasons, repository.DuplicateEmailReason(email))
	}
	if len(reasons) > 0 {
		return model.UserIdentity{}, &model.DirectoryError{
			Op:      repository.OpCreateUser,
			Reasons: reasons,
			Err:     model.ErrDuplicateUser,
		}
	}

	e := &entry{
		user: model.UserIdentity{
			ID:           uuid.New(),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    d.now().UTC(),
		},
	}
	d.byID[e.user.ID] = e
	d.byUsername[normalize(username)] = e
	d.byEmail[normalize(email)] = e

	return e.user, nil
}

func (d *Directory) FindByUsername(ctx context.Context, username string) (model.UserIdentity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.byUsername[normalize(username)]
	if !ok {
		return model.UserIdentity{}, model.ErrNotFound
	}
	return e.user, nil
}

func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (model.UserIdentity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.byID[id]
	if !ok {
		return model.UserIdentity{}, model.ErrNotFound
	}
	return e.user, nil
}

// VerifyPassword returns ErrNotFound for an unknown user and ErrPasswordMismatch for a wrong password.
func (d *Directory) VerifyPassword(ctx context.Context, username, password string) error {
	user, err := d.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return d.hasher.Compare(user.PasswordHash, password)
}

// GetClaims returns a copy of the user's stored claims.
func (d *Directory) GetClaims(ctx context.Context, user model.UserIdentity) (model.ClaimSet, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.byID[user.ID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return append(model.ClaimSet{}, e.claims...), nil
}

// AddClaim stores claim for user. Adding a claim the user already holds is a no-op.
func (d *Directory) AddClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[user.ID]
	if !ok {
		return repository.UserNotFound(repository.OpAddClaim)
	}
	if !e.claims.Contains(claim) {
		e.claims = append(e.claims, claim)
	}
	return nil
}

// RemoveClaim deletes claim from user. Removing an absent claim is a no-op.
func (d *Directory) RemoveClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[user.ID]
	if !ok {
		return repository.UserNotFound(repository.OpRemoveClaim)
	}

	kept := e.claims[:0]
	for _, c := range e.claims {
		if c != claim {
			kept = append(kept, c)
		}
	}
	e.claims = kept
	return nil
}

func (d *Directory) ListUsersOrderedByUsername(ctx context.Context) ([]model.UserIdentity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]model.UserIdentity, 0, len(d.byID))
	for _, e := range d.byID {
		users = append(users, e.user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}
