package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	usernameConstraint = "users_normalized_username_key"
	emailConstraint    = "users_normalized_email_key"
)

var _ model.UserDirectory = (*Directory)(nil)

// DBTX is the subset of *sql.DB the directory uses.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Directory is a UserDirectory backed by the users and user_claims tables.
type Directory struct {
	db     DBTX
	hasher model.PasswordHasher
	now    func() time.Time
}

func NewDirectory(db DBTX, hasher model.PasswordHasher) *Directory {
	return &Directory{
		db:     db,
		hasher: hasher,
		now:    time.Now,
	}
}

func normalize(s string) string {
	return strings.ToUpper(s)
}

func (d *Directory) CreateUser(ctx context.Context, username, email, password string) (model.UserIdentity, error) {
	if err := d.checkTaken(ctx, username, email); err != nil {
		return model.UserIdentity{}, err
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return model.UserIdentity{}, repository.HashError(err)
	}

	user := model.UserIdentity{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    d.now().UTC(),
	}

	query := `INSERT INTO users (id, username, normalized_username, email, normalized_email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = d.db.ExecContext(ctx, query,
		user.ID, user.Username, normalize(user.Username), user.Email, normalize(user.Email),
		user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.UserIdentity{}, duplicateError(pgErr.ConstraintName, username, email)
		}
		return model.UserIdentity{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// checkTaken reports every uniqueness rule the new user would break.
func (d *Directory) checkTaken(ctx context.Context, username, email string) error {
	query := `SELECT normalized_username = $1, normalized_email = $2
			  FROM users WHERE normalized_username = $1 OR normalized_email = $2`

	rows, err := d.db.QueryContext(ctx, query, normalize(username), normalize(email))
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	defer rows.Close()

	var usernameTaken, emailTaken bool
	for rows.Next() {
		var sameUsername, sameEmail bool
		if err := rows.Scan(&sameUsername, &sameEmail); err != nil {
			return fmt.Errorf("failed to scan existing user: %w", err)
		}
		usernameTaken = usernameTaken || sameUsername
		emailTaken = emailTaken || sameEmail
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}

	var reasons []string
	if usernameTaken {
		reasons = append(reasons, repository.DuplicateUsernameReason(username))
	}
	if emailTaken {
		reasons = append(reasons, repository.DuplicateEmailReason(email))
	}
	if len(reasons) == 0 {
		return nil
	}

	return &model.DirectoryError{
		Op:      repository.OpCreateUser,
		Reasons: reasons,
		Err:     model.ErrDuplicateUser,
	}
}

// duplicateError covers a concurrent insert that won the race after checkTaken.
func duplicateError(constraint, username, email string) error {
	reason := repository.DuplicateUsernameReason(username)
	if constraint == emailConstraint {
		reason = repository.DuplicateEmailReason(email)
	}
	return &model.DirectoryError{
		Op:      repository.OpCreateUser,
		Reasons: []string{reason},
		Err:     model.ErrDuplicateUser,
	}
}

func (d *Directory) FindByUsername(ctx context.Context, username string) (model.UserIdentity, error) {
	query := `SELECT id, username, email, password_hash, created_at
			  FROM users WHERE normalized_username = $1`

	return d.findOne(ctx, query, normalize(username))
}

func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (model.UserIdentity, error) {
	query := `SELECT id, username, email, password_hash, created_at
			  FROM users WHERE id = $1`

	return d.findOne(ctx, query, id)
}

func (d *Directory) findOne(ctx context.Context, query string, arg any) (model.UserIdentity, error) {
	var user model.UserIdentity
	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserIdentity{}, model.ErrNotFound
		}
		return model.UserIdentity{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (d *Directory) VerifyPassword(ctx context.Context, username, password string) error {
	user, err := d.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return d.hasher.Compare(user.PasswordHash, password)
}

func (d *Directory) GetClaims(ctx context.Context, user model.UserIdentity) (model.ClaimSet, error) {
	query := `SELECT claim_type, claim_value FROM user_claims WHERE user_id = $1 ORDER BY id`

	rows, err := d.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	defer rows.Close()

	claims := model.ClaimSet{}
	for rows.Next() {
		var c model.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	return claims, nil
}

// AddClaim is idempotent: an existing identical claim is left in place.
func (d *Directory) AddClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	query := `INSERT INTO user_claims (user_id, claim_type, claim_value)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id, claim_type, claim_value) DO NOTHING`

	_, err := d.db.ExecContext(ctx, query, user.ID, claim.Type, claim.Value)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return repository.UserNotFound(repository.OpAddClaim)
		}
		return fmt.Errorf("failed to add claim: %w", err)
	}

	return nil
}

// RemoveClaim deletes claim from user. Removing an absent claim is a no-op.
func (d *Directory) RemoveClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	query := `DELETE FROM user_claims WHERE user_id = $1 AND claim_type = $2 AND claim_value = $3`

	res, err := d.db.ExecContext(ctx, query, user.ID, claim.Type, claim.Value)
	if err != nil {
		return fmt.Errorf("failed to remove claim: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove claim: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := d.FindByID(ctx, user.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return repository.UserNotFound(repository.OpRemoveClaim)
		}
		return err
	}
	return nil
}

// ListUsersOrderedByUsername orders by byte value so results match the in-memory directory.
func (d *Directory) ListUsersOrderedByUsername(ctx context.Context) ([]model.UserIdentity, error) {
	query := `SELECT id, username, email, password_hash, created_at
			  FROM users ORDER BY username COLLATE "C" ASC`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []model.UserIdentity{}
	for rows.Next() {
		var user model.UserIdentity
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
