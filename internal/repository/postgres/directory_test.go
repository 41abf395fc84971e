package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/security"
)

var (
	checkTakenQuery = regexp.QuoteMeta(`SELECT normalized_username = $1, normalized_email = $2 FROM users`)
	insertUserQuery = regexp.QuoteMeta(`INSERT INTO users`)
	findByNameQuery = regexp.QuoteMeta(`FROM users WHERE normalized_username = $1`)
	findByIDQuery   = regexp.QuoteMeta(`FROM users WHERE id = $1`)
	getClaimsQuery  = regexp.QuoteMeta(`SELECT claim_type, claim_value FROM user_claims WHERE user_id = $1`)
	addClaimQuery   = regexp.QuoteMeta(`INSERT INTO user_claims`)
	delClaimQuery   = regexp.QuoteMeta(`DELETE FROM user_claims`)
	listUsersQuery  = regexp.QuoteMeta(`FROM users ORDER BY username`)

	userColumns = []string{"id", "username", "email", "password_hash", "created_at"}
)

func newDirectoryWithMock(t *testing.T) (*Directory, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewDirectory(db, security.NewHasher(bcrypt.MinCost)), mock
}

func TestDirectory_CreateUser(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		reasons []string
		wantErr error
		dbErr   bool
	}{
		{
			name: "successful creation",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(checkTakenQuery).
					WithArgs("ALICE", "ALICE@EXAMPLE.COM").
					WillReturnRows(sqlmock.NewRows([]string{"u", "e"}))
				mock.ExpectExec(insertUserQuery).
					WithArgs(sqlmock.AnyArg(), "alice", "ALICE", "alice@example.com", "ALICE@EXAMPLE.COM",
						sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "username and email taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(checkTakenQuery).
					WithArgs("ALICE", "ALICE@EXAMPLE.COM").
					WillReturnRows(sqlmock.NewRows([]string{"u", "e"}).
						AddRow(true, false).
						AddRow(false, true))
			},
			reasons: []string{
				"Username 'alice' is already taken.",
				"Email 'alice@example.com' is already taken.",
			},
			wantErr: model.ErrDuplicateUser,
		},
		{
			name: "unique violation on insert",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(checkTakenQuery).
					WillReturnRows(sqlmock.NewRows([]string{"u", "e"}))
				mock.ExpectExec(insertUserQuery).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: emailConstraint})
			},
			reasons: []string{"Email 'alice@example.com' is already taken."},
			wantErr: model.ErrDuplicateUser,
		},
		{
			name: "database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(checkTakenQuery).
					WillReturnError(errors.New("db down"))
			},
			dbErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, mock := newDirectoryWithMock(t)
			tt.setup(mock)

			user, err := d.CreateUser(context.Background(), "alice", "alice@example.com", "Abcde1!")

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				var dirErr *model.DirectoryError
				require.ErrorAs(t, err, &dirErr)
				assert.Equal(t, tt.reasons, dirErr.Reasons)
			case tt.dbErr:
				require.Error(t, err)
				var dirErr *model.DirectoryError
				assert.False(t, errors.As(err, &dirErr))
			default:
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, user.ID)
				assert.Equal(t, "alice", user.Username)
				require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abcde1!")))
			}
		})
	}
}

func TestDirectory_FindByUsername(t *testing.T) {
	d, mock := newDirectoryWithMock(t)
	id := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(findByNameQuery).
		WithArgs("BOB").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "bob", "bob@x.com", "hash", created))

	user, err := d.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, model.UserIdentity{
		ID:           id,
		Username:     "bob",
		Email:        "bob@x.com",
		PasswordHash: "hash",
		CreatedAt:    created,
	}, user)
}

func TestDirectory_FindByID_NotFound(t *testing.T) {
	d, mock := newDirectoryWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := d.FindByID(context.Background(), id)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDirectory_VerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret1!"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		rows     *sqlmock.Rows
		wantErr  error
	}{
		{
			name:     "match",
			password: "Secret1!",
			rows:     sqlmock.NewRows(userColumns).AddRow(uuid.NewString(), "bob", "bob@x.com", string(hash), time.Now()),
		},
		{
			name:     "mismatch",
			password: "Secret2!",
			rows:     sqlmock.NewRows(userColumns).AddRow(uuid.NewString(), "bob", "bob@x.com", string(hash), time.Now()),
			wantErr:  model.ErrPasswordMismatch,
		},
		{
			name:     "unknown user",
			password: "Secret1!",
			rows:     sqlmock.NewRows(userColumns),
			wantErr:  model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, mock := newDirectoryWithMock(t)
			mock.ExpectQuery(findByNameQuery).WithArgs("BOB").WillReturnRows(tt.rows)

			err := d.VerifyPassword(context.Background(), "bob", tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDirectory_GetClaims(t *testing.T) {
	d, mock := newDirectoryWithMock(t)
	user := model.UserIdentity{ID: uuid.New()}

	mock.ExpectQuery(getClaimsQuery).
		WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"claim_type", "claim_value"}).
			AddRow("role", "admin").
			AddRow("role", "auditor"))

	claims, err := d.GetClaims(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimSet{
		{Type: "role", Value: "admin"},
		{Type: "role", Value: "auditor"},
	}, claims)
}

func TestDirectory_AddClaim(t *testing.T) {
	t.Run("inserts with conflict guard", func(t *testing.T) {
		d, mock := newDirectoryWithMock(t)
		user := model.UserIdentity{ID: uuid.New()}

		mock.ExpectExec(addClaimQuery+".*"+regexp.QuoteMeta("ON CONFLICT (user_id, claim_type, claim_value) DO NOTHING")).
			WithArgs(user.ID, "role", "admin").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, d.AddClaim(context.Background(), user, model.AdminRoleClaim))
	})

	t.Run("unknown user", func(t *testing.T) {
		d, mock := newDirectoryWithMock(t)
		user := model.UserIdentity{ID: uuid.New()}

		mock.ExpectExec(addClaimQuery).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

		err := d.AddClaim(context.Background(), user, model.AdminRoleClaim)
		var dirErr *model.DirectoryError
		require.ErrorAs(t, err, &dirErr)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestDirectory_RemoveClaim(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		d, mock := newDirectoryWithMock(t)
		user := model.UserIdentity{ID: uuid.New()}

		mock.ExpectExec(delClaimQuery).
			WithArgs(user.ID, "role", "admin").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, d.RemoveClaim(context.Background(), user, model.AdminRoleClaim))
	})

	t.Run("absent claim is a no-op", func(t *testing.T) {
		d, mock := newDirectoryWithMock(t)
		user := model.UserIdentity{ID: uuid.New()}

		mock.ExpectExec(delClaimQuery).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(findByIDQuery).
			WithArgs(user.ID).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(user.ID.String(), "bob", "bob@x.com", "hash", time.Now()))

		require.NoError(t, d.RemoveClaim(context.Background(), user, model.AdminRoleClaim))
	})

	t.Run("unknown user", func(t *testing.T) {
		d, mock := newDirectoryWithMock(t)
		user := model.UserIdentity{ID: uuid.New()}

		mock.ExpectExec(delClaimQuery).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(findByIDQuery).
			WillReturnError(sql.ErrNoRows)

		err := d.RemoveClaim(context.Background(), user, model.AdminRoleClaim)
		var dirErr *model.DirectoryError
		require.ErrorAs(t, err, &dirErr)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestDirectory_ListUsersOrderedByUsername(t *testing.T) {
	d, mock := newDirectoryWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(listUsersQuery).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.NewString(), "alice", "alice@x.com", "h1", now).
			AddRow(uuid.NewString(), "bob", "bob@x.com", "h2", now))

	users, err := d.ListUsersOrderedByUsername(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestDirectory_ListUsersOrderedByUsername_Empty(t *testing.T) {
	d, mock := newDirectoryWithMock(t)

	mock.ExpectQuery(listUsersQuery).WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := d.ListUsersOrderedByUsername(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
