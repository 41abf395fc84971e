package validation

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/accounts-server/internal/model"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email   string
		wantErr bool
	}{
		{email: "alice@example.com"},
		{email: "first.last+tag@sub.example.co.uk"},
		{email: "o'brien@example.ie"},
		{email: "x@a-b.io"},
		{email: "", wantErr: true},
		{email: "alice", wantErr: true},
		{email: "alice@localhost", wantErr: true},
		{email: "alice@-example.com", wantErr: true},
		{email: "alice@example-.com", wantErr: true},
		{email: ".alice@example.com", wantErr: true},
		{email: "al..ice@example.com", wantErr: true},
		{email: "alice@@example.com", wantErr: true},
		{email: "ali ce@example.com", wantErr: true},
		{email: "alice@example.com ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidEmailFormat))
			assert.True(t, errors.Is(err, model.ErrValidationFailed))

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "email", verr.Field)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		password   string
		wantReason string
	}{
		{name: "valid minimal", password: "Abcde1!"},
		{name: "valid exactly six", password: "aB3$xy"},
		{name: "valid all symbols", password: "Aa1@$!%*?&"},
		{name: "empty", password: "", wantReason: "password is required"},
		{name: "short", password: "short", wantReason: "at least 6"},
		{name: "five chars otherwise valid", password: "aB3$x", wantReason: "at least 6"},
		{name: "no lowercase", password: "ABCDE1!", wantReason: "lowercase"},
		{name: "no uppercase", password: "abcde1!", wantReason: "uppercase"},
		{name: "no digit", password: "Abcdef!", wantReason: "digit"},
		{name: "no symbol", password: "Abcdef1", wantReason: "one of"},
		{name: "foreign symbol", password: "Abcde1!#", wantReason: "may only contain"},
		{name: "space", password: "Abc de1!", wantReason: "may only contain"},
		{name: "non ascii", password: "Äbcde1!x", wantReason: "may only contain"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidPasswordFormat))
			assert.Contains(t, err.Error(), tt.wantReason)
		})
	}
}

func TestValidatePassword_MatchesPolicy(t *testing.T) {
	alphabet := []rune("abcXYZ019" + PasswordSymbols + "#~ é")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		n := rng.Intn(10)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		candidate := sb.String()

		got := ValidatePassword(candidate) == nil
		assert.Equal(t, acceptedByPolicy(candidate), got, "password %q", candidate)
	}
}

func TestValidate_ChecksEmailFirst(t *testing.T) {
	err := Validate(model.UserCredentials{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidEmailFormat))
	assert.False(t, errors.Is(err, model.ErrInvalidPasswordFormat))

	err = Validate(model.UserCredentials{Email: "alice@example.com", Password: "short"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidPasswordFormat))

	assert.NoError(t, Validate(model.UserCredentials{Email: "alice@example.com", Password: "Abcde1!"}))
}

func acceptedByPolicy(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}
