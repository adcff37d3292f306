package auth

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
	"github.com/nwk-labs/network-backend/utils/dbtest"
	"github.com/nwk-labs/network-backend/utils/dotenv"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func newTestService(t *testing.T) *Service {
	db, err := dbtest.NewDB()
	require.NoError(t, err)
	return NewService(store.NewStores(db), testSecret)
}

func TestRegister(t *testing.T) {
	t.Run("Test_register_authenticates_immediately", func(t *testing.T) {
		service := newTestService(t)

		user, token, err := service.Register("alice", "alice@example.com", "hunter2")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)
		require.NotEqual(t, "hunter2", user.PasswordHash)

		subject, err := service.ParseToken(token)
		require.NoError(t, err)
		require.Equal(t, user.Id, subject)
	})

	t.Run("Test_duplicate_username_is_conflict", func(t *testing.T) {
		service := newTestService(t)

		_, _, err := service.Register("alice", "alice@example.com", "hunter2")
		require.NoError(t, err)

		_, _, err = service.Register("alice", "other@example.com", "different")
		require.True(t, errors.Is(err, utils.ErrConflict))
	})

	t.Run("Test_blank_username_rejected", func(t *testing.T) {
		service := newTestService(t)
		_, _, err := service.Register("   ", "a@example.com", "hunter2")
		require.True(t, errors.Is(err, utils.ErrInvalidInput))
	})
}

func TestLogin(t *testing.T) {
	t.Run("Test_valid_credentials", func(t *testing.T) {
		service := newTestService(t)
		registered, _, err := service.Register("alice", "alice@example.com", "hunter2")
		require.NoError(t, err)

		user, token, err := service.Login("alice", "hunter2")
		require.NoError(t, err)
		require.Equal(t, registered.Id, user.Id)

		subject, err := service.ParseToken(token)
		require.NoError(t, err)
		require.Equal(t, registered.Id, subject)
	})

	t.Run("Test_wrong_password_and_unknown_user_look_identical", func(t *testing.T) {
		service := newTestService(t)
		_, _, err := service.Register("alice", "alice@example.com", "hunter2")
		require.NoError(t, err)

		_, _, errWrongPassword := service.Login("alice", "wrong")
		_, _, errUnknownUser := service.Login("nobody", "hunter2")
		require.True(t, errors.Is(errWrongPassword, utils.ErrUnauthenticated))
		require.True(t, errors.Is(errUnknownUser, utils.ErrUnauthenticated))
		require.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
	})
}

func TestParseToken(t *testing.T) {
	t.Run("Test_garbage_token_rejected", func(t *testing.T) {
		service := newTestService(t)
		_, err := service.ParseToken("not-a-token")
		require.True(t, errors.Is(err, utils.ErrUnauthenticated))
	})

	t.Run("Test_token_signed_with_other_secret_rejected", func(t *testing.T) {
		service := newTestService(t)
		other := NewService(nil, "different-secret")
		token, err := other.IssueToken("some-user")
		require.NoError(t, err)

		_, err = service.ParseToken(token)
		require.True(t, errors.Is(err, utils.ErrUnauthenticated))
	})
}
