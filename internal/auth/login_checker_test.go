package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_LoggedUserID(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := NewLoginChecker(time.Hour, db)
	require.NotNil(t, loginChecker)

	ctx := context.Background()

	mock.ExpectGet(sessionKeyPrefix + "invalid-token").SetErr(redis.Nil)
	userID, err := loginChecker.LoggedUserID(ctx, "invalid-token")
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, userID)

	testToken := "test-token"
	sessionKey := sessionKeyPrefix + testToken

	mock.ExpectGet(sessionKey).SetVal(sessionValue("user-1", time.Now()))
	userID, err = loginChecker.LoggedUserID(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// expired session
	mock.ExpectGet(sessionKey).SetVal(sessionValue("user-1", time.Now().Add(-2*time.Hour)))
	userID, err = loginChecker.LoggedUserID(ctx, testToken)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, userID)
}
