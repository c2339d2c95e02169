package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myturn82/dragonj/internal/storage"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()

	db, err := storage.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.RunMigrations(db))

	return NewService(storage.NewUserRepository(db), "test-secret", ttl)
}

func TestSignUpAndVerify(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	token, user, err := svc.SignUp(ctx, "Owner@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	verified, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "owner@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.SignUp(ctx, "owner@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "owner@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "owner@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutRevokesToken(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	token, _, err := svc.SignUp(ctx, "owner@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Idempotent: signing out again is fine.
	assert.NoError(t, svc.SignOut(ctx, token))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other := newTestService(t, time.Hour)
	ctx := context.Background()

	token, _, err := other.SignUp(ctx, "owner@example.com", "hunter22")
	require.NoError(t, err)

	// Same secret but different database: the session does not exist here.
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
