package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	sharedauth "ats-backend/internal/shared/auth"
	"ats-backend/internal/shared/storage/kv"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "test")
	svc := NewService(kv.NewMemoryStore())
	svc.Cost = bcrypt.MinCost
	return svc
}

func TestDemoLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
	seeded, err = svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	rec, token, err := svc.Login(ctx, LoginInput{Email: " Demo@Example.com ", Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, "Demo User", rec.Name)

	claims, err := sharedauth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "ATS Demo Company", claims.Company)
	assert.Equal(t, DefaultRole, claims.Role)

	_, _, err = svc.Login(ctx, LoginInput{Email: DemoEmail, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ADA@corp.io", Password: "longenough", Company: "Corp"})
	require.NoError(t, err)
	assert.Equal(t, "ada@corp.io", rec.Email)
	assert.NotEqual(t, "longenough", rec.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ada 2", Email: "ada@corp.io", Password: "longenough", Company: "Corp"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@corp.io", Password: "short", Company: "Corp"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Login(ctx, LoginInput{Email: "ada@corp.io", Password: "longenough"})
	assert.NoError(t, err)
}
