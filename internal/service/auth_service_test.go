package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (AuthService, *memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	return NewAuthService(repos.Accounts, repos.Users, repos.TrainerProfiles, testSecret, time.Hour), repos
}

func TestRegister_UserCreatesProfile(t *testing.T) {
	auth, repos := newAuth(t)
	ctx := context.Background()

	account, err := auth.Register(ctx, RegisterInput{
		Email:    "  Ana@Example.com ",
		Password: "secreto",
		Role:     domain.RoleUser,
		Name:     "Ana",
		Weight:   ptr(62.0),
		Goals:    []string{"correr 10k"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)
	assert.Empty(t, account.PasswordHash)

	user, err := repos.Users.GetByAccountID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, 62.0, *user.Weight)
	assert.Equal(t, []string{"correr 10k"}, user.Goals)
}

func TestRegister_TrainerCreatesProfile(t *testing.T) {
	auth, repos := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{
		Email: "marta@example.com", Password: "secreto", Role: domain.RoleTrainer, Name: "Marta",
	})
	assert.ErrorIs(t, err, ErrValidationFailed, "specialty is required for trainers")

	account, err := auth.Register(ctx, RegisterInput{
		Email: "marta@example.com", Password: "secreto", Role: domain.RoleTrainer, Name: "Marta",
		Specialty: "fuerza", Certifications: []string{"NSCA"},
	})
	require.NoError(t, err)

	profile, err := repos.TrainerProfiles.GetByAccountID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marta", profile.FullName)
	assert.Equal(t, "fuerza", profile.Specialty)
	assert.True(t, profile.IsActive)
	assert.False(t, profile.IsVerified)
}

func TestRegister_Rejections(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()
	valid := RegisterInput{Email: "ana@example.com", Password: "secreto", Role: domain.RoleUser, Name: "Ana"}

	short := valid
	short.Password = "12345"
	_, err := auth.Register(ctx, short)
	assert.ErrorIs(t, err, ErrValidationFailed)

	badRole := valid
	badRole.Role = "admin"
	_, err = auth.Register(ctx, badRole)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = auth.Register(ctx, valid)
	require.NoError(t, err)

	dup := valid
	dup.Email = "ANA@example.com"
	_, err = auth.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()
	account, err := auth.Register(ctx, RegisterInput{
		Email: "ana@example.com", Password: "secreto", Role: domain.RoleUser, Name: "Ana",
	})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "ana@example.com", "incorrecto")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = auth.Login(ctx, "nadie@example.com", "secreto")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	token, loggedIn, err := auth.Login(ctx, "Ana@example.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, account.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, account.ID.Hex(), claims.AccountID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
}

func TestMe(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()
	account, err := auth.Register(ctx, RegisterInput{
		Email: "ana@example.com", Password: "secreto", Role: domain.RoleUser, Name: "Ana",
	})
	require.NoError(t, err)

	me, err := auth.Me(ctx, account.ID)

	require.NoError(t, err)
	assert.Equal(t, account.ID, me.Account.ID)
	assert.Empty(t, me.Account.PasswordHash)
	require.NotNil(t, me.User)
	assert.Equal(t, "Ana", me.User.Name)
	assert.Nil(t, me.TrainerProfile)
}
