package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/dto"
	"github.com/sanatech/marketing-api/internal/models"
)

type adminRepoStub struct {
	admins map[uint]models.Admin
	nextID uint
}

func newAdminRepoStub() *adminRepoStub {
	return &adminRepoStub{admins: map[uint]models.Admin{}, nextID: 1}
}

func (a *adminRepoStub) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = a.nextID
	a.nextID++
	a.admins[admin.ID] = *admin
	return nil
}

func (a *adminRepoStub) GetByID(ctx context.Context, id uint) (models.Admin, error) {
	admin, ok := a.admins[id]
	if !ok {
		return models.Admin{}, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func (a *adminRepoStub) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	for _, admin := range a.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return models.Admin{}, gorm.ErrRecordNotFound
}

func (a *adminRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := a.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (a *adminRepoStub) Save(ctx context.Context, admin *models.Admin) error {
	a.admins[admin.ID] = *admin
	return nil
}

func newTestAuthService(repo *adminRepoStub) AuthService {
	return NewAuthService(repo, validator.New(), "test-secret", time.Hour, testLogger())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "Admin@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", registered.Admin.Email)
	require.Equal(t, "admin", registered.Admin.Role)
	require.NotEmpty(t, registered.Token)

	stored := repo.admins[registered.Admin.ID]
	require.NotEqual(t, "correct-horse", stored.PasswordHash, "password must be hashed")

	logged, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, logged.Token)
	require.NotNil(t, logged.Admin.LastLogin)

	token, err := jwt.Parse(logged.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(registered.Admin.ID), claims["sub"])
	require.Equal(t, "admin", claims["role"])
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{Email: "ADMIN@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must look like a bad password")
}

func TestAuthLoginDeactivatedAccount(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	admin := repo.admins[registered.Admin.ID]
	admin.IsActive = false
	repo.admins[admin.ID] = admin

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthUpdateProfile(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{Email: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(context.Background(), registered.Admin.ID, dto.ProfileUpdateRequest{
		Username: "ops",
		Email:    "new@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "ops", profile.Username)
	require.Equal(t, "new@example.com", profile.Email)

	_, err = svc.Profile(context.Background(), 999)
	require.ErrorIs(t, err, ErrAdminNotFound)
}
