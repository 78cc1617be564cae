package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*domain.User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *fakeRepo) Update(_ context.Context, u *domain.User) error {
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return userRepo.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeSessions struct{}

func (fakeSessions) Issue(userID int64, role domain.Role) (string, time.Time, error) {
	return "token-" + string(role), time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeSessions{}, bcrypt.MinCost, 6, nopLogger{})
}

func register(t *testing.T, s *Service, email string) *models.UserResponse {
	t.Helper()
	u, err := s.Register(context.Background(), &models.RegisterRequest{Name: "Budi", Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	u := register(t, s, "Budi@Example.com")

	assert.Equal(t, "USER", u.Role)
	assert.Equal(t, "budi@example.com", u.Email)
	assert.NotEqual(t, "secret1", repo.users[u.ID].PasswordHash)

	_, err := s.Register(context.Background(), &models.RegisterRequest{Name: "X", Email: "budi@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(context.Background(), &models.RegisterRequest{Name: "X", Email: "x@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	s := newTestService(newFakeRepo())
	register(t, s, "budi@example.com")
	ctx := context.Background()

	resp, err := s.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-USER", resp.Token)
	assert.Equal(t, "budi@example.com", resp.User.Email)

	_, err = s.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	u := register(t, s, "budi@example.com")
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, u.ID, &models.UpdateProfileRequest{NewPassword: ptr.Ptr("newsecret")})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "current password is required")

	_, err = s.UpdateProfile(ctx, u.ID, &models.UpdateProfileRequest{
		CurrentPassword: ptr.Ptr("wrong"), NewPassword: ptr.Ptr("newsecret"),
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.UpdateProfile(ctx, u.ID, &models.UpdateProfileRequest{
		CurrentPassword: ptr.Ptr("secret1"), NewPassword: ptr.Ptr("newsecret"),
	})
	require.NoError(t, err)

	_, err = s.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateProfile_NameAndEmail(t *testing.T) {
	s := newTestService(newFakeRepo())
	u := register(t, s, "budi@example.com")
	register(t, s, "siti@example.com")
	ctx := context.Background()

	resp, err := s.UpdateProfile(ctx, u.ID, &models.UpdateProfileRequest{Name: ptr.Ptr("Budi S")})
	require.NoError(t, err)
	assert.Equal(t, "Budi S", resp.Name)

	_, err = s.UpdateProfile(ctx, u.ID, &models.UpdateProfileRequest{Email: ptr.Ptr("siti@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.UpdateProfile(ctx, 999, &models.UpdateProfileRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, s.EnsureAdmin(ctx, "", "admin@example.com", "adminpass"))
	require.Len(t, repo.users, 1)
	for _, u := range repo.users {
		assert.Equal(t, domain.RoleAdmin, u.Role)
	}

	// Повторный запуск не создает дубликат
	require.NoError(t, s.EnsureAdmin(ctx, "", "admin@example.com", "adminpass"))
	assert.Len(t, repo.users, 1)

	// Без настроек ничего не делаем
	require.NoError(t, s.EnsureAdmin(ctx, "", "", ""))
	assert.Len(t, repo.users, 1)
}
