package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/service/users/models"
)

// bcrypt учитывает только первые 72 байта
const maxPasswordLength = 72

// Service сервис пользователей и аутентификации
type Service struct {
	userRepo          UserRepository
	sessions          SessionIssuer
	bcryptCost        int
	minPasswordLength int
	logger            Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, sessions SessionIssuer, bcryptCost, minPasswordLength int, logger Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		userRepo:          userRepo,
		sessions:          sessions,
		bcryptCost:        bcryptCost,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

// Register регистрирует пользователя с ролью USER
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: email=%s", req.Email)

	u, err := s.newUser(req.Name, req.Email, req.Password, domain.RoleUser)
	if err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", u.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create user email=%s: %v", u.Email, err)
		return nil, fmt.Errorf("%w: Register - create user: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d registered", created.ID)
	return models.FromDomainUser(created), nil
}

// Login проверяет пароль и выпускает токен сессии
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: email=%s", req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Login - get user: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", u.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(u.ID, u.Role)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", u.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", u.ID)
	return &models.LoginResponse{
		User:      *models.FromDomainUser(u),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetProfile получает профиль пользователя
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetProfile: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetProfile: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetProfile - get user: %v", ErrInternal, err)
	}

	return models.FromDomainUser(u), nil
}

// UpdateProfile изменяет имя, email и пароль
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: user id=%d", userID)

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateProfile: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - get user: %v", ErrInternal, err)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if u.Name == "" || u.Email == "" {
		return nil, fmt.Errorf("%w: name and email must not be empty", ErrInvalidInput)
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil ||
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*req.CurrentPassword)) != nil {
			s.logger.Warn("UpdateProfile: wrong current password for user id=%d", userID)
			return nil, ErrInvalidCredentials
		}

		hash, err := s.hashPassword(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("UpdateProfile: email=%s already registered", u.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("UpdateProfile: failed to update user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - update user: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: user id=%d updated", userID)
	return models.FromDomainUser(u), nil
}

// EnsureAdmin создает администратора при старте, если email еще не зарегистрирован
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		s.logger.Info("EnsureAdmin: admin account is not configured, skipping")
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn("EnsureAdmin: email=%s belongs to a non-admin user id=%d", existing.Email, existing.ID)
		}
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return fmt.Errorf("%w: EnsureAdmin - get user: %v", ErrInternal, err)
	}

	if name == "" {
		name = "Administrator"
	}
	u, err := s.newUser(name, email, password, domain.RoleAdmin)
	if err != nil {
		return err
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		return fmt.Errorf("%w: EnsureAdmin - create user: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: admin user id=%d created", created.ID)
	return nil
}

func (s *Service) newUser(name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	if len(password) < s.minPasswordLength || len(password) > maxPasswordLength {
		return "", fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, s.minPasswordLength, maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	return string(hash), nil
}
