package service

import (
	"PartsCatalog/internal/model"
	"PartsCatalog/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService: вход в систему и администрирование пользователей.
type UserService struct {
	repo     repo.UserRepository
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, validate: validator.New(), logger: logger}
}

// CreateUserInput: данные нового пользователя.
type CreateUserInput struct {
	Name     string     `validate:"required"`
	Email    string     `validate:"required"`
	Password string     `validate:"required"`
	Role     model.Role `validate:"oneof=admin user"`
}

// UpdateUserInput: данные для изменения пользователя. При пустом Password пароль не меняется.
type UpdateUserInput struct {
	Name     string     `validate:"required"`
	Email    string     `validate:"required"`
	Role     model.Role `validate:"required,oneof=admin user"`
	Password string
}

// Login проверяет email и пароль. Любое несовпадение: ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		// пароль и причину отказа в лог не пишем
		s.logger.Infow("login failed", "email", email)
		return nil, ErrInvalidCredentials
	}
	s.logger.Debugw("user logged in", "id", u.ID, "email", u.Email)
	return u, nil
}

// Create создаёт пользователя; пароль хешируется bcrypt. Роль по умолчанию: user.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.CreateUser(ctx, &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Infow("user created", "id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

// Update перезаписывает имя, email и роль; пароль: только если передан новый.
// Несуществующий id не считается ошибкой.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find user: %w", err)
	}
	if existing != nil && existing.ID != id {
		return ErrEmailTaken
	}

	updates := map[string]any{
		"name":  in.Name,
		"email": in.Email,
		"role":  in.Role,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = string(hash)
	}
	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	s.logger.Infow("user updated", "id", id, "email", in.Email, "role", in.Role, "password_changed", in.Password != "")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Infow("user deleted", "id", id)
	return nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// seedAccounts: тестовые учётные записи, пересоздаются SeedUsers.
var seedAccounts = []CreateUserInput{
	{Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
	{Name: "Regular User", Email: "user@example.com", Password: "user123", Role: model.RoleUser},
}

// SeedUsers удаляет и заново создаёт тестовых пользователей admin@example.com и user@example.com.
func (s *UserService) SeedUsers(ctx context.Context) error {
	for _, acc := range seedAccounts {
		if err := s.repo.DeleteUserByEmail(ctx, acc.Email); err != nil {
			return fmt.Errorf("delete seed user %s: %w", acc.Email, err)
		}
	}
	for _, acc := range seedAccounts {
		if _, err := s.Create(ctx, acc); err != nil {
			return fmt.Errorf("create seed user %s: %w", acc.Email, err)
		}
	}
	s.logger.Infow("test users recreated", "count", len(seedAccounts))
	return nil
}
