package service

import (
	"PartsCatalog/internal/model"
	"PartsCatalog/internal/repo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, id int64, updates map[string]any) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) DeleteUserByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.NewNop().Sugar())

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	alice := &model.User{ID: 2, Email: "alice@example.com", Password: string(hash), Role: model.RoleAdmin}

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()

		user, err := svc.Login(ctx, "alice@example.com", "secret")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		assert.Equal(t, model.RoleAdmin, user.Role)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()

		user, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		user, err := svc.Login(ctx, "bob@example.com", "secret")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("store failure is not masked", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return((*model.User)(nil), errors.New("db down")).Once()

		_, err := svc.Login(ctx, "alice@example.com", "secret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.NewNop().Sugar())

	t.Run("ok, default role and hashed password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "john@example.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "john@example.com" && u.Role == model.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("p@ss")) == nil
		})).Return(&model.User{ID: 10, Email: "john@example.com", Role: model.RoleUser}, nil).Once()

		user, err := svc.Create(ctx, CreateUserInput{Name: "John", Email: "john@example.com", Password: "p@ss"})
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "john@example.com").Return(&model.User{ID: 1}, nil).Once()

		user, err := svc.Create(ctx, CreateUserInput{Name: "John", Email: "john@example.com", Password: "p@ss"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})

	t.Run("duplicate key from store", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "race@example.com").Return((*model.User)(nil), nil).Once()
		m.On("CreateUser", mock.Anything, mock.Anything).Return((*model.User)(nil), gorm.ErrDuplicatedKey).Once()

		_, err := svc.Create(ctx, CreateUserInput{Name: "R", Email: "race@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("invalid role", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Create(ctx, CreateUserInput{Name: "J", Email: "j@example.com", Password: "x", Role: "root"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing fields", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Create(ctx, CreateUserInput{Email: "j@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.NewNop().Sugar())

	t.Run("without password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: 5}, nil).Once()
		m.On("UpdateUser", mock.Anything, int64(5), mock.MatchedBy(func(u map[string]any) bool {
			_, hasPassword := u["password"]
			return !hasPassword && u["name"] == "A" && u["role"] == model.RoleAdmin
		})).Return(nil).Once()

		err := svc.Update(ctx, 5, UpdateUserInput{Name: "A", Email: "a@example.com", Role: model.RoleAdmin})
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("with password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "a@example.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("UpdateUser", mock.Anything, int64(5), mock.MatchedBy(func(u map[string]any) bool {
			h, ok := u["password"].(string)
			return ok && bcrypt.CompareHashAndPassword([]byte(h), []byte("new")) == nil
		})).Return(nil).Once()

		err := svc.Update(ctx, 5, UpdateUserInput{Name: "A", Email: "a@example.com", Role: model.RoleUser, Password: "new"})
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("email owned by another user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "b@example.com").Return(&model.User{ID: 6}, nil).Once()

		err := svc.Update(ctx, 5, UpdateUserInput{Name: "A", Email: "b@example.com", Role: model.RoleUser})
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})

	t.Run("role required", func(t *testing.T) {
		m.ExpectedCalls = nil
		err := svc.Update(ctx, 5, UpdateUserInput{Name: "A", Email: "a@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUserService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.NewNop().Sugar())

	m.On("GetUserByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil).Once()
	m.On("GetUserByID", mock.Anything, int64(2)).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
	m.On("ListUsers", mock.Anything).Return([]model.User{{ID: 1}, {ID: 3}}, nil).Once()
	m.On("DeleteUser", mock.Anything, int64(3)).Return(nil).Once()

	u, err := svc.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, svc.Delete(ctx, 3))
	m.AssertExpectations(t)
}

func TestUserService_SeedUsers(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.NewNop().Sugar())

	for _, email := range []string{"admin@example.com", "user@example.com"} {
		m.On("DeleteUserByEmail", mock.Anything, email).Return(nil).Once()
		m.On("GetUserByEmail", mock.Anything, email).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
	}
	m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "admin@example.com" && u.Role == model.RoleAdmin
	})).Return(&model.User{ID: 1}, nil).Once()
	m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "user@example.com" && u.Role == model.RoleUser
	})).Return(&model.User{ID: 2}, nil).Once()

	assert.NoError(t, svc.SeedUsers(ctx))
	m.AssertExpectations(t)
}

func TestUserService_Logging(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	m := new(mockUserRepo)
	svc := NewUserService(m, zap.New(core).Sugar())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	alice := &model.User{ID: 2, Email: "alice@example.com", Password: string(hash), Role: model.RoleAdmin}

	t.Run("failed login is logged without password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()

		_, err := svc.Login(ctx, "alice@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		entries := logs.FilterMessage("login failed").TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "alice@example.com", entries[0].ContextMap()["email"])
			assert.NotContains(t, entries[0].ContextMap(), "password")
		}
	})

	t.Run("delete is logged with id", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("DeleteUser", mock.Anything, int64(7)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, 7))
		entries := logs.FilterMessage("user deleted").TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, int64(7), entries[0].ContextMap()["id"])
		}
	})

	t.Run("failed delete is not logged as success", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("DeleteUser", mock.Anything, int64(8)).Return(errors.New("db down")).Once()

		assert.Error(t, svc.Delete(ctx, 8))
		assert.Zero(t, logs.FilterMessage("user deleted").Len())
	})
}
