package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/coachos/coach-os-api/infrastructure/repository/mocks"
	"github.com/coachos/coach-os-api/internal/config"
	"github.com/coachos/coach-os-api/internal/domain"
)

func newTestService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, &config.Config{SecretKey: "chave-de-teste"})

	return service, userRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_SignUp(t *testing.T) {
	t.Run("Conta nova nasce ativa porém não confirmada", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.True(t, user.Active)
				assert.False(t, user.Confirmed)
				assert.NotEqual(t, "Senha123", user.PasswordHash)

				user.ID = 7
				return user, nil
			})

		user, err := service.SignUp("Ana", " Ana@Example.com ", "Senha123")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Email já cadastrado é rejeitado", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(&domain.User{ID: 1}, nil)

		_, err := service.SignUp("Ana", "ana@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Senha fraca é rejeitada antes da persistência", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(nil, nil)

		_, err := service.SignUp("Ana", "ana@example.com", "fraca")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("Campos obrigatórios ausentes são rejeitados", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.SignUp("", "ana@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_SignIn(t *testing.T) {
	confirmedUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           7,
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: hashPassword(t, "Senha123"),
			Active:       true,
			Confirmed:    true,
		}
	}

	t.Run("Credenciais válidas devolvem token e perfil", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(confirmedUser(t), nil)

		token, user, err := service.SignIn("ana@example.com", "Senha123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 7, user.ID)
		assert.Empty(t, user.PasswordHash)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, "Ana", claims.UserName)
	})

	t.Run("Conta não confirmada não entra", func(t *testing.T) {
		service, userRepo := newTestService(t)

		user := confirmedUser(t)
		user.Confirmed = false
		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

		_, _, err := service.SignIn("ana@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserNotConfirmed)
	})

	t.Run("Conta desativada não entra", func(t *testing.T) {
		service, userRepo := newTestService(t)

		user := confirmedUser(t)
		user.Active = false
		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)

		_, _, err := service.SignIn("ana@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Senha incorreta é rejeitada", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ana@example.com").Return(confirmedUser(t), nil)

		_, _, err := service.SignIn("ana@example.com", "errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Usuário inexistente é rejeitado", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("ninguem@example.com").Return(nil, nil)

		_, _, err := service.SignIn("ninguem@example.com", "Senha123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ConfirmAccount(t *testing.T) {
	t.Run("Token de confirmação libera a conta para login", func(t *testing.T) {
		service, userRepo := newTestService(t)

		user := &domain.User{ID: 7, Name: "Ana", Email: "ana@example.com", Active: true}

		token, err := service.ConfirmationToken(user)
		require.NoError(t, err)

		userRepo.EXPECT().GetUserByID(7).Return(user, nil)
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(updated *domain.User) error {
				assert.True(t, updated.Confirmed)
				return nil
			})

		require.NoError(t, service.ConfirmAccount(token))
	})

	t.Run("Confirmar uma conta já confirmada é inócuo", func(t *testing.T) {
		service, userRepo := newTestService(t)

		user := &domain.User{ID: 7, Confirmed: true}
		token, err := service.ConfirmationToken(user)
		require.NoError(t, err)

		userRepo.EXPECT().GetUserByID(7).Return(user, nil)

		require.NoError(t, service.ConfirmAccount(token))
	})

	t.Run("Token inválido é rejeitado", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.ConfirmAccount("nao-é-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "Senha completa é aceita", password: "Senha123", valid: true},
		{name: "Curta demais é rejeitada", password: "Se1a", valid: false},
		{name: "Sem maiúscula é rejeitada", password: "senha123", valid: false},
		{name: "Sem minúscula é rejeitada", password: "SENHA123", valid: false},
		{name: "Sem número é rejeitada", password: "SenhaForte", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("Troca válida grava o novo hash", func(t *testing.T) {
		service, userRepo := newTestService(t)

		user := &domain.User{ID: 7, PasswordHash: hashPassword(t, "Senha123")}
		userRepo.EXPECT().GetUserByID(7).Return(user, nil)
		userRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(updated *domain.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("NovaSenha456")))
				return nil
			})

		require.NoError(t, service.ChangePassword(7, "Senha123", "NovaSenha456"))
	})

	t.Run("Nova senha igual à atual é rejeitada", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByID(7).Return(&domain.User{ID: 7, PasswordHash: hashPassword(t, "Senha123")}, nil)

		err := service.ChangePassword(7, "Senha123", "Senha123")
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Senha atual incorreta é rejeitada", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByID(7).Return(&domain.User{ID: 7, PasswordHash: hashPassword(t, "Senha123")}, nil)

		err := service.ChangePassword(7, "errada", "NovaSenha456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
