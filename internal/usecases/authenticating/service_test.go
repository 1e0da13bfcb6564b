package authenticating

import (
	"context"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/fuelrank/fuelrank-api/internal/config"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-de-teste"
	return cfg
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestCreateUser(t *testing.T) {
	t.Run("Usuário novo nasce ativo, motorista e Iniciante", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(nil, nil)
		userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.True(t, user.Active)
				assert.Equal(t, domain.RoleDriver, user.RoleID)
				assert.Equal(t, domain.LevelIniciante, user.InfluenceLevel)
				assert.NotEqual(t, "senha123", user.PasswordHash)
				return user, nil
			})

		service := NewService(userRepo, testConfig())

		created, err := service.CreateUser(context.Background(), &domain.User{
			DisplayName:  "Ana",
			Email:        "  Ana@Example.com ",
			PasswordHash: "senha123",
		})

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", created.Email)
		assert.Empty(t, created.PasswordHash)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(&domain.User{ID: 1}, nil)

		service := NewService(userRepo, testConfig())

		_, err := service.CreateUser(context.Background(), &domain.User{
			DisplayName:  "Ana",
			Email:        "ana@example.com",
			PasswordHash: "senha123",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserAlreadyExists))
	})

	t.Run("Senha fraca é rejeitada", func(t *testing.T) {
		tests := []struct {
			name     string
			password string
		}{
			{name: "Curta demais", password: "a1"},
			{name: "Só letras", password: "abcdefgh"},
			{name: "Só números", password: "12345678"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				userRepo := mocks.NewMockUserRepository(ctrl)
				userRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)

				service := NewService(userRepo, testConfig())

				_, err := service.CreateUser(context.Background(), &domain.User{
					DisplayName:  "Ana",
					Email:        "ana@example.com",
					PasswordHash: tt.password,
				})

				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrWeakPassword))
			})
		}
	})

	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockUserRepository(ctrl), testConfig())

		_, err := service.CreateUser(context.Background(), &domain.User{Email: "ana@example.com"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequiredData))
	})
}

func TestLoginUser(t *testing.T) {
	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           1,
			DisplayName:  "Ana",
			Email:        "ana@example.com",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
			RoleID:       domain.RoleDriver,
		}
	}

	t.Run("Login válido emite token aceito pelo próprio serviço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())

		token, err := service.LoginUser(context.Background(), "Ana@Example.com", "senha123")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, domain.RoleDriver, claims.UserRoleID)
	})

	t.Run("Senha errada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(activeUser(t), nil)

		service := NewService(userRepo, testConfig())

		_, err := service.LoginUser(context.Background(), "ana@example.com", "outra-senha")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("Email desconhecido devolve o mesmo erro de credenciais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ninguem@example.com").Return(nil, nil)

		service := NewService(userRepo, testConfig())

		_, err := service.LoginUser(context.Background(), "ninguem@example.com", "senha123")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("Usuário desativado não entra", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		disabled := activeUser(t)
		disabled.Active = false

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(disabled, nil)

		service := NewService(userRepo, testConfig())

		_, err := service.LoginUser(context.Background(), "ana@example.com", "senha123")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserDisabled))
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockUserRepository(ctrl), testConfig())

		_, err := service.ValidateToken("cabecalho.corpo.assinatura")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Token assinado com outro segredo é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userRepo := mocks.NewMockUserRepository(ctrl)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(&domain.User{
			ID:           1,
			Email:        "ana@example.com",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
		}, nil)

		issuer := NewService(userRepo, testConfig())
		token, err := issuer.LoginUser(context.Background(), "ana@example.com", "senha123")
		require.NoError(t, err)

		otherCfg := &config.Config{}
		otherCfg.Auth.Secret = "outro-segredo"
		verifier := NewService(mocks.NewMockUserRepository(gomock.NewController(t)), otherCfg)

		_, err = verifier.ValidateToken(token)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}
