package favoriting

import (
	"context"
	"testing"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestToggle(t *testing.T) {
	t.Run("Adicionar favorito", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		favoriteRepo.EXPECT().Toggle(gomock.Any(), 42, "st-1").Return(true, nil)

		store := NewService(favoriteRepo)

		added, err := store.Toggle(context.Background(), 42, "st-1")

		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("Remover favorito existente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		favoriteRepo.EXPECT().Toggle(gomock.Any(), 42, "st-1").Return(false, nil)

		store := NewService(favoriteRepo)

		added, err := store.Toggle(context.Background(), 42, "st-1")

		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("Erro do banco é propagado com contexto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
		favoriteRepo.EXPECT().Toggle(gomock.Any(), 42, "st-1").Return(false, errors.New("connection refused"))

		store := NewService(favoriteRepo)

		_, err := store.Toggle(context.Background(), 42, "st-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrDatabaseOperation.Error())
	})
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	favoriteRepo := mocks.NewMockFavoriteRepository(ctrl)
	favoriteRepo.EXPECT().GetByUser(gomock.Any(), 42).Return(map[string]struct{}{"st-1": {}, "st-2": {}}, nil)

	store := NewService(favoriteRepo)

	favorites, err := store.Get(context.Background(), 42)

	require.NoError(t, err)
	assert.Len(t, favorites, 2)
	assert.Contains(t, favorites, "st-1")
}
