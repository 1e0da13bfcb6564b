package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/favoriting"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// ListFavorites retorna os IDs dos postos favoritados pelo usuário logado
func ListFavorites(store favoriting.FavoriteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		favorites, err := store.Get(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error("Erro ao buscar favoritos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar favoritos", nil)
			return
		}

		stationIDs := make([]string, 0, len(favorites))
		for stationID := range favorites {
			stationIDs = append(stationIDs, stationID)
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(map[string][]string{
			"station_ids": stationIDs,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta dos favoritos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ToggleFavorite alterna o favorito do usuário logado para um posto
func ToggleFavorite(store favoriting.FavoriteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		stationID := httprouter.ParamsFromContext(r.Context()).ByName("station_id")
		if stationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do posto não fornecido", nil)
			return
		}

		added, err := store.Toggle(r.Context(), userClaims.UserID, stationID)
		if err != nil {
			logrus.Error("Erro ao alternar favorito:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao alternar favorito", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(map[string]bool{
			"favorited": added,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta do favorito:", err)
		}
	}
}
