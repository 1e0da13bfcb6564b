package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/ranking"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// GetRanking retorna a listagem de postos já filtrada, ordenada e com o
// melhor preço em destaque. Todos os parâmetros vêm da query string:
//
//	search       texto livre sobre nome, endereço, bandeira e combustíveis
//	fuel         tag de combustível, "todos" ou "favoritos"
//	sort         "price" ou "rating"
//	hide_flagged "true" esconde postos com selo de denúncias
//	lat, lng     posição do usuário, para anotação de distância
func GetRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		rankingCtx := domain.RankingContext{
			SearchQuery: query.Get("search"),
			FuelFilter:  query.Get("fuel"),
			SortBy:      query.Get("sort"),
			HideFlagged: query.Get("hide_flagged") == "true",
		}

		if rankingCtx.FuelFilter == "" {
			rankingCtx.FuelFilter = domain.FuelFilterAll
		}

		if lat, err := strconv.ParseFloat(query.Get("lat"), 64); err == nil {
			if lng, err := strconv.ParseFloat(query.Get("lng"), 64); err == nil {
				rankingCtx.UserLat = &lat
				rankingCtx.UserLng = &lng
			}
		}

		// O filtro de favoritos só faz sentido com usuário identificado
		userID := 0
		if userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			userID = userClaims.UserID
		}

		response, err := service.RankStations(r.Context(), userID, rankingCtx)
		if err != nil {
			logrus.Error("Erro ao montar listagem de postos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar postos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(response)
		if err != nil {
			logrus.Error("Erro ao enviar resposta da listagem de postos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
