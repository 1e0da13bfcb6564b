package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/gamification"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// GetLeaderboard retorna o ranking de contribuidores do último snapshot
func GetLeaderboard(service gamification.LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
			limit = parsed
		}

		leaderboard, err := service.GetLeaderboard(r.Context(), limit)
		if err != nil {
			logrus.Error("Erro ao buscar ranking de contribuidores:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking de contribuidores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(leaderboard)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do ranking de contribuidores:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetMyLeaderboardEntry retorna a posição do usuário logado no ranking
func GetMyLeaderboardEntry(service gamification.LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		entry, err := service.GetUserEntry(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error("Erro ao buscar posição no ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar posição no ranking", nil)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário ainda não entrou no ranking", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(entry)
		if err != nil {
			logrus.Error("Erro ao enviar resposta da posição no ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
