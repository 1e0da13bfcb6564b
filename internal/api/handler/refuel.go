package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/refueling"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CreateRefuel registra um abastecimento do usuário logado
func CreateRefuel(service refueling.RefuelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.NewRefuelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		refuel, err := service.Record(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleRefuelError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(refuel)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do abastecimento:", err)
		}
	}
}

// ListRefuels retorna o histórico de abastecimentos do usuário logado.
// Filtros via query string: fuel (tag ou "all") e period (dias; 0 = tudo).
func ListRefuels(service refueling.RefuelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		query := r.URL.Query()

		filter := domain.RefuelFilter{
			FuelType: query.Get("fuel"),
		}
		if period, err := strconv.Atoi(query.Get("period")); err == nil {
			filter.PeriodDays = period
		}

		refuels, err := service.History(r.Context(), userClaims.UserID, filter)
		if err != nil {
			handleRefuelError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(refuels)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do histórico de abastecimentos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleRefuelError traduz os erros do serviço de abastecimentos para a API
func handleRefuelError(w http.ResponseWriter, err error) {
	var refuelErr *refueling.RefuelError
	if errors.As(err, &refuelErr) {
		apiErrors.WriteError(w, refuelErr.Code, refuelErr.Error(), nil)
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
