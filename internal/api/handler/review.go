package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/reviewing"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CreateReview registra uma avaliação do usuário logado
func CreateReview(service reviewing.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.NewReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		review, err := service.SubmitReview(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleReviewError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(review)
		if err != nil {
			logrus.Error("Erro ao enviar resposta da avaliação:", err)
		}
	}
}

// ListStationReviews retorna as avaliações de um posto
func ListStationReviews(service reviewing.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if stationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do posto não fornecido", nil)
			return
		}

		reviews, err := service.ListStationReviews(r.Context(), stationID)
		if err != nil {
			handleReviewError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(reviews)
		if err != nil {
			logrus.Error("Erro ao enviar resposta das avaliações:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleReviewError traduz os erros do serviço de avaliações para a API
func handleReviewError(w http.ResponseWriter, err error) {
	var reviewErr *reviewing.ReviewError
	if errors.As(err, &reviewErr) {
		apiErrors.WriteError(w, reviewErr.Code, reviewErr.Error(), nil)
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
