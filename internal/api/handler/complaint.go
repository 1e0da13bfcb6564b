package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/reviewing"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// CreateComplaint registra uma denúncia de fraude do usuário logado.
// A resposta traz o protocolo para acompanhamento.
func CreateComplaint(service reviewing.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.NewComplaintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		complaint, err := service.SubmitComplaint(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleReviewError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(map[string]string{
			"protocol": complaint.Protocol,
			"status":   complaint.Status,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta da denúncia:", err)
		}
	}
}
