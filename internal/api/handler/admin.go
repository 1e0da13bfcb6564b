package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/moderating"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultUsersLimit = 50

type UpdateSealRequest struct {
	Seal domain.Seal `json:"seal"`
}

// UpdateSeal troca o selo de confiança de um posto
func UpdateSeal(service moderating.ModerationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if stationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do posto não fornecido", nil)
			return
		}

		var req UpdateSealRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.UpdateSeal(r.Context(), stationID, req.Seal); err != nil {
			handleModerationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListPendingComplaints retorna a fila de denúncias aguardando análise
func ListPendingComplaints(service moderating.ModerationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaints, err := service.ListPendingComplaints(r.Context())
		if err != nil {
			handleModerationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(complaints)
		if err != nil {
			logrus.Error("Erro ao enviar resposta das denúncias pendentes:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ApproveComplaint aprova uma denúncia pendente
func ApproveComplaint(service moderating.ModerationService) http.HandlerFunc {
	return reviewComplaint(service.ApproveComplaint)
}

// RejectComplaint rejeita uma denúncia pendente
func RejectComplaint(service moderating.ModerationService) http.HandlerFunc {
	return reviewComplaint(service.RejectComplaint)
}

func reviewComplaint(review func(ctx context.Context, complaintID int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		complaintIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		complaintID, err := strconv.Atoi(complaintIDStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da denúncia inválido", nil)
			return
		}

		if err := review(r.Context(), complaintID); err != nil {
			handleModerationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListUsersByPoints retorna os usuários ordenados por pontuação
func ListUsersByPoints(service moderating.ModerationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultUsersLimit
		if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && parsed > 0 {
			limit = parsed
		}

		users, err := service.ListUsersByPoints(r.Context(), limit)
		if err != nil {
			handleModerationError(w, err)
			return
		}

		for _, user := range users {
			user.PasswordHash = ""
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(users)
		if err != nil {
			logrus.Error("Erro ao enviar resposta dos usuários:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleModerationError traduz os erros da moderação para a resposta da API
func handleModerationError(w http.ResponseWriter, err error) {
	var modErr *moderating.ModerationError
	if errors.As(err, &modErr) {
		apiErrors.WriteError(w, modErr.Code, modErr.Error(), nil)
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
