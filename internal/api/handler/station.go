package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/internal/usecases/station"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CreateStation cadastra um novo posto enviado por um usuário
func CreateStation(service station.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.NewStationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		createdBy := 0
		if userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			createdBy = userClaims.UserID
		}

		created, err := service.Register(r.Context(), &req, createdBy)
		if err != nil {
			handleStationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(created)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do cadastro de posto:", err)
		}
	}
}

// GetStation retorna o detalhe de um posto com preços e denúncias aprovadas
func GetStation(service station.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if stationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do posto não fornecido", nil)
			return
		}

		detail, err := service.GetDetail(r.Context(), stationID)
		if err != nil {
			handleStationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(detail)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do detalhe do posto:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ReportPrice registra um novo preço informado pela comunidade
func ReportPrice(service station.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if stationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do posto não fornecido", nil)
			return
		}

		var req domain.PriceReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.ReportPrice(r.Context(), stationID, &req); err != nil {
			handleStationError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

// handleStationError traduz os erros do serviço de postos para a resposta da API
func handleStationError(w http.ResponseWriter, err error) {
	var stationErr *station.StationError
	if errors.As(err, &stationErr) {
		apiErrors.WriteError(w, stationErr.Code, stationErr.Error(), nil)
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}
