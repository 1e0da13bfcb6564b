package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fuelrank/fuelrank-api/internal/scheduler"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeLeaderboard = "leaderboard"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	LeaderboardSyncService *scheduler.LeaderboardSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeLeaderboard:
			if services.LeaderboardSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do ranking não disponível", nil)
				return
			}
			services.LeaderboardSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job desconhecido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		err := json.NewEncoder(w).Encode(map[string]string{
			"status": "sincronização iniciada",
			"type":   cronType,
		})
		if err != nil {
			logrus.Error("Erro ao enviar resposta da execução de cron:", err)
		}
	}
}

// GetCronStatus retorna o status das cron jobs configuradas
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LeaderboardSyncService != nil {
			status[CronJobTypeLeaderboard] = services.LeaderboardSyncService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(status)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do status das crons:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
