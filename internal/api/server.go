package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuelrank/fuelrank-api/internal/api/handler"
	"github.com/fuelrank/fuelrank-api/internal/api/handler/router"
	"github.com/fuelrank/fuelrank-api/internal/config"
	"github.com/fuelrank/fuelrank-api/internal/scheduler"
	"github.com/fuelrank/fuelrank-api/internal/usecases/authenticating"
	"github.com/fuelrank/fuelrank-api/internal/usecases/favoriting"
	"github.com/fuelrank/fuelrank-api/internal/usecases/gamification"
	"github.com/fuelrank/fuelrank-api/internal/usecases/moderating"
	"github.com/fuelrank/fuelrank-api/internal/usecases/ranking"
	"github.com/fuelrank/fuelrank-api/internal/usecases/refueling"
	"github.com/fuelrank/fuelrank-api/internal/usecases/reviewing"
	"github.com/fuelrank/fuelrank-api/internal/usecases/station"
	"github.com/fuelrank/fuelrank-api/pkg/metrics"
	"github.com/fuelrank/fuelrank-api/pkg/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

type Services struct {
	Authenticator      authenticating.Authenticator
	StationService     station.StationService
	RankingService     ranking.RankingService
	ReviewService      reviewing.ReviewService
	RefuelService      refueling.RefuelService
	FavoriteStore      favoriting.FavoriteStore
	ModerationService  moderating.ModerationService
	LeaderboardService gamification.LeaderboardService
	LeaderboardSync    *scheduler.LeaderboardSyncService
}

func New(
	config *config.Config,
	services Services,
	m *metrics.Metrics,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		LeaderboardSyncService: services.LeaderboardSync,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Ranking(services.RankingService)...),
		router.WithRoutes(handler.Stations(services.StationService)...),
		router.WithRoutes(handler.Reviews(services.ReviewService)...),
		router.WithRoutes(handler.Refuels(services.RefuelService)...),
		router.WithRoutes(handler.Favorites(services.FavoriteStore)...),
		router.WithRoutes(handler.Moderation(services.ModerationService)...),
		router.WithRoutes(handler.Leaderboard(services.LeaderboardService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.MetricsMiddleware(m),
		middleware.Cors(),
		middleware.AuthMiddleware(services.Authenticator),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
