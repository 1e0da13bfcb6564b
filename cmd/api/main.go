package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/fuelrank/fuelrank-api/infrastructure/database/postgres"
	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/api"
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
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	stationRepo := repository.NewStationRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	reviewRepo := repository.NewReviewRepository(pgConn)
	complaintRepo := repository.NewComplaintRepository(pgConn)
	refuelRepo := repository.NewRefuelRepository(pgConn)
	favoriteRepo := repository.NewFavoriteRepository(pgConn)
	leaderboardRepo := repository.NewLeaderboardRepository(pgConn)

	m := metrics.New()

	authenticator := authenticating.NewService(userRepo, cfg)
	stationService := station.NewService(stationRepo, complaintRepo, m)
	rankingService := ranking.NewStationRankingService(stationRepo, favoriteRepo, m)
	reviewService := reviewing.NewService(reviewRepo, complaintRepo, stationRepo, userRepo, m)
	refuelService := refueling.NewService(refuelRepo, stationRepo, userRepo, m)
	favoriteStore := favoriting.NewService(favoriteRepo)
	moderationService := moderating.NewService(stationRepo, complaintRepo, userRepo)
	leaderboardService := gamification.NewService(leaderboardRepo)

	// Inicializa o agendador do ranking de contribuidores
	leaderboardSyncService := scheduler.NewLeaderboardSyncService(userRepo, leaderboardRepo, cfg)

	if err := leaderboardSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking de contribuidores")
	} else {
		logrus.Info("Agendador do ranking de contribuidores iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		api.Services{
			Authenticator:      authenticator,
			StationService:     stationService,
			RankingService:     rankingService,
			ReviewService:      reviewService,
			RefuelService:      refuelService,
			FavoriteStore:      favoriteStore,
			ModerationService:  moderationService,
			LeaderboardService: leaderboardService,
			LeaderboardSync:    leaderboardSyncService,
		},
		m,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
