// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/config"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

type LeaderboardSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	TopLimit     int
}

// LeaderboardSyncService recalcula periodicamente o ranking de contribuidores
// e grava um snapshot com as variações de posição desde o snapshot anterior
type LeaderboardSyncService struct {
	scheduler           *gocron.Scheduler
	userRepo            repository.UserRepository
	leaderboardRepo     repository.LeaderboardRepository
	config              LeaderboardSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewLeaderboardSyncService(
	userRepo repository.UserRepository,
	leaderboardRepo repository.LeaderboardRepository,
	cfg *config.Config,
) *LeaderboardSyncService {
	syncConfig := LeaderboardSyncConfig{
		CronSchedule: cfg.LeaderboardSync.CronSchedule, // Default: 3h da manhã todos os dias
		SyncEnabled:  cfg.LeaderboardSync.SyncEnabled,
		TopLimit:     cfg.LeaderboardSync.TopLimit,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"top_limit":     syncConfig.TopLimit,
	}).Info("Configuração do agendador do ranking de contribuidores carregada")

	return &LeaderboardSyncService{
		scheduler:       scheduler,
		userRepo:        userRepo,
		leaderboardRepo: leaderboardRepo,
		config:          syncConfig,
	}
}

func (s *LeaderboardSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do ranking de contribuidores desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do ranking de contribuidores")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateLeaderboard(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de contribuidores")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do ranking de contribuidores: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Parar o cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de contribuidores")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateLeaderboard recalcula o ranking e persiste o snapshot. Execuções
// concorrentes são descartadas: só uma sincronização roda por vez.
func (s *LeaderboardSyncService) UpdateLeaderboard() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Sincronização do ranking de contribuidores já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando atualização do ranking de contribuidores")

	ctx := context.Background()

	users, err := s.userRepo.ListByPoints(ctx, s.config.TopLimit)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuários para atualização do ranking de contribuidores")
		return err
	}

	if len(users) == 0 {
		logrus.Info("Nenhum usuário encontrado para atualização do ranking de contribuidores")
		return nil
	}

	entries := s.buildEntries(ctx, users)

	if err := s.leaderboardRepo.SaveSnapshot(ctx, entries); err != nil {
		logrus.WithError(err).Error("Erro ao salvar snapshot do ranking de contribuidores")
		return err
	}

	logrus.WithField("entries", len(entries)).Info("Atualização do ranking de contribuidores concluída")

	return nil
}

// buildEntries monta as posições do snapshot. ListByPoints já vem ordenado
// por pontos decrescentes; a variação compara com a posição anterior de
// cada usuário.
func (s *LeaderboardSyncService) buildEntries(ctx context.Context, users []*domain.User) []*domain.LeaderboardEntry {
	now := time.Now()
	entries := make([]*domain.LeaderboardEntry, 0, len(users))

	for i, user := range users {
		entry := &domain.LeaderboardEntry{
			UserID:         user.ID,
			DisplayName:    user.DisplayName,
			Points:         user.Points,
			InfluenceLevel: domain.InfluenceLevelFor(user.Points),
			TotalRefuels:   user.TotalRefuels,
			Position:       i + 1,
			SnapshotAt:     now,
		}

		previous, err := s.leaderboardRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).
				Error("Erro ao buscar posição anterior no ranking de contribuidores")
		}
		if previous != nil && previous.Position > 0 {
			entry.PositionChange = previous.Position - entry.Position
		}

		entries = append(entries, entry)
	}

	return entries
}

// TriggerManualSync inicia manualmente uma sincronização do ranking
func (s *LeaderboardSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do ranking já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do ranking de contribuidores")
	go s.UpdateLeaderboard()
}

// GetStatus retorna o status atual do agendador
func (s *LeaderboardSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
