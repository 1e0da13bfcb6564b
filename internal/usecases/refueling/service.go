// Package refueling implementa o registro e o histórico de abastecimentos
package refueling

import (
	"context"
	"time"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/fuelrank/fuelrank-api/pkg/metrics"
	"github.com/fuelrank/fuelrank-api/pkg/utils"
	"github.com/shopspring/decimal"
)

type RefuelService interface {
	Record(ctx context.Context, userID int, req *domain.NewRefuelRequest) (*domain.Refuel, error)
	History(ctx context.Context, userID int, filter domain.RefuelFilter) ([]*domain.Refuel, error)
}

type Service struct {
	refuelRepo  repository.RefuelRepository
	stationRepo repository.StationRepository
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
}

func NewService(
	refuelRepo repository.RefuelRepository,
	stationRepo repository.StationRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
) RefuelService {
	return &Service{
		refuelRepo:  refuelRepo,
		stationRepo: stationRepo,
		userRepo:    userRepo,
		metrics:     m,
	}
}

// Record registra um abastecimento, incrementa o contador do usuário e
// credita os pontos da contribuição
func (s *Service) Record(ctx context.Context, userID int, req *domain.NewRefuelRequest) (*domain.Refuel, error) {
	if !domain.ValidFuelType(req.FuelType) {
		return nil, NewRefuelError(ErrInvalidFuelType, apiErrors.ErrInvalidFuelType, string(req.FuelType))
	}

	liters, err := decimal.NewFromString(req.Liters)
	if err != nil || !liters.IsPositive() {
		return nil, NewRefuelError(ErrInvalidLiters, apiErrors.ErrInvalidRequest, req.Liters)
	}

	totalPaid, err := decimal.NewFromString(req.TotalPaid)
	if err != nil || !totalPaid.IsPositive() {
		return nil, NewRefuelError(ErrInvalidTotalPaid, apiErrors.ErrInvalidRequest, req.TotalPaid)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, NewRefuelError(ErrInvalidRefuelDate, apiErrors.ErrInvalidFormat, req.Date)
	}
	if req.Date == "" {
		now := time.Now()
		date = &now
	}

	station, err := s.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		return nil, NewRefuelError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if station == nil {
		return nil, NewRefuelError(ErrStationNotFound, apiErrors.ErrStationNotFound, req.StationID)
	}

	refuel := &domain.Refuel{
		UserID:    userID,
		StationID: req.StationID,
		FuelType:  req.FuelType,
		Liters:    liters,
		TotalPaid: totalPaid,
		Date:      *date,
	}

	if err := s.refuelRepo.Insert(ctx, refuel); err != nil {
		return nil, NewRefuelError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if err := s.userRepo.IncrementRefuels(ctx, userID); err != nil {
		log.ForContext(ctx).WithField("user_id", userID).
			WithError(err).Error("Falha ao incrementar o contador de abastecimentos")
	}

	if err := s.userRepo.AddPoints(ctx, userID, domain.PointsRefuel); err != nil {
		log.ForContext(ctx).WithField("user_id", userID).
			WithError(err).Error("Falha ao creditar pontos pelo abastecimento")
	}

	if s.metrics != nil {
		s.metrics.RecordContribution("refuel")
	}

	refuel.StationName = station.Name

	return refuel, nil
}

// History retorna o histórico de abastecimentos do usuário já filtrado
// por combustível e período
func (s *Service) History(ctx context.Context, userID int, filter domain.RefuelFilter) ([]*domain.Refuel, error) {
	refuels, err := s.refuelRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewRefuelError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return FilterRefuels(refuels, filter, time.Now()), nil
}

// FilterRefuels aplica os filtros de combustível e período sobre a lista.
// FuelType vazio ou "all" aceita qualquer combustível; PeriodDays <= 0
// aceita qualquer data.
func FilterRefuels(refuels []*domain.Refuel, filter domain.RefuelFilter, now time.Time) []*domain.Refuel {
	filtered := make([]*domain.Refuel, 0, len(refuels))

	var cutoff time.Time
	if filter.PeriodDays > 0 {
		cutoff = now.AddDate(0, 0, -filter.PeriodDays)
	}

	for _, refuel := range refuels {
		if filter.FuelType != "" && filter.FuelType != "all" && string(refuel.FuelType) != filter.FuelType {
			continue
		}
		if filter.PeriodDays > 0 && refuel.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, refuel)
	}

	return filtered
}
