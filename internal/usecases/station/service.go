// Package station implementa o cadastro e a consulta de postos e o envio
// de novos preços pela comunidade
package station

import (
	"context"
	"time"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/fuelrank/fuelrank-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StationService interface {
	Register(ctx context.Context, req *domain.NewStationRequest, createdBy int) (*domain.Station, error)
	GetDetail(ctx context.Context, id string) (*domain.StationDetailResponse, error)
	ReportPrice(ctx context.Context, stationID string, req *domain.PriceReportRequest) error
}

type Service struct {
	stationRepo   repository.StationRepository
	complaintRepo repository.ComplaintRepository
	metrics       *metrics.Metrics
}

func NewService(
	stationRepo repository.StationRepository,
	complaintRepo repository.ComplaintRepository,
	m *metrics.Metrics,
) StationService {
	return &Service{
		stationRepo:   stationRepo,
		complaintRepo: complaintRepo,
		metrics:       m,
	}
}

// Register cadastra um novo posto. Todo posto nasce com o selo "observation";
// só a moderação muda o selo depois disso.
func (s *Service) Register(ctx context.Context, req *domain.NewStationRequest, createdBy int) (*domain.Station, error) {
	if req.Name == "" {
		return nil, NewStationError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if req.Address == "" {
		return nil, NewStationError(ErrAddressRequired, apiErrors.ErrMissingRequiredData, "")
	}

	station := &domain.Station{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Brand:   req.Brand,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Seal:    domain.SealObservation,
	}

	if createdBy != 0 {
		station.CreatedBy = &createdBy
	}

	if err := s.stationRepo.Create(ctx, station); err != nil {
		return nil, NewStationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"station_id": station.ID,
		"name":       station.Name,
	}).Info("Posto cadastrado")

	return station, nil
}

// GetDetail retorna o posto com preços vigentes e as denúncias já aprovadas
// pela moderação
func (s *Service) GetDetail(ctx context.Context, id string) (*domain.StationDetailResponse, error) {
	stationData, err := s.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewStationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if stationData == nil {
		return nil, NewStationErrorWithID(ErrStationNotFound, apiErrors.ErrStationNotFound, id, "")
	}

	complaints, err := s.complaintRepo.ListApprovedByStation(ctx, id)
	if err != nil {
		return nil, NewStationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	return &domain.StationDetailResponse{
		Station:    stationData,
		Complaints: complaints,
	}, nil
}

// ReportPrice registra um novo preço enviado pela comunidade. O histórico é
// append-only: a linha anterior do mesmo combustível continua existindo e a
// leitura fica com a mais recente.
func (s *Service) ReportPrice(ctx context.Context, stationID string, req *domain.PriceReportRequest) error {
	if !domain.ValidFuelType(req.FuelType) {
		return NewStationErrorWithID(ErrInvalidFuelType, apiErrors.ErrInvalidFuelType, stationID, string(req.FuelType))
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		return NewStationErrorWithID(ErrInvalidPrice, apiErrors.ErrInvalidPrice, stationID, req.Price)
	}

	stationData, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return NewStationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, stationID, err.Error())
	}
	if stationData == nil {
		return NewStationErrorWithID(ErrStationNotFound, apiErrors.ErrStationNotFound, stationID, "")
	}

	entry := domain.FuelPriceEntry{
		FuelType:  req.FuelType,
		Price:     price,
		UpdatedAt: time.Now(),
	}

	if err := s.stationRepo.AddPrice(ctx, stationID, entry); err != nil {
		return NewStationErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, stationID, err.Error())
	}

	if s.metrics != nil {
		s.metrics.RecordContribution("price_report")
	}

	return nil
}
