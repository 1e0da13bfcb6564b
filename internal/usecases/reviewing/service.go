// Package reviewing implementa o envio de avaliações e denúncias pela
// comunidade e a gamificação associada a essas contribuições
package reviewing

import (
	"context"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/log"
	"github.com/fuelrank/fuelrank-api/pkg/metrics"
	"github.com/fuelrank/fuelrank-api/pkg/utils"
)

const maxComplaintDescription = 1000

type ReviewService interface {
	SubmitReview(ctx context.Context, userID int, req *domain.NewReviewRequest) (*domain.Review, error)
	ListStationReviews(ctx context.Context, stationID string) ([]*domain.Review, error)
	SubmitComplaint(ctx context.Context, userID int, req *domain.NewComplaintRequest) (*domain.Complaint, error)
}

type Service struct {
	reviewRepo    repository.ReviewRepository
	complaintRepo repository.ComplaintRepository
	stationRepo   repository.StationRepository
	userRepo      repository.UserRepository
	metrics       *metrics.Metrics
}

func NewService(
	reviewRepo repository.ReviewRepository,
	complaintRepo repository.ComplaintRepository,
	stationRepo repository.StationRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
) ReviewService {
	return &Service{
		reviewRepo:    reviewRepo,
		complaintRepo: complaintRepo,
		stationRepo:   stationRepo,
		userRepo:      userRepo,
		metrics:       m,
	}
}

// SubmitReview registra uma avaliação, recalcula a média do posto e credita
// os pontos ao autor
func (s *Service) SubmitReview(ctx context.Context, userID int, req *domain.NewReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, NewReviewError(ErrInvalidRating, apiErrors.ErrInvalidRequest, "")
	}

	station, err := s.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if station == nil {
		return nil, NewReviewError(ErrStationNotFound, apiErrors.ErrStationNotFound, req.StationID)
	}

	review := &domain.Review{
		StationID: req.StationID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ProofURL:  req.ProofURL,
	}

	if err := s.reviewRepo.Insert(ctx, review); err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if err := s.refreshStationRating(ctx, req.StationID); err != nil {
		// A avaliação já foi salva; a média será recalculada na próxima
		log.ForContext(ctx).WithField("station_id", req.StationID).
			WithError(err).Error("Falha ao recalcular a média do posto")
	}

	if err := s.userRepo.AddPoints(ctx, userID, domain.PointsReview); err != nil {
		log.ForContext(ctx).WithField("user_id", userID).
			WithError(err).Error("Falha ao creditar pontos pela avaliação")
	}

	if s.metrics != nil {
		s.metrics.RecordContribution("review")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"station_id": req.StationID,
		"user_id":    userID,
		"rating":     req.Rating,
	}).Info("Avaliação registrada")

	return review, nil
}

// ListStationReviews retorna as avaliações de um posto, da mais recente
// para a mais antiga
func (s *Service) ListStationReviews(ctx context.Context, stationID string) ([]*domain.Review, error) {
	reviews, err := s.reviewRepo.ListByStation(ctx, stationID)
	if err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return reviews, nil
}

// SubmitComplaint registra uma denúncia de fraude. Toda denúncia nasce
// pendente e recebe um protocolo para acompanhamento; os pontos só são
// creditados quando a moderação aprova.
func (s *Service) SubmitComplaint(ctx context.Context, userID int, req *domain.NewComplaintRequest) (*domain.Complaint, error) {
	if !domain.ValidFuelType(req.FuelType) {
		return nil, NewReviewError(ErrInvalidFuelType, apiErrors.ErrInvalidFuelType, string(req.FuelType))
	}
	if len(req.Description) > maxComplaintDescription {
		return nil, NewReviewError(ErrDescriptionTooLong, apiErrors.ErrInvalidRequest, "")
	}

	refuelingDate, err := utils.ParseDate(req.RefuelingDate)
	if err != nil || req.RefuelingDate == "" {
		return nil, NewReviewError(ErrInvalidRefuelDate, apiErrors.ErrInvalidFormat, req.RefuelingDate)
	}

	station, err := s.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if station == nil {
		return nil, NewReviewError(ErrStationNotFound, apiErrors.ErrStationNotFound, req.StationID)
	}

	protocol, err := utils.GenerateProtocol()
	if err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrInternalServer, err.Error())
	}

	complaint := &domain.Complaint{
		Protocol:      protocol,
		StationID:     req.StationID,
		ReportedBy:    userID,
		FuelType:      req.FuelType,
		RefuelingDate: *refuelingDate,
		Description:   req.Description,
		ProofURL:      req.ProofURL,
		Status:        domain.ComplaintPending,
	}

	if err := s.complaintRepo.Insert(ctx, complaint); err != nil {
		return nil, NewReviewError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if s.metrics != nil {
		s.metrics.RecordContribution("complaint")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"station_id": req.StationID,
		"user_id":    userID,
		"protocol":   protocol,
	}).Info("Denúncia registrada")

	return complaint, nil
}

func (s *Service) refreshStationRating(ctx context.Context, stationID string) error {
	avg, count, err := s.reviewRepo.AggregateForStation(ctx, stationID)
	if err != nil {
		return err
	}
	return s.stationRepo.UpdateRating(ctx, stationID, utils.RoundWithOneDecimalPlace(avg), count)
}
