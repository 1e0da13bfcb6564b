// Package moderating implementa as operações restritas à moderação:
// troca de selos, análise de denúncias e consulta de usuários
package moderating

import (
	"context"

	"github.com/fuelrank/fuelrank-api/infrastructure/repository"
	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/fuelrank/fuelrank-api/pkg/apiErrors"
	"github.com/fuelrank/fuelrank-api/pkg/log"
)

type ModerationService interface {
	UpdateSeal(ctx context.Context, stationID string, seal domain.Seal) error
	ListPendingComplaints(ctx context.Context) ([]*domain.Complaint, error)
	ApproveComplaint(ctx context.Context, complaintID int) error
	RejectComplaint(ctx context.Context, complaintID int) error
	ListUsersByPoints(ctx context.Context, limit int) ([]*domain.User, error)
}

type Service struct {
	stationRepo   repository.StationRepository
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
}

func NewService(
	stationRepo repository.StationRepository,
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
) ModerationService {
	return &Service{
		stationRepo:   stationRepo,
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// UpdateSeal troca o selo de um posto. A operação é idempotente: aplicar
// o mesmo selo duas vezes não gera erro.
func (s *Service) UpdateSeal(ctx context.Context, stationID string, seal domain.Seal) error {
	if !domain.ValidSeal(seal) {
		return NewModerationError(ErrInvalidSeal, apiErrors.ErrInvalidSeal, string(seal))
	}

	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if station == nil {
		return NewModerationError(ErrStationNotFound, apiErrors.ErrStationNotFound, stationID)
	}

	if err := s.stationRepo.UpdateSeal(ctx, stationID, seal); err != nil {
		return NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"station_id": stationID,
		"seal":       seal,
	}).Info("Selo do posto atualizado")

	return nil
}

// ListPendingComplaints retorna a fila de denúncias aguardando análise,
// da mais antiga para a mais recente
func (s *Service) ListPendingComplaints(ctx context.Context) ([]*domain.Complaint, error) {
	complaints, err := s.complaintRepo.ListPending(ctx)
	if err != nil {
		return nil, NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return complaints, nil
}

// ApproveComplaint aprova uma denúncia pendente: incrementa o contador de
// denúncias do posto e credita os pontos ao denunciante
func (s *Service) ApproveComplaint(ctx context.Context, complaintID int) error {
	complaint, err := s.loadPendingComplaint(ctx, complaintID)
	if err != nil {
		return err
	}

	if err := s.complaintRepo.UpdateStatus(ctx, complaintID, domain.ComplaintApproved); err != nil {
		return NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if err := s.stationRepo.IncrementComplaints(ctx, complaint.StationID); err != nil {
		return NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if err := s.userRepo.AddPoints(ctx, complaint.ReportedBy, domain.PointsApprovedComplaint); err != nil {
		// A denúncia já foi aprovada; o crédito de pontos falhou mas não
		// desfaz a análise
		log.ForContext(ctx).WithFields(log.Fields{
			"complaint_id": complaintID,
			"user_id":      complaint.ReportedBy,
		}).WithError(err).Error("Falha ao creditar pontos pela denúncia aprovada")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"complaint_id": complaintID,
		"protocol":     complaint.Protocol,
		"station_id":   complaint.StationID,
	}).Info("Denúncia aprovada")

	return nil
}

// RejectComplaint rejeita uma denúncia pendente. Nenhum ponto é creditado
// e o contador do posto não muda
func (s *Service) RejectComplaint(ctx context.Context, complaintID int) error {
	complaint, err := s.loadPendingComplaint(ctx, complaintID)
	if err != nil {
		return err
	}

	if err := s.complaintRepo.UpdateStatus(ctx, complaintID, domain.ComplaintRejected); err != nil {
		return NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"complaint_id": complaintID,
		"protocol":     complaint.Protocol,
	}).Info("Denúncia rejeitada")

	return nil
}

// ListUsersByPoints retorna os usuários ordenados por pontuação, para o
// painel da moderação
func (s *Service) ListUsersByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	users, err := s.userRepo.ListByPoints(ctx, limit)
	if err != nil {
		return nil, NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return users, nil
}

func (s *Service) loadPendingComplaint(ctx context.Context, complaintID int) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, NewModerationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if complaint == nil {
		return nil, NewModerationError(ErrComplaintNotFound, apiErrors.ErrComplaintNotFound, "")
	}
	if complaint.Status != domain.ComplaintPending {
		return nil, NewModerationError(ErrAlreadyReviewed, apiErrors.ErrInvalidRequest, complaint.Status)
	}
	return complaint, nil
}
